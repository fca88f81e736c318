package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"repairshop-service/internal/http/middleware"
	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
	"repairshop-service/internal/service"
)

func (h *Handler) createOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		ClientID      string              `json:"client_id" binding:"required"`
		Items         []model.OrderItem   `json:"items" binding:"required,min=1"`
		Total         float64             `json:"total"`
		PaymentMethod string              `json:"payment_method"`
		PaymentStatus model.PaymentStatus `json:"payment_status"`
		AmountPaid    float64             `json:"amount_paid"`
		OrderDate     *time.Time          `json:"order_date"`
		DeliveryDate  *time.Time          `json:"delivery_date"`
		Note          string              `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), principal, service.CreateOrderInput{
		ClientID:      req.ClientID,
		Items:         req.Items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		AmountPaid:    req.AmountPaid,
		OrderDate:     req.OrderDate,
		DeliveryDate:  req.DeliveryDate,
		Note:          req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(order))
}

func (h *Handler) getOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.OrderListFilter{}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		os := model.OrderStatus(status)
		filter.Status = &os
	}

	clientID := strings.TrimSpace(c.Query("client_id"))
	if clientID != "" {
		filter.ClientID = &clientID
	}

	orders, err := h.orderService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(orders))
}

func (h *Handler) updateOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		Status        *model.OrderStatus   `json:"status"`
		PaymentMethod *string              `json:"payment_method"`
		PaymentStatus *model.PaymentStatus `json:"payment_status"`
		AmountPaid    *float64             `json:"amount_paid"`
		DeliveryDate  *time.Time           `json:"delivery_date"`
		Note          *string              `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), principal, id, service.UpdateOrderInput{
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		AmountPaid:    req.AmountPaid,
		DeliveryDate:  req.DeliveryDate,
		Note:          req.Note,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	var req struct {
		Status model.OrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), principal, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(order))
}

func (h *Handler) deleteOrder(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid order id"))
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
