package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"repairshop-service/internal/billing"
	"repairshop-service/internal/http/middleware"
	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
	"repairshop-service/internal/service"
)

func (h *Handler) createTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		ClientID     string            `json:"client_id" binding:"required"`
		DeviceType   string            `json:"device_type" binding:"required"`
		Brand        string            `json:"brand" binding:"required"`
		Model        string            `json:"model"`
		Tasks        []string          `json:"tasks" binding:"required,min=1"`
		TaskPrices   []model.TaskPrice `json:"task_prices"`
		Issue        string            `json:"issue"`
		Cost         float64           `json:"cost"`
		TechnicianID string            `json:"technician_id"`
		Passcode     string            `json:"passcode"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), principal, service.CreateTicketInput{
		ClientID:     req.ClientID,
		DeviceType:   req.DeviceType,
		Brand:        req.Brand,
		Model:        req.Model,
		Tasks:        req.Tasks,
		TaskPrices:   req.TaskPrices,
		Issue:        req.Issue,
		Cost:         req.Cost,
		TechnicianID: req.TechnicianID,
		Passcode:     req.Passcode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(ticket))
}

func (h *Handler) getTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) listTickets(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.TicketListFilter{}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		ts := model.TicketStatus(status)
		filter.Status = &ts
	}

	clientID := strings.TrimSpace(c.Query("client_id"))
	if clientID != "" {
		filter.ClientID = &clientID
	}

	technicianID := strings.TrimSpace(c.Query("technician_id"))
	if technicianID != "" {
		filter.TechnicianID = &technicianID
	}

	tickets, err := h.ticketService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(tickets))
}

func (h *Handler) updateTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	var req struct {
		DeviceType *string             `json:"device_type"`
		Brand      *string             `json:"brand"`
		Model      *string             `json:"model"`
		Tasks      []string            `json:"tasks"`
		TaskPrices []model.TaskPrice   `json:"task_prices"`
		Issue      *string             `json:"issue"`
		Status     *model.TicketStatus `json:"status"`
		Cost       *float64            `json:"cost"`
		Passcode   *string             `json:"passcode"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ticket, err := h.ticketService.Update(c.Request.Context(), principal, id, service.UpdateTicketInput{
		DeviceType: req.DeviceType,
		Brand:      req.Brand,
		Model:      req.Model,
		Tasks:      req.Tasks,
		TaskPrices: req.TaskPrices,
		Issue:      req.Issue,
		Status:     req.Status,
		Cost:       req.Cost,
		Passcode:   req.Passcode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) assignTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	var req struct {
		TechnicianID string `json:"technician_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	ticket, err := h.ticketService.Assign(c.Request.Context(), principal, id, req.TechnicianID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(ticket))
}

func (h *Handler) deleteTicket(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	if err := h.ticketService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getTicketReceipt returns the printable money breakdown of a ticket:
// per-task lines, totals at the fixed tax rate, nothing about layout.
func (h *Handler) getTicketReceipt(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid ticket id"))
		return
	}

	ticket, err := h.ticketService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	totals := billing.Compute(ticket.Cost)

	c.JSON(http.StatusOK, successResponse(gin.H{
		"ticket_number": ticket.TicketNumber,
		"lines":         billing.TicketLines(ticket),
		"subtotal":      totals.Subtotal,
		"tax":           totals.Tax,
		"total":         totals.Total,
	}))
}
