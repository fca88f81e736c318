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

func (h *Handler) createInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		ClientID string              `json:"client_id" binding:"required"`
		Date     *time.Time          `json:"date"`
		Items    []model.InvoiceItem `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), principal, service.CreateInvoiceInput{
		ClientID: req.ClientID,
		Date:     req.Date,
		Items:    req.Items,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(invoice))
}

func (h *Handler) getInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(invoice))
}

func (h *Handler) listInvoices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.InvoiceListFilter{}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		is := model.InvoiceStatus(status)
		filter.Status = &is
	}

	clientID := strings.TrimSpace(c.Query("client_id"))
	if clientID != "" {
		filter.ClientID = &clientID
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(invoices))
}

func (h *Handler) updateInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid invoice id"))
		return
	}

	var req struct {
		Date   *time.Time           `json:"date"`
		Items  []model.InvoiceItem  `json:"items"`
		Status *model.InvoiceStatus `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), principal, id, service.UpdateInvoiceInput{
		Date:   req.Date,
		Items:  req.Items,
		Status: req.Status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(invoice))
}

func (h *Handler) updateInvoiceStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid invoice id"))
		return
	}

	var req struct {
		Status model.InvoiceStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), principal, id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(invoice))
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid invoice id"))
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getInvoiceReceipt exposes the stored totals as a flat printable
// payload. Totals are whatever was computed at the last item change.
func (h *Handler) getInvoiceReceipt(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid invoice id"))
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"invoice_number": invoice.InvoiceNumber,
		"date":           invoice.Date,
		"items":          invoice.Items,
		"subtotal":       invoice.Subtotal,
		"tax":            invoice.Tax,
		"total":          invoice.Total,
		"status":         invoice.Status,
	}))
}
