package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"repairshop-service/internal/http/middleware"
	"repairshop-service/internal/model"
	"repairshop-service/internal/service"
)

type Handler struct {
	authService     *service.AuthService
	clientService   *service.ClientService
	ticketService   *service.TicketService
	settingsService *service.SettingsService
	productService  *service.ProductService
	orderService    *service.OrderService
	invoiceService  *service.InvoiceService
	log             zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	clientService *service.ClientService,
	ticketService *service.TicketService,
	settingsService *service.SettingsService,
	productService *service.ProductService,
	orderService *service.OrderService,
	invoiceService *service.InvoiceService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:     authService,
		clientService:   clientService,
		ticketService:   ticketService,
		settingsService: settingsService,
		productService:  productService,
		orderService:    orderService,
		invoiceService:  invoiceService,
		log:             log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
	}

	protected := api.Group("/")
	protected.Use(authMiddleware)

	profile := protected.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.updateProfile)
		profile.PUT("/password", h.changePassword)
	}

	// Ticket forms need the taxonomy for both roles; mutation is gated
	// inside the settings service.
	settings := protected.Group("/settings/ticket")
	{
		settings.GET("", h.getSettings)
		settings.POST("/device-types", h.addDeviceType)
		settings.PUT("/device-types", h.renameDeviceType)
		settings.DELETE("/device-types/:name", h.removeDeviceType)
		settings.POST("/brands", h.addBrand)
		settings.PUT("/brands", h.renameBrand)
		settings.DELETE("/brands/:name", h.removeBrand)
		settings.POST("/models", h.addModel)
		settings.PUT("/models/:id", h.renameModel)
		settings.DELETE("/models/:id", h.removeModel)
		settings.POST("/tasks", h.addTask)
		settings.PUT("/tasks", h.renameTask)
		settings.DELETE("/tasks/:name", h.removeTask)
	}

	tickets := protected.Group("/tickets")
	{
		tickets.GET("", h.listTickets)
		tickets.POST("", h.createTicket)
		tickets.GET("/:id", h.getTicket)
		tickets.PATCH("/:id", h.updateTicket)
		tickets.PUT("/:id/assign", h.assignTicket)
		tickets.DELETE("/:id", h.deleteTicket)
		tickets.GET("/:id/receipt", h.getTicketReceipt)
	}

	admin := protected.Group("/")
	admin.Use(middleware.RequireRoles(model.RoleSuperAdmin))

	clients := admin.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.PATCH("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}

	products := admin.Group("/products")
	{
		products.GET("", h.listProducts)
		products.POST("", h.createProduct)
		products.GET("/:id", h.getProduct)
		products.PATCH("/:id", h.updateProduct)
		products.DELETE("/:id", h.deleteProduct)
	}
	admin.GET("/categories", h.listCategories)

	orders := admin.Group("/orders")
	{
		orders.GET("", h.listOrders)
		orders.POST("", h.createOrder)
		orders.GET("/:id", h.getOrder)
		orders.PATCH("/:id", h.updateOrder)
		orders.PUT("/:id/status", h.updateOrderStatus)
		orders.DELETE("/:id", h.deleteOrder)
	}

	invoices := admin.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.PATCH("/:id", h.updateInvoice)
		invoices.PUT("/:id/status", h.updateInvoiceStatus)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.GET("/:id/receipt", h.getInvoiceReceipt)
	}

	users := admin.Group("/users")
	{
		users.GET("", h.listUsers)
		users.GET("/technicians", h.listTechnicians)
		users.PUT("/:id/role", h.updateUserRole)
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
