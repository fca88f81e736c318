package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"repairshop-service/internal/auth"
	"repairshop-service/internal/config"
	"repairshop-service/internal/db"
	httphandler "repairshop-service/internal/http"
	"repairshop-service/internal/http/middleware"
	"repairshop-service/internal/logger"
	"repairshop-service/internal/repository"
	"repairshop-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	clientRepo := repository.NewClientRepository(database)
	ticketRepo := repository.NewTicketRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	productRepo := repository.NewProductRepository(database)
	categoryRepo := repository.NewCategoryRepository(database)
	orderRepo := repository.NewOrderRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)

	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, tokens, appLogger)
	clientService := service.NewClientService(clientRepo)
	ticketService := service.NewTicketService(ticketRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo)

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureSuperAdmin(bootstrapCtx, cfg.Bootstrap); err != nil {
		cancel()
		appLogger.Fatal().Err(err).Msg("failed to ensure super admin account")
	}
	cancel()

	handler := httphandler.NewHandler(
		authService,
		clientService,
		ticketService,
		settingsService,
		productService,
		orderService,
		invoiceService,
		appLogger,
	)
	authMiddleware := middleware.Auth(tokens)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting repairshop service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
