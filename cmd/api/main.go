package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/velobooks/velobooks-backend/docs"
	"github.com/velobooks/velobooks-backend/internal/clients/gemini"
	"github.com/velobooks/velobooks-backend/internal/config"
	"github.com/velobooks/velobooks-backend/internal/handler"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/repository/postgres"
	"github.com/velobooks/velobooks-backend/internal/repository/storage"
	"github.com/velobooks/velobooks-backend/internal/service"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

// @title VeloBooks API
// @version 1.0
// @description Bookkeeping backend for bicycle workshops
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	apiTokenRepo := postgres.NewAPITokenRepository(pool)
	staffRepo := postgres.NewStaffPingRepository(pool)
	prefRepo := postgres.NewPreferenceRepository(pool)

	// Initialize services
	authService := service.NewAuthService(userRepo, workspaceRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, itemRepo)
	paymentService := service.NewPaymentService(paymentRepo, customerRepo)
	statementService := service.NewStatementService(customerRepo, invoiceRepo, paymentRepo)
	cashbookService := service.NewCashbookService(paymentRepo)
	inventoryService := service.NewInventoryService(itemRepo)
	dashboardService := service.NewDashboardService(invoiceRepo, paymentRepo, customerRepo, itemRepo, cashbookService)
	apiTokenService := service.NewAPITokenService(apiTokenRepo)
	staffService := service.NewStaffService(staffRepo)
	preferenceService := service.NewPreferenceService(prefRepo)

	// Image storage is optional; uploads 503 until S3 is configured
	var imageService *service.ImageService
	if cfg.S3.Bucket != "" {
		imageRepo, err := storage.NewS3ImageRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize image storage")
		}
		imageService = service.NewImageService(imageRepo)
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Image storage enabled")
	} else {
		imageService = service.NewImageService(nil)
		log.Warn().Msg("S3_BUCKET not set, image uploads disabled")
	}

	// Content generation is optional in the same way
	var marketingService *service.MarketingService
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, gemini.WithModel(cfg.GeminiModel))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize content generator")
		}
		marketingService = service.NewMarketingService(geminiClient, workspaceRepo)
		log.Info().Str("model", cfg.GeminiModel).Msg("Content generation enabled")
	} else {
		marketingService = service.NewMarketingService(nil, workspaceRepo)
		log.Warn().Msg("GEMINI_API_KEY not set, content generation disabled")
	}

	// WebSocket hub broadcasts entity events to connected clients
	hub := websocket.NewHub()
	customerService.SetEventPublisher(hub)
	invoiceService.SetEventPublisher(hub)
	paymentService.SetEventPublisher(hub)
	inventoryService.SetEventPublisher(hub)
	staffService.SetEventPublisher(hub)

	// Create workspace provider adapter for auth middleware
	workspaceProvider := &workspaceProviderAdapter{authService: authService}

	// Initialize middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, workspaceProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}
	apiTokenAuth := middleware.NewAPITokenAuthMiddleware(apiTokenService)
	dualAuth := middleware.NewDualAuthMiddleware(authMiddleware, apiTokenAuth)
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, workspaceProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create websocket validator")
	}

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService, statementService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Cashbook:  handler.NewCashbookHandler(cashbookService),
		Inventory: handler.NewInventoryHandler(inventoryService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		APIToken:  handler.NewAPITokenHandler(apiTokenService, authService),
		Image:     handler.NewImageHandler(imageService),
		Marketing: handler.NewMarketingHandler(marketingService),
		Prefs:     handler.NewPreferenceHandler(preferenceService),
		Staff:     handler.NewStaffHandler(staffService),
		WebSocket: handler.NewWebSocketHandler(hub, wsValidator, apiTokenService, cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Register API routes
	handler.RegisterRoutes(e, dualAuth, rateLimiter, handlers)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// workspaceProviderAdapter adapts AuthService to middleware.WorkspaceProvider
// and websocket.WorkspaceLookup
type workspaceProviderAdapter struct {
	authService *service.AuthService
}

// GetWorkspaceByAuth0ID implements middleware.WorkspaceProvider
func (a *workspaceProviderAdapter) GetWorkspaceByAuth0ID(auth0ID string) (int32, error) {
	workspace, err := a.authService.GetWorkspaceByAuth0ID(auth0ID)
	if err != nil {
		return 0, err
	}
	return workspace.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
