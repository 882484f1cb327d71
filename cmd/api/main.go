package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nilecart/storefront_api/internal/cache"
	"github.com/nilecart/storefront_api/internal/config"
	"github.com/nilecart/storefront_api/internal/database"
	"github.com/nilecart/storefront_api/internal/handler"
	"github.com/nilecart/storefront_api/internal/middleware"
	"github.com/nilecart/storefront_api/internal/repository"
	"github.com/nilecart/storefront_api/internal/service"
	"github.com/nilecart/storefront_api/internal/sse"
	"github.com/nilecart/storefront_api/internal/utils"
	"github.com/nilecart/storefront_api/internal/worker"
	"github.com/nilecart/storefront_api/pkg/aigateway"
)

// main is the application entrypoint for the NileCart storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize catalog cache
	catalogCache := cache.NewCatalogCache(redisClient)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	adRepo := repository.NewAdRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// 5. Initialize SSE hub and notifications
	hub := sse.NewHub()
	notificationSvc := service.NewNotificationService(notificationRepo, sse.NewHubNotifier(hub))

	// 5a. Optional image screening (Rekognition)
	var screener service.Screener
	if cfg.AWS.ImageModerationEnabled {
		screeningSvc, err := service.NewImageScreeningService(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("Image screening initialization failed - submissions will not be screened")
		} else {
			screener = screeningSvc
			log.Info().Str("region", cfg.AWS.Region).Msg("Image screening enabled")
		}
	}

	// 5b. AI gateway client for the shopping assistant
	gateway := aigateway.NewClient(aigateway.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
	})

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo)
	brandSvc := service.NewBrandService(brandRepo, notificationSvc)
	productSvc := service.NewProductService(productRepo, brandRepo, catalogCache, screener, notificationSvc)
	adSvc := service.NewAdService(adRepo, screener, notificationSvc)
	orderSvc := service.NewOrderService(orderRepo, productRepo, notificationSvc)
	chatSvc := service.NewChatService(gateway)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:       handler.NewHealthHandler(db, redisClient),
		Auth:         handler.NewAuthHandler(authSvc),
		Brand:        handler.NewBrandHandler(brandSvc),
		Product:      handler.NewProductHandler(productSvc),
		Ad:           handler.NewAdHandler(adSvc),
		Order:        handler.NewOrderHandler(orderSvc),
		Notification: handler.NewNotificationHandler(notificationSvc),
		Chat:         handler.NewChatHandler(chatSvc),
		SSE:          handler.NewSSEHandler(hub),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewAdExpiryWorker(adSvc, cfg.Worker.AdExpiryInterval).Start(ctx)
	go worker.NewNotificationPruneWorker(notificationSvc, cfg.Worker.NotificationPruneInterval, cfg.Worker.NotificationRetention).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Brand        *handler.BrandHandler
	Product      *handler.ProductHandler
	Ad           *handler.AdHandler
	Order        *handler.OrderHandler
	Notification *handler.NotificationHandler
	Chat         *handler.ChatHandler
	SSE          *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth
	router.POST("/v1/auth/signup", handlers.Auth.Signup)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Public storefront
	router.GET("/v1/products", handlers.Product.ListPublic)
	router.GET("/v1/products/categories", handlers.Product.Categories)
	router.GET("/v1/products/:id", handlers.Product.GetPublic)
	router.GET("/v1/brands", handlers.Brand.ListAccepted)
	router.GET("/v1/ads", handlers.Ad.ListRunning)

	// Client routes (any authenticated user)
	client := router.Group("/v1")
	client.Use(jwtMiddleware.Handle())
	{
		client.POST("/products", handlers.Product.Submit)
		client.POST("/brands", handlers.Brand.Submit)
		client.POST("/ads", handlers.Ad.Submit)
		client.POST("/orders", handlers.Order.Checkout)
		client.GET("/orders/:id", handlers.Order.Get)
		client.POST("/chat", handlers.Chat.Ask)
	}

	// Admin SSE stream (token via query param, validated in handler)
	router.GET("/v1/admin/events", handlers.SSE.Stream)

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin())
	{
		// Product moderation
		admin.GET("/products", handlers.Product.ListAdmin)
		admin.GET("/products/:id", handlers.Product.GetAdmin)
		admin.PATCH("/products/:id/approve", handlers.Product.Approve)
		admin.PATCH("/products/:id/reject", handlers.Product.Reject)
		admin.DELETE("/products/:id", handlers.Product.Delete)

		// Brand moderation
		admin.GET("/brands", handlers.Brand.ListAdmin)
		admin.PATCH("/brands/:id/accept", handlers.Brand.Accept)
		admin.PATCH("/brands/:id/reject", handlers.Brand.Reject)

		// Ad moderation
		admin.GET("/ads", handlers.Ad.ListAdmin)
		admin.PATCH("/ads/:id/accept", handlers.Ad.Accept)
		admin.PATCH("/ads/:id/reject", handlers.Ad.Reject)

		// Order management
		admin.GET("/orders", handlers.Order.ListAdmin)
		admin.GET("/orders/stats", handlers.Order.Stats)
		admin.GET("/orders/:id", handlers.Order.Get)
		admin.PATCH("/orders/:id/status", handlers.Order.UpdateStatus)

		// Notifications
		admin.GET("/notifications", handlers.Notification.List)
		admin.PATCH("/notifications/read-all", handlers.Notification.MarkAllRead)
		admin.PATCH("/notifications/:id/read", handlers.Notification.MarkRead)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
