package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fidalli/crm-backend/config"
	"github.com/fidalli/crm-backend/pkg/api/handlers"
	custommw "github.com/fidalli/crm-backend/pkg/api/middleware"
	"github.com/fidalli/crm-backend/pkg/auth"
	"github.com/fidalli/crm-backend/pkg/cache"
	"github.com/fidalli/crm-backend/pkg/dashboard"
	"github.com/fidalli/crm-backend/pkg/email"
	"github.com/fidalli/crm-backend/pkg/export"
	"github.com/fidalli/crm-backend/pkg/jobs"
	"github.com/fidalli/crm-backend/pkg/logger"
	"github.com/fidalli/crm-backend/pkg/metrics"
	custommiddleware "github.com/fidalli/crm-backend/pkg/middleware"
	"github.com/fidalli/crm-backend/pkg/storage"
	"github.com/fidalli/crm-backend/pkg/store"
	"github.com/fidalli/crm-backend/pkg/testdata"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.APIEnvironment,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.APIEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize Redis cache
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Initialize the in-memory store
	st := store.New()
	if cfg.SeedDemoData {
		if err := testdata.Seed(st, testdata.DefaultSeedOptions()); err != nil {
			log.Fatalf("❌ Failed to seed demo data: %v", err)
		}
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Initialize rate limiters
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter := custommiddleware.NewRateLimiter(5, 2) // 5 req/min for login

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appLogger.Info("request", "method", c.Request().Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Sentry error tracking middleware (if configured)
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	// Prometheus metrics middleware
	e.Use(prometheusMetrics.Middleware())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowCredentials: true,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())

	// Global rate limiting
	e.Use(globalRateLimiter.RateLimitMiddleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "Fidalli CRM API",
			"version":     "1.0.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		if err := redisClient.Redis.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"cache":  "down",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status": "healthy",
			"cache":  "up",
		})
	})

	e.GET("/ready", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize JWT blacklist
	tokenBlacklist := auth.NewTokenBlacklist(redisClient)

	// Initialize email service
	emailService := email.NewService(cfg.EmailFrom, cfg.EmailFromName, cfg.SendGridAPIKey)

	// Initialize S3 uploader (optional)
	var uploader *storage.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewUploader(context.Background(), storage.Config{
			AWSRegion: cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize S3 uploader: %v", err)
			uploader = nil
		} else {
			log.Printf("✅ S3 uploader initialized (bucket: %s)", cfg.S3Bucket)
		}
	} else {
		log.Printf("ℹ️  S3 uploads disabled (no bucket configured)")
	}

	// Initialize services
	dashboardService := dashboard.NewService(st, redisClient, prometheusMetrics)
	exportService := export.NewService(cfg.StorageLocalPath)

	// Initialize cron manager for scheduled jobs
	cronManager := jobs.NewCronManager(st, emailService, dashboardService, log.Default())
	if err := cronManager.SetupJobs(); err != nil {
		log.Fatalf("❌ Failed to setup cron jobs: %v", err)
	}
	cronManager.Start()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, cfg, tokenBlacklist, prometheusMetrics)
	entityHandler := handlers.NewEntityHandler(st, cfg, dashboardService, prometheusMetrics)
	contactHandler := handlers.NewContactHandler(st, cfg, dashboardService, prometheusMetrics)
	missionHandler := handlers.NewMissionHandler(st, cfg, dashboardService, prometheusMetrics)
	opportunityHandler := handlers.NewOpportunityHandler(st, cfg, dashboardService, prometheusMetrics)
	interactionHandler := handlers.NewInteractionHandler(st, cfg, dashboardService, prometheusMetrics)
	statisticsHandler := handlers.NewStatisticsHandler(st)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	exportHandler := handlers.NewExportHandler(st, exportService, uploader, emailService, prometheusMetrics)
	phoneHandler := handlers.NewPhoneHandler(cfg)

	v1 := e.Group("/api/v1")

	// Authentication routes (public login, protected session endpoints)
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login, authRateLimiter.RateLimitMiddleware())
		authRoutes.GET("/me", authHandler.Me, custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
		authRoutes.POST("/logout", authHandler.Logout, custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
	}

	// Protected routes (require JWT with blacklist validation)
	protected := v1.Group("")
	protected.Use(custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
	{
		entitiesGroup := protected.Group("/entities")
		{
			entitiesGroup.GET("", entityHandler.List)
			entitiesGroup.POST("", entityHandler.Create)
			entitiesGroup.GET("/:id", entityHandler.Get)
			entitiesGroup.PUT("/:id", entityHandler.Update)
			entitiesGroup.DELETE("/:id", entityHandler.Delete)
			entitiesGroup.GET("/:id/score", entityHandler.Score)
			entitiesGroup.GET("/:id/summary", entityHandler.Summary)
		}

		contactsGroup := protected.Group("/contacts")
		{
			contactsGroup.GET("", contactHandler.List)
			contactsGroup.POST("", contactHandler.Create)
			contactsGroup.GET("/:id", contactHandler.Get)
			contactsGroup.PUT("/:id", contactHandler.Update)
			contactsGroup.DELETE("/:id", contactHandler.Delete)
		}

		missionsGroup := protected.Group("/missions")
		{
			missionsGroup.GET("", missionHandler.List)
			missionsGroup.POST("", missionHandler.Create)
			missionsGroup.GET("/:id", missionHandler.Get)
			missionsGroup.PUT("/:id", missionHandler.Update)
			missionsGroup.DELETE("/:id", missionHandler.Delete)
		}

		opportunitiesGroup := protected.Group("/opportunities")
		{
			opportunitiesGroup.GET("", opportunityHandler.List)
			opportunitiesGroup.POST("", opportunityHandler.Create)
			opportunitiesGroup.GET("/:id", opportunityHandler.Get)
			opportunitiesGroup.PUT("/:id", opportunityHandler.Update)
			opportunitiesGroup.DELETE("/:id", opportunityHandler.Delete)
		}

		interactionsGroup := protected.Group("/interactions")
		{
			interactionsGroup.GET("", interactionHandler.List)
			interactionsGroup.POST("", interactionHandler.Create)
			interactionsGroup.GET("/:id", interactionHandler.Get)
			interactionsGroup.PUT("/:id", interactionHandler.Update)
			interactionsGroup.DELETE("/:id", interactionHandler.Delete)
		}

		statisticsGroup := protected.Group("/statistics")
		{
			statisticsGroup.GET("/missions", statisticsHandler.Missions)
			statisticsGroup.GET("/opportunities", statisticsHandler.Opportunities)
			statisticsGroup.GET("/interactions", statisticsHandler.Interactions)
			statisticsGroup.GET("/contacts", statisticsHandler.Contacts)
			statisticsGroup.GET("/scores", statisticsHandler.Scores)
		}

		protected.GET("/dashboard", dashboardHandler.Overview)
		protected.POST("/exports/:kind", exportHandler.Create)
		protected.POST("/phone/validate", phoneHandler.Validate)

		// Collaborator management (admin only)
		collaboratorsGroup := protected.Group("/collaborators")
		collaboratorsGroup.Use(custommw.AdminOnly())
		{
			collaboratorsGroup.GET("", authHandler.ListCollaborators)
			collaboratorsGroup.POST("", authHandler.CreateCollaborator)
		}
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 Fidalli CRM API starting on %s", address)
	log.Printf("🔐 JWT expiration: %d hours", cfg.JWTExpirationHours)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d), login 5/min", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	log.Printf("⏰ Cron jobs: Daily 8AM (follow-up reminders), Hourly (dashboard warm)")

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	cronManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
