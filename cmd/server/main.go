package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abitareitalia/leads-backend/internal/config"
	"github.com/abitareitalia/leads-backend/internal/database"
	"github.com/abitareitalia/leads-backend/internal/handlers"
	"github.com/abitareitalia/leads-backend/internal/middleware"
	"github.com/abitareitalia/leads-backend/internal/services"
	"github.com/abitareitalia/leads-backend/internal/storage"
	"github.com/abitareitalia/leads-backend/pkg/jwt"
	"github.com/abitareitalia/leads-backend/pkg/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Abitare Italia Leads Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	leadRepository := database.NewLeadRepository(db)
	investorProfileRepository := database.NewInvestorProfileRepository(db)
	studentRequestRepository := database.NewStudentRequestRepository(db)
	touristRequestRepository := database.NewTouristRequestRepository(db)
	verificationRepository := database.NewVerificationRepository(db)
	consentLogRepository := database.NewConsentLogRepository(db)
	adminUserRepository := database.NewAdminUserRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	submissionValidator := validator.NewSubmissionValidator()

	// Counter store backing the submission rate limiter. Memory is fine for a
	// single instance; Redis keeps the window consistent across replicas.
	var counterStore services.CounterStore
	switch cfg.RateLimit.Backend {
	case "redis":
		redisStore, err := services.NewRedisCounterStore(cfg.RateLimit.RedisURL)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		if err := redisStore.Ping(context.Background()); err != nil {
			logger.Fatalf("Failed to ping Redis: %v", err)
		}
		logger.Info("Redis counter store initialized")
		counterStore = redisStore
	default:
		memoryStore := services.NewMemoryCounterStore()
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				removed := memoryStore.Sweep(10 * cfg.RateLimit.Window())
				if removed > 0 {
					logger.WithField("removed", removed).Debug("Swept expired rate-limit counters")
				}
			}
		}()
		counterStore = memoryStore
	}
	rateLimitService := services.NewRateLimitService(counterStore, cfg.RateLimit.Requests, cfg.RateLimit.Window(), logger)

	documentStore, err := storage.NewS3Store(context.Background(), cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize document storage: %v", err)
	}

	consentService := services.NewConsentService(consentLogRepository, cfg.Consent.PolicyVersion, logger)
	leadService := services.NewLeadService(
		rateLimitService,
		submissionValidator,
		leadRepository,
		investorProfileRepository,
		studentRequestRepository,
		touristRequestRepository,
		consentService,
		logger,
	)
	verificationService := services.NewVerificationService(
		submissionValidator,
		verificationRepository,
		leadRepository,
		leadService,
		documentStore,
		consentService,
		cfg.Storage,
		logger,
	)
	adminAuthService := services.NewAdminAuthService(adminUserRepository, jwtService, cfg.JWT.AccessTokenExpiry, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	leadHandler := handlers.NewLeadHandler(leadService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	adminHandler := handlers.NewAdminHandler(adminAuthService, leadService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public submission routes. OptionalUser attaches the end-user ID to
		// the lead when a valid bearer token is present, and stays anonymous
		// otherwise.
		leads := v1.Group("/leads")
		leads.Use(middleware.OptionalUser(jwtService))
		{
			leads.POST("/waitlist", leadHandler.SubmitWaitlist)
			leads.POST("/investor", leadHandler.SubmitInvestorInterest)
			leads.POST("/student", leadHandler.SubmitStudentRequest)
			leads.POST("/tourist", leadHandler.SubmitTouristRequest)
		}

		verifications := v1.Group("/verifications")
		verifications.Use(middleware.OptionalUser(jwtService))
		{
			verifications.POST("", verificationHandler.SubmitVerification)
		}

		// Admin routes
		v1.POST("/admin/login", adminHandler.Login)

		admin := v1.Group("/admin")
		admin.Use(middleware.RequireAdmin(jwtService))
		{
			admin.GET("/leads", adminHandler.ListLeads)
			admin.PUT("/leads/:id/status", adminHandler.UpdateLeadStatus)
			admin.GET("/verifications", verificationHandler.ListVerifications)
			admin.PUT("/verifications/:id/review", verificationHandler.ReviewVerification)
			admin.GET("/verifications/:id/documents/signed-url", verificationHandler.SignedDocumentURL)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		if user, ok := middleware.GetUserContext(c); ok {
			fields["user_id"] = user.UserID
			fields["role"] = user.Role
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
		} else {
			status := c.Writer.Status()
			if status >= 500 {
				entry.Error("Request completed with server error")
			} else if status >= 400 {
				entry.Warn("Request completed with client error")
			} else {
				entry.Info("Request completed successfully")
			}
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
