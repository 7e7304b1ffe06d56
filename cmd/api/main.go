package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/condovia/condovia-api/docs" // Swagger docs
	"github.com/condovia/condovia-api/internal/config"
	"github.com/condovia/condovia-api/internal/database"
	"github.com/condovia/condovia-api/internal/handlers"
	"github.com/condovia/condovia-api/internal/jobs"
	"github.com/condovia/condovia-api/internal/middleware"
	"github.com/condovia/condovia-api/internal/repository"
	"github.com/condovia/condovia-api/internal/services"
	"github.com/condovia/condovia-api/internal/storage"
	"github.com/condovia/condovia-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Condovia API
// @version 1.0
// @description REST API for the Condovia condominium billing ledger

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Statement export archive
	archive, err := storage.NewExportArchive(cfg.ExportDir)
	if err != nil {
		logger.Error("Failed to initialize export archive", "dir", cfg.ExportDir, "error", err)
		archive = nil
	}

	// Initialize services
	svcs := services.NewServices(repos, worker, db, archive)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health.Index)

		// Contracts and their charge schedules
		v1.GET("/contracts", h.Contract.Index)
		v1.POST("/contracts", h.Contract.Create)
		v1.GET("/contracts/:contract_id", h.Contract.Show)
		v1.POST("/contracts/:contract_id/schedule", h.Contract.GenerateSchedule)
		v1.GET("/contracts/:contract_id/charges", h.Contract.Charges)
		v1.GET("/contracts/:contract_id/statement", h.Statement.ContractStatement)
		v1.GET("/contracts/:contract_id/statement/export", h.Statement.ContractStatement)

		// Payments and allocations
		v1.POST("/payments", h.Payment.Create)
		v1.GET("/payments/:payment_id", h.Payment.Show)
		v1.POST("/payments/:payment_id/allocations", h.Payment.Allocate)

		// Community statements and stats
		v1.GET("/communities/:community_id/statement", h.Statement.CommunityStatement)
		v1.GET("/charges/stats", h.Statement.Stats)

		// Operational
		v1.GET("/audits", h.Audit.Index)
		v1.GET("/jobs/status", h.Job.Status)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	interval := time.Duration(cfg.StatusRefreshHours) * time.Hour

	// Roll not_due charges to overdue once their due date passes
	worker.ScheduleEveryImmediate(interval, func(ctx context.Context) error {
		logger.Info("[Job] Refreshing overdue charge statuses...")
		updated, err := svcs.Status.RefreshOverdue(ctx)
		if err != nil {
			return err
		}
		logger.Info("[Job] Overdue refresh finished", "updated", updated)
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
