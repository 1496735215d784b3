package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/freshline/backend/internal/application/finance"
	orderapp "github.com/freshline/backend/internal/application/order"
	procurementapp "github.com/freshline/backend/internal/application/procurement"
	recoveryapp "github.com/freshline/backend/internal/application/recovery"
	salesapp "github.com/freshline/backend/internal/application/sales"
	"github.com/freshline/backend/internal/domain/billing"
	"github.com/freshline/backend/internal/infrastructure/auth"
	"github.com/freshline/backend/internal/infrastructure/config"
	"github.com/freshline/backend/internal/infrastructure/event"
	"github.com/freshline/backend/internal/infrastructure/export"
	"github.com/freshline/backend/internal/infrastructure/geo"
	"github.com/freshline/backend/internal/infrastructure/logger"
	"github.com/freshline/backend/internal/infrastructure/persistence"
	"github.com/freshline/backend/internal/infrastructure/share"
	"github.com/freshline/backend/internal/infrastructure/visitor"
	"github.com/freshline/backend/internal/interfaces/http/handler"
	"github.com/freshline/backend/internal/interfaces/http/middleware"
	"github.com/freshline/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Freshline Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Reference data comes from configuration so pack sizes and staffing
	// changes never require a rebuild
	catalog, err := buildCatalog(cfg.Catalog)
	if err != nil {
		log.Fatal("Failed to build product catalog", zap.Error(err))
	}
	roster, err := billing.NewRoster(cfg.Roster.Salespersons, cfg.Roster.Drivers, cfg.Roster.Collectors)
	if err != nil {
		log.Fatal("Failed to build staff roster", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	supplierTxnRepo := persistence.NewGormSupplierTransactionRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	// Initialize application services
	calculator := billing.NewCalculator(catalog)
	orderService := orderapp.NewService(orderRepo, calculator, roster)
	procurementService := procurementapp.NewService(orderRepo)
	salesService := salesapp.NewService(orderRepo)
	recoveryService := recoveryapp.NewService(orderRepo, roster)
	financeService := financeapp.NewService(supplierTxnRepo, expenseRepo, orderRepo)

	// Wire the event publisher into services that emit lifecycle events
	publisher := event.NewInMemoryPublisher(log)
	orderService.SetEventPublisher(publisher)
	financeService.SetEventPublisher(publisher)

	// Auth uses a single static operator credential
	authService := auth.NewService(cfg.JWT, cfg.Auth)

	// Outward-facing infrastructure
	estimator := geo.NewEstimator(geo.Config{
		GeocodeURL: cfg.Geo.GeocodeURL,
		Timeout:    cfg.Geo.Timeout,
		RoadFactor: cfg.Geo.RoadFactor,
		OriginLat:  cfg.Geo.OriginLat,
		OriginLng:  cfg.Geo.OriginLng,
	}, log)
	shareChannel := share.NewChannel(share.Config{
		BaseURL:      cfg.Share.BaseURL,
		DefaultPhone: cfg.Share.DefaultPhone,
	})
	visitRecorder := visitor.NewRecorder(db.DB, visitor.Config{
		LookupURL: cfg.Visitor.LookupURL,
		Timeout:   cfg.Visitor.Timeout,
	}, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	orderHandler := handler.NewOrderHandler(orderService, estimator)
	procurementHandler := handler.NewProcurementHandler(procurementService, shareChannel)
	salesHandler := handler.NewSalesHandler(salesService)
	financeHandler := handler.NewFinanceHandler(financeService)
	recoveryHandler := handler.NewRecoveryHandler(recoveryService, shareChannel)
	exportHandler := handler.NewExportHandler(supplierTxnRepo, expenseRepo, orderRepo, export.NewExcelExporter())

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. Visitor - Record first visit per client
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.Visitor(visitRecorder))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes. Login is the only open endpoint; everything else
	// sits behind the JWT middleware.
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(middleware.Auth(authService)),
	)
	r.Register(authHandler)
	r.RegisterProtected(
		orderHandler,
		procurementHandler,
		salesHandler,
		financeHandler,
		recoveryHandler,
		exportHandler,
	)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildCatalog parses the configured product list, whose weights and
// prices arrive as decimal strings
func buildCatalog(cfg config.CatalogConfig) (*billing.Catalog, error) {
	products := make([]billing.Product, 0, len(cfg.Products))
	for _, p := range cfg.Products {
		weight, err := decimal.NewFromString(p.UnitWeightKg)
		if err != nil {
			return nil, fmt.Errorf("invalid unit weight for product %q: %w", p.Type, err)
		}
		price, err := decimal.NewFromString(p.DefaultPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid default price for product %q: %w", p.Type, err)
		}
		products = append(products, billing.Product{
			Type:         p.Type,
			UnitWeightKg: weight,
			DefaultPrice: price,
		})
	}
	return billing.NewCatalog(products)
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
