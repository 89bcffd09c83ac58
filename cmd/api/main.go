package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/config"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/cache"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/database"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/events"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
	infraRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/handler"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/middleware"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/routes"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/invoice"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/logging"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/printer"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.Setup(logging.Options{
		Level: cfg.App.LogLevel,
		JSON:  cfg.App.IsProduction(),
	})

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Debug)
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, database.SeedConfig{
		OwnerEmail:    cfg.Seed.OwnerEmail,
		OwnerPassword: cfg.Seed.OwnerPassword,
		OwnerName:     cfg.Seed.OwnerName,
		BusinessName:  cfg.Seed.BusinessName,
	}); err != nil {
		logger.Warn("failed to seed default data", "error", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	appMetrics := metrics.New()
	loc := cfg.Business.Location()

	// Report cache
	var reportCache cache.ReportCache = cache.NopCache{}
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		reportCache = cache.NewRedisReportCache(client, cfg.Redis.ReportTTL)
		logger.Info("analytics report cache enabled", "addr", cfg.Redis.Addr)
	}

	// Sale events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Topic, cfg.Kafka.Brokers...)
		logger.Info("sale events enabled", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}
	defer publisher.Close()

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	stockRepo := infraRepo.NewStockRepository(db)
	noteRepo := infraRepo.NewNoteRepository(db)
	postRepo := infraRepo.NewPostRepository(db)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Initialize services
	notifier := service.NewSaleNotifier(reportCache, publisher, appMetrics)
	authService := service.NewAuthService(userRepo, jwtManager)
	billingService := service.NewBillingService(saleRepo, userRepo, notifier)
	saleService := service.NewSaleService(saleRepo, notifier)
	analyticsService := service.NewAnalyticsService(saleRepo, reportCache, appMetrics, loc)
	exportService := service.NewExportService(analyticsService)
	customerService := service.NewCustomerService(saleRepo, userRepo)
	paymentService := service.NewPaymentService(saleRepo)
	dashboardService := service.NewDashboardService(saleRepo, stockRepo, loc)
	stockService := service.NewStockService(stockRepo)
	noteService := service.NewNoteService(noteRepo)
	feedService := service.NewFeedService(postRepo, userRepo)
	invoiceService := service.NewInvoiceService(
		saleService,
		userRepo,
		invoice.New(invoice.WithCurrency(cfg.Business.CurrencySymbol)),
		appMetrics,
	)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		logger.Warn("failed to initialize printer", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()
	printerService := service.NewPrinterService(thermalPrinter, saleService, userRepo, appMetrics, cfg.Printer.Type, cfg.Printer.CharWidth)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Billing:   handler.NewBillingHandler(billingService),
		Sale:      handler.NewSaleHandler(saleService, invoiceService, loc),
		Analytics: handler.NewAnalyticsHandler(analyticsService, exportService),
		Customer:  handler.NewCustomerHandler(customerService, paymentService),
		Stock:     handler.NewStockHandler(stockService),
		Note:      handler.NewNoteHandler(noteService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Feed:      handler.NewFeedHandler(feedService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	stop := make(chan struct{})
	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	go rateLimiter.Run(stop)
	go purgeIdempotencyKeys(idempotencyRepo, time.Hour, stop)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         appMetrics,
		RateLimiter:     rateLimiter,
		Logger:          logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// purgeIdempotencyKeys deletes expired replay records every interval until stop is closed
func purgeIdempotencyKeys(repo repository.IdempotencyRepository, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := repo.DeleteExpired(ctx)
			cancel()
			if err != nil {
				slog.Warn("idempotency cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("expired idempotency keys removed", "count", n)
			}
		}
	}
}
