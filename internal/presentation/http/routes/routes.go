package routes

import (
	"log/slog"
	"net/http"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/config"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	domainRepo "github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/infrastructure/metrics"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/handler"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/middleware"
	"github.com/bots-hq/truegrow-kashmir-connect/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Billing   *handler.BillingHandler
	Sale      *handler.SaleHandler
	Analytics *handler.AnalyticsHandler
	Customer  *handler.CustomerHandler
	Stock     *handler.StockHandler
	Note      *handler.NoteHandler
	Dashboard *handler.DashboardHandler
	Feed      *handler.FeedHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.Metrics
	RateLimiter     *middleware.UserRateLimiter
	Logger          *slog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.Burst,
		})
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		protected.Use(middleware.ShopOwnerScope())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Community feed is shared by both roles
	registerFeedRoutes(protected, h)

	// Customer dashboard
	protected.GET("/dashboard/customer", middleware.RequireRole(enum.UserRoleCustomer), h.Dashboard.Customer)

	owner := protected.Group("")
	owner.Use(middleware.RequireRole(enum.UserRoleShopOwner))
	{
		owner.GET("/dashboard/shop-owner", h.Dashboard.ShopOwner)
		owner.POST("/billing/preview", h.Billing.Preview)

		registerSaleRoutes(owner, h, deps)
		registerAnalyticsRoutes(owner, h)
		registerCustomerRoutes(owner, h)
		registerStockRoutes(owner, h)
		registerNoteRoutes(owner, h)

		owner.GET("/printer/status", h.Printer.GetStatus)
	}
}

func registerSaleRoutes(owner *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}

	sales := owner.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/recent", h.Sale.Recent)
		sales.POST("", middleware.IdempotencyRequired(idem), h.Billing.Submit)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", middleware.Idempotency(idem), h.Sale.Update)
		sales.PUT("/:id/payment-status", h.Sale.UpdatePaymentStatus)
		sales.PUT("/:id/rating", h.Sale.Rate)
		sales.GET("/:id/invoice", h.Sale.DownloadInvoice)
		sales.POST("/:id/print", h.Printer.PrintSale)
	}
}

func registerAnalyticsRoutes(owner *gin.RouterGroup, h *Handlers) {
	analytics := owner.Group("/analytics")
	{
		analytics.GET("", h.Analytics.Report)
		analytics.GET("/export", h.Analytics.Export)
	}
}

func registerCustomerRoutes(owner *gin.RouterGroup, h *Handlers) {
	owner.GET("/customers", h.Customer.List)
	owner.GET("/customers/:code", h.Customer.Get)
	owner.GET("/payments", h.Customer.Payments)
}

func registerStockRoutes(owner *gin.RouterGroup, h *Handlers) {
	stock := owner.Group("/stock")
	{
		stock.GET("", h.Stock.List)
		stock.GET("/low-stock", h.Stock.Overview)
		stock.GET("/:id", h.Stock.Get)
		stock.POST("", h.Stock.Create)
		stock.PUT("/:id", h.Stock.Update)
		stock.DELETE("/:id", h.Stock.Delete)
	}
}

func registerNoteRoutes(owner *gin.RouterGroup, h *Handlers) {
	notes := owner.Group("/notes")
	{
		notes.GET("", h.Note.List)
		notes.GET("/:id", h.Note.Get)
		notes.POST("", h.Note.Create)
		notes.PUT("/:id", h.Note.Update)
		notes.DELETE("/:id", h.Note.Delete)
	}
}

func registerFeedRoutes(protected *gin.RouterGroup, h *Handlers) {
	feed := protected.Group("/feed")
	{
		feed.GET("", h.Feed.List)
		feed.POST("", h.Feed.Create)
		feed.POST("/:id/like", h.Feed.Like)
	}
}
