package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/glowdesk/salonpos-api/internal/config"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/handler"
	"github.com/glowdesk/salonpos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Bill      *handler.BillHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
		EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerBillRoutes(v1, h)
		registerSettingsRoutes(v1, h)
		registerDashboardRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers) {
	bills := v1.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", h.Bill.Create)
		bills.DELETE("", h.Bill.ClearHistory)
		bills.GET("/export", h.Bill.Export)
		bills.GET("/:id", h.Bill.Get)
		bills.GET("/:id/share", h.Bill.Share)
		bills.POST("/:id/print", h.Printer.PrintReceipt)
	}
	v1.POST("/share/complete", h.Bill.CompleteShare)
}

func registerSettingsRoutes(v1 *gin.RouterGroup, h *Handlers) {
	settings := v1.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", h.Settings.UpdateSettings)
		settings.POST("/unlock", h.Settings.Unlock)
		settings.POST("/lock", h.Settings.Lock)
		settings.POST("/reset-protection", h.Settings.ResetProtection)
		settings.POST("/services", h.Settings.AddService)
		settings.DELETE("/services/:id", h.Settings.RemoveService)
	}
}

func registerDashboardRoutes(v1 *gin.RouterGroup, h *Handlers) {
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.GetStats)
		dashboard.GET("/recent", h.Dashboard.RecentBills)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
