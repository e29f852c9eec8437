package router

import (
	"time"

	"tillpos/internal/config"
	"tillpos/internal/handler"
	"tillpos/internal/middleware"
	"tillpos/internal/persist"
	"tillpos/internal/service"
	"tillpos/internal/store"
	"tillpos/internal/worker"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store/Slot
func New(cfg *config.Config, st *store.Store, slot persist.Slot, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Services ─────────────────────────────────────────────────────────────
	catalogSvc := service.NewCatalogService(st)
	cartSvc := service.NewCartService(st)
	checkoutSvc := service.NewCheckoutService(st, cartSvc, dispatcher, cfg.TerminalLabel)
	reportSvc := service.NewReportService(st)
	exportSvc := service.NewExportService(st)
	receiptSvc := service.NewReceiptService(st, cfg.StoreName, cfg.ReceiptStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(catalogSvc)
	cartH := handler.NewCartHandler(cartSvc)
	checkoutH := handler.NewCheckoutHandler(checkoutSvc)
	salesH := handler.NewSalesHandler(reportSvc, receiptSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	exportH := handler.NewExportHandler(exportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(st, slot))

	v1 := r.Group("/v1")
	{
		prods := v1.Group("/products")
		{
			prods.POST("", productsH.Create)
			prods.GET("", productsH.List)
			prods.GET("/:id", productsH.Get)
			prods.PUT("/:id", productsH.Update)
			prods.PATCH("/:id/stock", productsH.AdjustStock)
			prods.DELETE("/:id", productsH.Deactivate)
			prods.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", cartH.View)
			cart.POST("/items", cartH.AddItem)
			cart.PUT("/items/:id", cartH.SetQuantity)
			cart.DELETE("/items/:id", cartH.RemoveLine)
			cart.DELETE("", cartH.Clear)
		}

		v1.POST("/checkout", checkoutH.Checkout)

		sales := v1.Group("/sales")
		{
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.GET("/:id/receipt", salesH.Receipt)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/products", reportsH.Performance)
			reports.GET("/today", reportsH.Today)
		}

		export := v1.Group("/export")
		{
			export.GET("/sales.csv", exportH.Sales)
			export.GET("/products.csv", exportH.Products)
		}
	}

	return r
}
