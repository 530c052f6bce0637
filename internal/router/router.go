package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/config"
	"github.com/DareDevilStudios/sharon-billing/internal/handler"
	"github.com/DareDevilStudios/sharon-billing/internal/infra"
	"github.com/DareDevilStudios/sharon-billing/internal/middleware"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
	"github.com/DareDevilStudios/sharon-billing/internal/service"
	"github.com/DareDevilStudios/sharon-billing/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine plus the
// worker handlers for the async pool.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer) (*gin.Engine, worker.Handlers) {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	materialRepo := repository.NewMaterialRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	manufacturingRepo := repository.NewManufacturingRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	materialSvc := service.NewMaterialService(materialRepo, movementRepo)
	productSvc := service.NewProductService(productRepo, movementRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, materialRepo, supplierRepo, movementRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, movementRepo, dispatcher)
	manufacturingSvc := service.NewManufacturingService(manufacturingRepo, materialRepo, productRepo, movementRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(saleRepo, purchaseRepo, expenseRepo, materialRepo, customerRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	materialsH := handler.NewMaterialsHandler(materialSvc)
	productsH := handler.NewProductsHandler(productSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	manufacturingH := handler.NewManufacturingHandler(manufacturingSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc, saleSvc, cfg)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb, mailer))

	v1 := r.Group("/v1")
	{
		materials := v1.Group("/materials")
		{
			materials.POST("", materialsH.Create)
			materials.GET("", materialsH.List)
			materials.GET("/:id", materialsH.Get)
			materials.PUT("/:id", materialsH.Update)
			materials.DELETE("/:id", materialsH.Delete)
			materials.GET("/:id/movements", materialsH.Movements)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.GET("/:id/movements", productsH.Movements)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
		}

		suppliers := v1.Group("/suppliers")
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.Get)
		}

		purchases := v1.Group("/purchases")
		{
			purchases.POST("", purchasesH.Create)
			purchases.GET("", purchasesH.List)
			purchases.GET("/:id", purchasesH.Get)
			purchases.DELETE("/:id", purchasesH.Delete)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.PUT("/:id", salesH.Update)
			sales.POST("/:id/return", salesH.Return)
			sales.POST("/:id/cancel", salesH.Cancel)
		}

		manufacturing := v1.Group("/manufacturing")
		{
			manufacturing.POST("", manufacturingH.Record)
			manufacturing.GET("", manufacturingH.List)
			manufacturing.GET("/:id", manufacturingH.Get)
			manufacturing.DELETE("/:id", manufacturingH.Delete)
		}

		expenses := v1.Group("/expenses")
		{
			expenses.POST("", expensesH.Create)
			expenses.GET("", expensesH.List)
			expenses.DELETE("/:id", expensesH.Delete)
		}

		v1.GET("/invoices/:saleID", reportsH.Invoice)
		v1.GET("/invoices/:saleID/pdf", reportsH.InvoicePDF)

		reports := v1.Group("/reports")
		{
			reports.GET("/daybook", reportsH.DayBook)
			reports.GET("/low-stock", reportsH.LowStock)
			reports.POST("/export", reportsH.Export)
		}
	}

	handlers := worker.Handlers{
		InvoicePDF: worker.NewInvoicePDFWorker(saleRepo, customerRepo, dispatcher, cfg.PDFStoragePath, cfg.BusinessName),
		Email:      worker.NewEmailWorker(mailer),
	}
	return r, handlers
}
