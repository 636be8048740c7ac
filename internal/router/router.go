package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"facturo/internal/domain"
	"facturo/internal/handler"
	"facturo/internal/middleware"
	"facturo/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	authH *handler.AuthHandler,
	orgH *handler.OrganizationHandler,
	userH *handler.UserHandler,
	fileH *handler.FileHandler,
	invoiceH *handler.InvoiceHandler,
	allocH *handler.AllocationHandler,
	supplierH *handler.SupplierHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT and an active organization
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.OrganizationGuard())

	// File routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.Get)
	files.GET("/:id/download-url", fileH.DownloadURL)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), fileH.Delete)

	// Invoice routes
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.Get)
	invoices.PUT("/:id/data", middleware.RequireRole(domain.RoleAccountant, domain.RoleAdmin), invoiceH.EditExtractedData)
	invoices.POST("/:id/retry", invoiceH.Retry)
	invoices.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), invoiceH.Delete)

	// Allocation routes, nested under the invoice they belong to
	invoices.POST("/:id/allocations", allocH.Create)
	invoices.GET("/:id/allocations", allocH.ListByInvoice)
	invoices.POST("/:id/allocations/reconcile", allocH.Reconcile)

	allocations := protected.Group("/allocations")
	allocations.GET("/:id", allocH.Get)
	allocations.PUT("/:id", allocH.Update)
	allocations.DELETE("/:id", allocH.Delete)

	// Supplier routes
	suppliers := protected.Group("/suppliers")
	suppliers.GET("", supplierH.List)
	suppliers.GET("/:id", supplierH.Get)
	suppliers.PUT("/:id", middleware.RequireRole(domain.RoleAccountant, domain.RoleAdmin), supplierH.Update)
	suppliers.POST("/:id/validate", middleware.RequireRole(domain.RoleAccountant, domain.RoleAdmin), supplierH.Validate)
	suppliers.POST("/:id/deactivate", middleware.RequireRole(domain.RoleAccountant, domain.RoleAdmin), supplierH.Deactivate)
	suppliers.GET("/:id/aliases", supplierH.ListAliases)
	suppliers.POST("/:id/aliases", middleware.RequireRole(domain.RoleAccountant, domain.RoleAdmin), supplierH.AddAlias)

	// Accounting exports
	exports := protected.Group("/exports")
	exports.GET("/journal", middleware.RequireRole(domain.RoleAccountant, domain.RoleAdmin), exportH.Journal)

	// User management (organization-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.Get)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Admin routes - organization management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/organizations", orgH.Create)
	admin.GET("/organizations", orgH.List)
	admin.GET("/organizations/:id", orgH.Get)
	admin.PUT("/organizations/:id", orgH.Update)
	admin.DELETE("/organizations/:id", orgH.Delete)

	return r
}
