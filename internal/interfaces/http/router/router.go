package router

import (
	"github.com/gin-gonic/gin"
	auditapp "github.com/tsaci/backend/internal/application/audit"
	"github.com/tsaci/backend/internal/domain/identity"
	"github.com/tsaci/backend/internal/infrastructure/auth"
	"github.com/tsaci/backend/internal/infrastructure/config"
	"github.com/tsaci/backend/internal/infrastructure/logger"
	"github.com/tsaci/backend/internal/interfaces/http/handler"
	"github.com/tsaci/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every route handler the router wires up
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Product    *handler.ProductHandler
	Customer   *handler.CustomerHandler
	Supplier   *handler.SupplierHandler
	Inventory  *handler.InventoryHandler
	Withdrawal *handler.WithdrawalHandler
	Production *handler.ProductionHandler
	Batch      *handler.BatchHandler
	Sales      *handler.SalesHandler
	Expense    *handler.ExpenseHandler
	Report     *handler.ReportHandler
	Audit      *handler.AuditHandler
	Settings   *handler.SettingsHandler
	System     *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes registered.
// Mutating endpoints carry role gates; read endpoints need only a valid token.
// Successful mutations are recorded in the audit trail.
func New(cfg *config.Config, tokens *auth.TokenService, log *zap.Logger, recorder *auditapp.Service, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsCfg),
	)

	// liveness checks stay unauthenticated
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1", middleware.AuditTrail(recorder))
	api.GET("/system/health", h.System.Health)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", middleware.JWTAuth(tokens))
	authed.GET("/auth/me", h.Auth.Me)

	adminOwner := middleware.RequireRole(identity.RoleAdmin, identity.RoleOwner)
	managers := middleware.RequireRole(identity.RoleAdmin, identity.RoleManager, identity.RoleOwner)
	operators := middleware.RequireRole(identity.RoleAdmin, identity.RoleManager, identity.RoleOwner, identity.RoleSupervisor)

	users := authed.Group("/users", adminOwner)
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	products := authed.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", adminOwner, h.Product.Create)
		products.PUT("/:id", adminOwner, h.Product.Update)
		products.DELETE("/:id", adminOwner, h.Product.Delete)
	}

	customers := authed.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", managers, h.Customer.Create)
		customers.PUT("/:id", managers, h.Customer.Update)
		customers.DELETE("/:id", adminOwner, h.Customer.Delete)
	}

	suppliers := authed.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.POST("", managers, h.Supplier.Create)
		suppliers.PUT("/:id", managers, h.Supplier.Update)
		suppliers.DELETE("/:id", adminOwner, h.Supplier.Delete)
	}

	inventory := authed.Group("/inventory")
	{
		inventory.GET("", h.Inventory.List)
		inventory.GET("/:id", h.Inventory.Get)
		inventory.GET("/low-stock", h.Inventory.LowStock)
		inventory.GET("/product/:id", h.Inventory.ByProduct)
		inventory.POST("", managers, h.Inventory.Create)
		inventory.POST("/adjust", managers, h.Inventory.Adjust)
		inventory.PUT("/:id/threshold", managers, h.Inventory.SetThreshold)
		inventory.DELETE("/:id", managers, h.Inventory.Delete)
	}

	withdrawals := authed.Group("/withdrawals")
	{
		withdrawals.GET("", h.Withdrawal.List)
		withdrawals.GET("/:id", h.Withdrawal.Get)
		withdrawals.POST("", h.Withdrawal.Create)
		withdrawals.POST("/:id/approve", managers, h.Withdrawal.Approve)
		withdrawals.POST("/:id/reject", managers, h.Withdrawal.Reject)
	}

	production := authed.Group("/production")
	{
		production.GET("", h.Production.List)
		production.GET("/:id", h.Production.Get)
		production.GET("/product/:id", h.Production.ByProduct)
		production.POST("", operators, h.Production.Create)
		production.PUT("/:id", managers, h.Production.Update)
		production.DELETE("/:id", managers, h.Production.Delete)
	}

	batches := authed.Group("/batches")
	{
		batches.GET("", h.Batch.List)
		batches.GET("/:id", h.Batch.Get)
		batches.POST("", operators, h.Batch.Create)
		batches.PUT("/:id", operators, h.Batch.Update)
		batches.POST("/:id/stage", operators, h.Batch.SetStage)
		batches.POST("/:id/status", operators, h.Batch.SetStatus)
		batches.DELETE("/:id", managers, h.Batch.Delete)
	}

	sales := authed.Group("/sales")
	{
		sales.GET("", h.Sales.List)
		sales.GET("/:id", h.Sales.Get)
		sales.POST("", managers, h.Sales.Create)
		sales.POST("/:id/complete", managers, h.Sales.Complete)
		sales.POST("/:id/cancel", managers, h.Sales.Cancel)
		sales.PUT("/:id", adminOwner, h.Sales.Update)
		sales.DELETE("/:id", adminOwner, h.Sales.Delete)
	}

	expenses := authed.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.GET("/:id", h.Expense.Get)
		expenses.POST("", managers, h.Expense.Create)
		expenses.PUT("/:id", managers, h.Expense.Update)
		expenses.DELETE("/:id", adminOwner, h.Expense.Delete)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/production", h.Report.Production)
	}

	auditLogs := authed.Group("/audit-logs", adminOwner)
	{
		auditLogs.GET("", h.Audit.List)
		auditLogs.GET("/stats", h.Audit.Stats)
	}

	settings := authed.Group("/settings", adminOwner)
	{
		settings.GET("", h.Settings.List)
		settings.GET("/:key", h.Settings.Get)
		settings.PUT("", h.Settings.Set)
		settings.PUT("/bulk", h.Settings.SetBulk)
		settings.DELETE("/:key", h.Settings.Delete)
	}

	return engine
}
