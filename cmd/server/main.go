package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/tsaci/backend/internal/application/audit"
	catalogapp "github.com/tsaci/backend/internal/application/catalog"
	financeapp "github.com/tsaci/backend/internal/application/finance"
	identityapp "github.com/tsaci/backend/internal/application/identity"
	inventoryapp "github.com/tsaci/backend/internal/application/inventory"
	partnerapp "github.com/tsaci/backend/internal/application/partner"
	productionapp "github.com/tsaci/backend/internal/application/production"
	reportapp "github.com/tsaci/backend/internal/application/report"
	settingsapp "github.com/tsaci/backend/internal/application/settings"
	tradeapp "github.com/tsaci/backend/internal/application/trade"
	"github.com/tsaci/backend/internal/infrastructure/auth"
	"github.com/tsaci/backend/internal/infrastructure/config"
	"github.com/tsaci/backend/internal/infrastructure/logger"
	"github.com/tsaci/backend/internal/infrastructure/persistence"
	"github.com/tsaci/backend/internal/interfaces/http/handler"
	"github.com/tsaci/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting plant backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	stockRepo := persistence.NewGormStockRecordRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	productionRepo := persistence.NewGormProductionLogRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	reportRepo := persistence.NewGormOperationsReportRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)

	// Services
	tokens := auth.NewTokenService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tokens, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	supplierService := partnerapp.NewSupplierService(supplierRepo, log)
	inventoryService := inventoryapp.NewInventoryService(stockRepo, log)
	withdrawalService := inventoryapp.NewWithdrawalService(db, withdrawalRepo, stockRepo, log)
	productionService := productionapp.NewProductionService(db, productionRepo, stockRepo, log)
	salesService := tradeapp.NewSalesService(db, saleRepo, stockRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	reportService := reportapp.NewReportService(reportRepo, log)
	batchService := productionapp.NewBatchService(db, batchRepo, log)
	auditService := auditapp.NewService(auditRepo, log)
	settingsService := settingsapp.NewSettingsService(settingRepo, log)

	engine := router.New(cfg, tokens, log, auditService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Product:    handler.NewProductHandler(productService),
		Customer:   handler.NewCustomerHandler(customerService),
		Supplier:   handler.NewSupplierHandler(supplierService),
		Inventory:  handler.NewInventoryHandler(inventoryService),
		Withdrawal: handler.NewWithdrawalHandler(withdrawalService),
		Production: handler.NewProductionHandler(productionService),
		Batch:      handler.NewBatchHandler(batchService),
		Sales:      handler.NewSalesHandler(salesService),
		Expense:    handler.NewExpenseHandler(expenseService),
		Report:     handler.NewReportHandler(reportService),
		Audit:      handler.NewAuditHandler(auditService),
		Settings:   handler.NewSettingsHandler(settingsService),
		System:     handler.NewSystemHandler(db, version),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
