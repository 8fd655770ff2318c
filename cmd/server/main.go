package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/finance"
	itemapp "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/item"
	reportapp "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/report"
	tradeapp "github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/application/trade"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/infrastructure/config"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/infrastructure/logger"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/infrastructure/persistence"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/interfaces/http/handler"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/interfaces/http/middleware"
	"github.com/jovinkendrico/pos-mandor-jaya-sub002/internal/interfaces/http/router"
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

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// GORM logger backed by zap
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
	log.Info("Database connected successfully")

	// Transaction scopes and read-side repositories
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	financeScope := persistence.NewGormFinanceTransactionScope(db.DB)

	itemRepo := persistence.NewGormItemRepository(db.DB)
	layerRepo := persistence.NewGormCostLayerRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	voucherRepo := persistence.NewGormPaymentVoucherRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	// Application services
	itemService := itemapp.NewItemService(tradeScope, log)
	purchaseService := tradeapp.NewPurchaseService(tradeScope, log).
		WithPaymentTermDays(cfg.Invoice.PaymentTermDays)
	saleService := tradeapp.NewSaleService(tradeScope, log).
		WithPaymentTermDays(cfg.Invoice.PaymentTermDays)
	purchaseReturnService := tradeapp.NewPurchaseReturnService(tradeScope, log)
	saleReturnService := tradeapp.NewSaleReturnService(tradeScope, log)
	paymentService := financeapp.NewPaymentService(financeScope, log)
	reportService := reportapp.NewReportService(itemRepo, layerRepo, movementRepo, invoiceRepo, voucherRepo, saleRepo)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to set up request validator", zap.Error(err))
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	r := router.NewRouter(engine)
	r.Register(handler.NewItemHandler(itemService)).
		Register(handler.NewPurchaseHandler(purchaseService)).
		Register(handler.NewSaleHandler(saleService)).
		Register(handler.NewPurchaseReturnHandler(purchaseReturnService)).
		Register(handler.NewSaleReturnHandler(saleReturnService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewReportHandler(reportService)).
		Register(handler.NewSystemHandler(db, cfg.App.Name))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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
