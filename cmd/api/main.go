package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "backoffice/api/swagger" // swagger docs
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/handler"
	"backoffice/internal/lock"
	"backoffice/internal/logger"
	"backoffice/internal/middleware"
	"backoffice/internal/repository"
	"backoffice/internal/service"
	"backoffice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Backoffice Consistency API
// @version         1.0
// @description     Stock ledger, purchase intake, returns, invoice recalculation and rep commissions.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	db, err := database.NewConnection(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")

	locker := lock.NewNoopLocker()
	rdb, err := lock.Connect(sigCtx, cfg.RedisAddress)
	switch {
	case err != nil:
		log.WithError(err).Warn("redis unavailable; running without distributed locks")
	case rdb != nil:
		defer func() { _ = rdb.Close() }()
		locker = lock.NewRedisLocker(rdb, log)
		log.WithField("addr", cfg.RedisAddress).Info("connected to Redis")
	}

	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	productRepo := repository.NewProductRepository(db)
	locationRepo := repository.NewLocationStockRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	batchRepo := repository.NewReturnBatchRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	stockService := service.NewStockService(productRepo, locationRepo, movementRepo, auditRepo, txManager, wsHub, log)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, auditRepo, stockService, sequenceRepo,
		locker, txManager, wsHub, log, cfg.PurchaseNumberOffset)
	returnService := service.NewReturnService(returnRepo, batchRepo, productRepo, invoiceRepo, auditRepo, stockService,
		sequenceRepo, locker, txManager, wsHub, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, orderRepo, commissionRepo, customerRepo, auditRepo,
		locker, txManager, wsHub, log)
	commissionService := service.NewCommissionService(orderRepo, commissionRepo, auditRepo, txManager)
	auditService := service.NewAuditService(auditRepo)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, cfg.JWTSecret)
	})

	api := router.Group("", middleware.RequireAuth(cfg.JWTSecret))
	handler.NewInventoryHandler(stockService).RegisterRoutes(api)
	handler.NewPurchaseHandler(purchaseService).RegisterRoutes(api)
	handler.NewReturnHandler(returnService).RegisterRoutes(api)
	handler.NewInvoiceHandler(invoiceService, returnService).RegisterRoutes(api)
	handler.NewCommissionHandler(commissionService).RegisterRoutes(api)
	handler.NewAuditHandler(auditService).RegisterRoutes(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-sigCtx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
