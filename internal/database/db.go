package database

import (
	"fmt"
	"time"

	"backoffice/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection opens the PostgreSQL pool, installs query tracing and
// migrates the engine's tables.
func NewConnection(dsn string, logger *logrus.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		logger.WithError(err).Warn("failed to install otelgorm plugin")
	}

	if err := Migrate(db); err != nil {
		logger.WithError(err).Warn("failed to auto-migrate models")
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.LocationStock{},
		&model.StockMovement{},
		&model.Supplier{},
		&model.Customer{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Invoice{},
		&model.RepCommission{},
		&model.SupplierReturnBatch{},
		&model.InventoryReturn{},
		&model.Sequence{},
		&model.AuditLog{},
	)
}
