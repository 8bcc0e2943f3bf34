package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReturnBatchRepository interface {
	Create(ctx context.Context, batch *model.SupplierReturnBatch) error
	UpdateTotals(ctx context.Context, id uuid.UUID, items int, value decimal.Decimal) error
}

type returnBatchRepository struct {
	db *gorm.DB
}

func NewReturnBatchRepository(db *gorm.DB) ReturnBatchRepository {
	return &returnBatchRepository{db: db}
}

func (r *returnBatchRepository) Create(ctx context.Context, batch *model.SupplierReturnBatch) error {
	return translate(GetDB(ctx, r.db).Create(batch).Error)
}

func (r *returnBatchRepository) UpdateTotals(ctx context.Context, id uuid.UUID, items int, value decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.SupplierReturnBatch{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_items": items,
		"total_value": value,
	}).Error
}
