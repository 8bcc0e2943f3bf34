package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	AdjustOutstanding(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// AdjustOutstanding adds delta (which may be negative) without a read round trip.
func (r *customerRepository) AdjustOutstanding(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := GetDB(ctx, r.db).Model(&model.Customer{}).Where("id = ?", id).
		Update("outstanding_balance", gorm.Expr("outstanding_balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
