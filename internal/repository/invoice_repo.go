package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	UpdateTotals(ctx context.Context, id uuid.UUID, total, due decimal.Decimal, status string) error
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) UpdateTotals(ctx context.Context, id uuid.UUID, total, due decimal.Decimal, status string) error {
	return GetDB(ctx, r.db).Model(&model.Invoice{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_amount": total,
		"due_amount":   due,
		"status":       status,
	}).Error
}
