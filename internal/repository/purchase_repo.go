package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	MarkItemApplied(ctx context.Context, itemID uuid.UUID, stock, price bool) error
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create inserts the header and its Items in one statement batch.
func (r *purchaseRepository) Create(ctx context.Context, purchase *model.Purchase) error {
	return translate(GetDB(ctx, r.db).Create(purchase).Error)
}

func (r *purchaseRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := GetDB(ctx, r.db).Preload("Items").First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// MarkItemApplied only ever raises flags; a false argument leaves the column untouched.
func (r *purchaseRepository) MarkItemApplied(ctx context.Context, itemID uuid.UUID, stock, price bool) error {
	updates := map[string]interface{}{}
	if stock {
		updates["stock_applied"] = true
	}
	if price {
		updates["price_applied"] = true
	}
	if len(updates) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(&model.PurchaseItem{}).Where("id = ?", itemID).Updates(updates).Error
}
