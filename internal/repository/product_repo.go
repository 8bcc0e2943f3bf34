package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	UpdatePrices(ctx context.Context, id uuid.UUID, cost, selling, mrp decimal.Decimal) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
	ReduceDamaged(ctx context.Context, id uuid.UUID, qty int) error
	SetAggregates(ctx context.Context, id uuid.UUID, stock, damaged int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdatePrices applies last-purchase-wins pricing.
func (r *productRepository) UpdatePrices(ctx context.Context, id uuid.UUID, cost, selling, mrp decimal.Decimal) error {
	res := GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"cost_price":    cost,
		"selling_price": selling,
		"mrp":           mrp,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	res := GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReduceDamaged subtracts with a floor of zero.
func (r *productRepository) ReduceDamaged(ctx context.Context, id uuid.UUID, qty int) error {
	return GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).
		Update("damaged_quantity", gorm.Expr("GREATEST(damaged_quantity - ?, 0)", qty)).Error
}

func (r *productRepository) SetAggregates(ctx context.Context, id uuid.UUID, stock, damaged int) error {
	return GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock_quantity":   stock,
		"damaged_quantity": damaged,
	}).Error
}
