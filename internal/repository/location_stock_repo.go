package repository

import (
	"context"
	"time"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationStockRepository interface {
	Find(ctx context.Context, productID, locationID uuid.UUID) (*model.LocationStock, error)
	FindForUpdate(ctx context.Context, productID, locationID uuid.UUID) (*model.LocationStock, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.LocationStock, error)
	Increment(ctx context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error
	SetQuantity(ctx context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error
	ReduceDamaged(ctx context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error
	SumByProduct(ctx context.Context, productID uuid.UUID) (quantity, damaged int, err error)
}

type locationStockRepository struct {
	db *gorm.DB
}

func NewLocationStockRepository(db *gorm.DB) LocationStockRepository {
	return &locationStockRepository{db: db}
}

var locationStockKey = []clause.Column{{Name: "product_id"}, {Name: "location_id"}}

func (r *locationStockRepository) Find(ctx context.Context, productID, locationID uuid.UUID) (*model.LocationStock, error) {
	var row model.LocationStock
	if err := GetDB(ctx, r.db).Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *locationStockRepository) FindForUpdate(ctx context.Context, productID, locationID uuid.UUID) (*model.LocationStock, error) {
	var row model.LocationStock
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *locationStockRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.LocationStock, error) {
	var rows []model.LocationStock
	if err := GetDB(ctx, r.db).Where("product_id = ?", productID).
		Order("last_updated desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Increment adds qty in a single statement, creating the row on first movement.
func (r *locationStockRepository) Increment(ctx context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error {
	row := model.LocationStock{ProductID: productID, LocationID: locationID, Quantity: qty, LastUpdated: at}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: locationStockKey,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":     gorm.Expr("location_stocks.quantity + ?", qty),
			"last_updated": at,
		}),
	}).Create(&row).Error
}

func (r *locationStockRepository) SetQuantity(ctx context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error {
	row := model.LocationStock{ProductID: productID, LocationID: locationID, Quantity: qty, LastUpdated: at}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   locationStockKey,
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "last_updated"}),
	}).Create(&row).Error
}

// ReduceDamaged subtracts with a floor of zero. A missing row is left alone.
func (r *locationStockRepository) ReduceDamaged(ctx context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.LocationStock{}).
		Where("product_id = ? AND location_id = ?", productID, locationID).
		Updates(map[string]interface{}{
			"damaged_quantity": gorm.Expr("GREATEST(damaged_quantity - ?, 0)", qty),
			"last_updated":     at,
		}).Error
}

func (r *locationStockRepository) SumByProduct(ctx context.Context, productID uuid.UUID) (int, int, error) {
	var sums struct {
		Quantity int
		Damaged  int
	}
	err := GetDB(ctx, r.db).Model(&model.LocationStock{}).
		Select("COALESCE(SUM(quantity), 0) AS quantity, COALESCE(SUM(damaged_quantity), 0) AS damaged").
		Where("product_id = ?", productID).
		Scan(&sums).Error
	if err != nil {
		return 0, 0, err
	}
	return sums.Quantity, sums.Damaged, nil
}
