package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommissionRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.RepCommission, error)
	FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]model.RepCommission, error)
	UpdateTotal(ctx context.Context, orderID uuid.UUID, total decimal.Decimal) error
	Upsert(ctx context.Context, commission *model.RepCommission) error
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*model.RepCommission, error) {
	var rc model.RepCommission
	if err := GetDB(ctx, r.db).First(&rc, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *commissionRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]model.RepCommission, error) {
	var rows []model.RepCommission
	if len(orderIDs) == 0 {
		return rows, nil
	}
	if err := GetDB(ctx, r.db).Where("order_id IN ?", orderIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *commissionRepository) UpdateTotal(ctx context.Context, orderID uuid.UUID, total decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.RepCommission{}).Where("order_id = ?", orderID).
		Update("total_commission_amount", total).Error
}

func (r *commissionRepository) Upsert(ctx context.Context, commission *model.RepCommission) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_commission_amount", "status", "paid_at", "updated_at"}),
	}).Create(commission).Error
}
