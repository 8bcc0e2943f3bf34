package repository

import (
	"context"
	"strings"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReturnRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.InventoryReturn, error)
	// Finalize moves a non-terminal item to status. It reports false when the
	// item was already terminal, so a concurrent caller cannot process it twice.
	Finalize(ctx context.Context, id uuid.UUID, status string, batchID *uuid.UUID, note string) (bool, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID, invoiceNo string) ([]model.InventoryReturn, error)
}

type returnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.InventoryReturn, error) {
	var items []model.InventoryReturn
	if len(ids) == 0 {
		return items, nil
	}
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *returnRepository) Finalize(ctx context.Context, id uuid.UUID, status string, batchID *uuid.UUID, note string) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if batchID != nil {
		updates["return_batch_id"] = *batchID
	}
	if note != "" {
		updates["disposition_note"] = note
	}
	res := GetDB(ctx, r.db).Model(&model.InventoryReturn{}).
		Where("id = ? AND status NOT IN ?", id, model.TerminalReturnStatuses).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListByInvoice matches the foreign key and, for rows written before it
// existed, the "[INVOICE_NO] reason" prefix.
func (r *returnRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID, invoiceNo string) ([]model.InventoryReturn, error) {
	var items []model.InventoryReturn
	db := GetDB(ctx, r.db).Preload("Product").Preload("ReturnBatch")
	if invoiceNo != "" {
		db = db.Where("invoice_id = ? OR (invoice_id IS NULL AND reason LIKE ?)", invoiceID, "["+escapeLike(invoiceNo)+"]%")
	} else {
		db = db.Where("invoice_id = ?", invoiceID)
	}
	if err := db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
