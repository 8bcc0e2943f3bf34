package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionStockAdjust        = "STOCK_ADJUST"
	ActionStockReconcile     = "STOCK_RECONCILE"
	ActionCreatePurchase     = "CREATE_PURCHASE"
	ActionReapplyPurchase    = "REAPPLY_PURCHASE"
	ActionSendToSupplier     = "SEND_TO_SUPPLIER"
	ActionMarkBusinessLoss   = "MARK_BUSINESS_LOSS"
	ActionRecalculateInvoice = "RECALCULATE_INVOICE"
	ActionMarkCommissionPaid = "MARK_COMMISSION_PAID"
)

// AuditLog tracks who changed what and when
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // nil for automated repairs
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
