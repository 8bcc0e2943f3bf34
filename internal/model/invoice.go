package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusUnpaid  = "Unpaid"
	InvoiceStatusPartial = "Partial"
	InvoiceStatusPaid    = "Paid"
)

// Invoice mirrors exactly one order. TotalAmount must equal the sum of the
// order's current items; Recalculate repairs any drift.
type Invoice struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNo   string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_no"`
	OrderID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"paid_amount"`
	DueAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"due_amount"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Unpaid';index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DeriveInvoiceStatus maps a paid/total pair onto the invoice status.
func DeriveInvoiceStatus(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartial
	default:
		return InvoiceStatusUnpaid
	}
}

const (
	CommissionStatusPending = "Pending"
	CommissionStatusPaid    = "Paid"
)

// RepCommission tracks payout of a rep's commission on one order.
type RepCommission struct {
	ID                    uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID               uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	SalesRepID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"sales_rep_id"`
	TotalCommissionAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_commission_amount"`
	Status                string          `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	PaidAt                *time.Time      `json:"paid_at"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
