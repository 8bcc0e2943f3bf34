package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ReturnTypeDamage = "Damage"

	ReturnStatusPending      = "Pending"
	ReturnStatusReturned     = "Returned"
	ReturnStatusBusinessLoss = "Business Loss"
)

// TerminalReturnStatuses are never left once reached.
var TerminalReturnStatuses = []string{ReturnStatusReturned, ReturnStatusBusinessLoss}

// InventoryReturn is damaged or returned stock awaiting disposition.
type InventoryReturn struct {
	ID              uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id"`
	Product         *Product             `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	LocationID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"location_id"`
	Quantity        int                  `gorm:"type:int;not null" json:"quantity"`
	ReturnType      string               `gorm:"type:varchar(30);not null;default:'Damage'" json:"return_type"`
	Status          string               `gorm:"type:varchar(30);not null;default:'Pending';index" json:"status"`
	Reason          string               `gorm:"type:text" json:"reason"`
	InvoiceID       *uuid.UUID           `gorm:"type:uuid;index" json:"invoice_id"`
	ReturnBatchID   *uuid.UUID           `gorm:"type:uuid;index" json:"return_batch_id"`
	ReturnBatch     *SupplierReturnBatch `gorm:"foreignKey:ReturnBatchID" json:"return_batch,omitempty"`
	DispositionNote string               `gorm:"type:text" json:"disposition_note"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// IsTerminal reports whether the item has already been dispositioned.
func (r InventoryReturn) IsTerminal() bool {
	return r.Status == ReturnStatusReturned || r.Status == ReturnStatusBusinessLoss
}

const (
	BatchStatusPendingCredit = "Pending Credit"
	BatchStatusCredited      = "Credited"
)

// SupplierReturnBatch groups returns shipped back to one supplier for credit.
type SupplierReturnBatch struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BatchNumber string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"batch_number"`
	SupplierID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	TotalItems  int             `gorm:"type:int;not null;default:0" json:"total_items"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_value"`
	Status      string          `gorm:"type:varchar(30);not null;default:'Pending Credit'" json:"status"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

var invoiceRefPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*(.*)$`)

// ParseInvoiceRef splits a legacy "[INV-123] reason" string. ok is false when
// no bracketed invoice number leads the text.
func ParseInvoiceRef(reason string) (invoiceNo, rest string, ok bool) {
	m := invoiceRefPattern.FindStringSubmatch(strings.TrimSpace(reason))
	if m == nil {
		return "", reason, false
	}
	no := strings.TrimSpace(m[1])
	if no == "" {
		return "", reason, false
	}
	return no, m[2], true
}
