package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusUnpaid  = "Unpaid"
	PaymentStatusPartial = "Partial"
	PaymentStatusPaid    = "Paid"
)

// Purchase is a supplier purchase order. Immutable after creation.
type Purchase struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseNo    string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"purchase_no"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	LocationID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"location_id"`
	InvoiceNumber string          `gorm:"type:varchar(100)" json:"invoice_number"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchase_date"`
	DueDate       *time.Time      `json:"due_date"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'Unpaid'" json:"payment_status"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	Items         []PurchaseItem  `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PurchaseItem is one purchase line. StockApplied and PriceApplied record
// which side effects have landed so a retry can replay only the missing ones.
type PurchaseItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity     int             `gorm:"type:int;not null" json:"quantity"`
	FreeQuantity int             `gorm:"type:int;not null;default:0" json:"free_quantity"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"selling_price"`
	MRP          decimal.Decimal `gorm:"column:mrp;type:decimal(18,4);not null;default:0" json:"mrp"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_cost"`
	StockApplied bool            `gorm:"not null;default:false" json:"stock_applied"`
	PriceApplied bool            `gorm:"not null;default:false" json:"price_applied"`
}

// StockUnits is what lands in stock: free units count, they just carry no cost.
func (i PurchaseItem) StockUnits() int {
	return i.Quantity + i.FreeQuantity
}
