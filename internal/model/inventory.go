package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalogue master. StockQuantity and DamagedQuantity are
// aggregates over LocationStock rows and may drift until reconciled.
type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU             string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"cost_price"`
	SellingPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"selling_price"`
	MRP             decimal.Decimal `gorm:"column:mrp;type:decimal(18,4);not null;default:0" json:"mrp"`
	StockQuantity   int             `gorm:"type:int;default:0;not null" json:"stock_quantity"`
	DamagedQuantity int             `gorm:"type:int;default:0;not null" json:"damaged_quantity"`
	MinStockLevel   int             `gorm:"type:int;default:0;not null" json:"min_stock_level"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// LocationStock holds good and damaged quantity of one product at one location.
// Rows are created on first movement and never deleted.
type LocationStock struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_stock_product_location" json:"product_id"`
	LocationID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_location_stock_product_location" json:"location_id"`
	Quantity        int       `gorm:"type:int;default:0;not null" json:"quantity"`
	DamagedQuantity int       `gorm:"type:int;default:0;not null" json:"damaged_quantity"`
	LastUpdated     time.Time `gorm:"not null" json:"last_updated"`
}

// Movement types recorded in the stock journal
const (
	MovementPurchaseIn     = "PURCHASE_IN"
	MovementStockTake      = "STOCK_TAKE"
	MovementDamageReturned = "DAMAGE_RETURNED"
	MovementDamageWriteOff = "DAMAGE_WRITE_OFF"
)

// StockMovement is the append-only journal of ledger mutations.
type StockMovement struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	LocationID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"location_id"`
	MovementType    string     `gorm:"type:varchar(30);not null" json:"movement_type"`
	QuantityChanged int        `gorm:"type:int;not null;default:0" json:"quantity_changed"`
	DamagedChanged  int        `gorm:"type:int;not null;default:0" json:"damaged_changed"`
	ReferenceID     *uuid.UUID `gorm:"type:uuid;index" json:"reference_id"` // purchase, return or batch id
	Note            string     `gorm:"type:text" json:"note"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
}
