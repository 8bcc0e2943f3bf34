package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusDelivered = "Delivered"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Order is a sales order. TotalAmount is a cached sum of its items.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNo     string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_no"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer    *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	SalesRepID  *uuid.UUID      `gorm:"type:uuid;index" json:"sales_rep_id"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_amount"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem is the source of truth for invoice and commission totals.
type OrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity         int             `gorm:"type:int;not null" json:"quantity"`
	FreeQuantity     int             `gorm:"type:int;not null;default:0" json:"free_quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_price"`
	CommissionEarned decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"commission_earned"`
}
