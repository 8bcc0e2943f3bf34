package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseInvoiceRef(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		wantNo string
		rest   string
		ok     bool
	}{
		{"prefixed", "[INV-123] crushed in transit", "INV-123", "crushed in transit", true},
		{"no space", "[INV-20250101-00001]leaking", "INV-20250101-00001", "leaking", true},
		{"leading whitespace", "  [INV-9] x", "INV-9", "x", true},
		{"plain text", "damaged shelf", "", "damaged shelf", false},
		{"empty brackets", "[] nothing", "", "[] nothing", false},
		{"bracket later", "see [INV-1]", "", "see [INV-1]", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			no, rest, ok := ParseInvoiceRef(tt.reason)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantNo, no)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestDeriveInvoiceStatus(t *testing.T) {
	d := decimal.NewFromInt
	assert.Equal(t, InvoiceStatusUnpaid, DeriveInvoiceStatus(d(4000), d(0)))
	assert.Equal(t, InvoiceStatusPartial, DeriveInvoiceStatus(d(4000), d(1000)))
	assert.Equal(t, InvoiceStatusPaid, DeriveInvoiceStatus(d(4000), d(4000)))
	// a shrinking invoice can end up overpaid
	assert.Equal(t, InvoiceStatusPaid, DeriveInvoiceStatus(d(3000), d(4000)))
}

func TestInventoryReturn_IsTerminal(t *testing.T) {
	assert.False(t, InventoryReturn{Status: ReturnStatusPending}.IsTerminal())
	assert.True(t, InventoryReturn{Status: ReturnStatusReturned}.IsTerminal())
	assert.True(t, InventoryReturn{Status: ReturnStatusBusinessLoss}.IsTerminal())
}

func TestPurchaseItem_StockUnits(t *testing.T) {
	assert.Equal(t, 110, PurchaseItem{Quantity: 100, FreeQuantity: 10}.StockUnits())
}
