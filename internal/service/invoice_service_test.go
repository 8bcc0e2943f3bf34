package service

import (
	"context"
	"testing"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	svc         *invoiceService
	invoices    *fakeInvoices
	orders      *fakeOrders
	commissions *fakeCommissions
	customers   *fakeCustomers
	audit       *fakeAudit
	locker      *fakeLocker
	notifier    *fakeNotifier

	invoice  *model.Invoice
	order    *model.Order
	customer *model.Customer
}

// newInvoiceFixture builds an invoice of 5000 over items 1000/1500/2500 with
// commissions 50/75/125 and a customer owing 5000.
func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	customer := &model.Customer{ID: uuid.New(), Name: "Rahim", ShopName: "Rahim Store", OutstandingBalance: dec(5000)}
	rep := uuid.New()
	order := &model.Order{ID: uuid.New(), OrderNo: "ORD-1", CustomerID: &customer.ID, SalesRepID: &rep,
		Status: model.OrderStatusDelivered, TotalAmount: dec(5000)}
	invoice := &model.Invoice{ID: uuid.New(), InvoiceNo: "INV-20250101-00001", OrderID: order.ID, CustomerID: &customer.ID,
		TotalAmount: dec(5000), DueAmount: dec(5000), Status: model.InvoiceStatusUnpaid}

	f := &invoiceFixture{
		invoices:    &fakeInvoices{rows: map[uuid.UUID]*model.Invoice{invoice.ID: invoice}},
		orders:      newFakeOrders(),
		commissions: newFakeCommissions(),
		customers:   &fakeCustomers{rows: map[uuid.UUID]*model.Customer{customer.ID: customer}},
		audit:       &fakeAudit{},
		locker:      newFakeLocker(),
		notifier:    &fakeNotifier{},
		invoice:     invoice,
		order:       order,
		customer:    customer,
	}
	f.orders.add(order,
		model.OrderItem{ProductID: uuid.New(), Quantity: 10, UnitPrice: dec(100), TotalPrice: dec(1000), CommissionEarned: dec(50)},
		model.OrderItem{ProductID: uuid.New(), Quantity: 15, UnitPrice: dec(100), TotalPrice: dec(1500), CommissionEarned: dec(75)},
		model.OrderItem{ProductID: uuid.New(), Quantity: 25, UnitPrice: dec(100), TotalPrice: dec(2500), CommissionEarned: dec(125)},
	)
	f.svc = NewInvoiceService(f.invoices, f.orders, f.commissions, f.customers, f.audit, f.locker,
		&fakeTx{}, f.notifier, quietLogger()).(*invoiceService)
	return f
}

func TestInvoiceService_Recalculate_CascadesRemovedItem(t *testing.T) {
	f := newInvoiceFixture(t)
	f.commissions.rows[f.order.ID] = &model.RepCommission{ID: uuid.New(), OrderID: f.order.ID,
		SalesRepID: *f.order.SalesRepID, TotalCommissionAmount: dec(250), Status: model.CommissionStatusPending}

	// a return removed the 1000 line outside this service
	f.orders.removeItem(f.order.ID, 0)

	res, err := f.svc.Recalculate(context.Background(), uuid.NewString(), f.invoice.ID.String())
	require.NoError(t, err)
	assert.True(t, res.NewTotal.Equal(dec(4000)))
	assert.True(t, res.Diff.Equal(dec(1000)))
	assert.True(t, res.CommissionTotal.Equal(dec(200)))

	assert.True(t, f.invoice.TotalAmount.Equal(dec(4000)))
	assert.True(t, f.invoice.DueAmount.Equal(dec(4000)))
	assert.True(t, f.order.TotalAmount.Equal(dec(4000)))
	assert.True(t, f.commissions.rows[f.order.ID].TotalCommissionAmount.Equal(dec(200)))
	assert.True(t, f.customer.OutstandingBalance.Equal(dec(4000)))

	assert.Equal(t, []string{model.ActionRecalculateInvoice}, f.audit.actions())
	assert.Equal(t, 1, f.notifier.count(EventInvoiceRecalculated))
	assert.Equal(t, []string{"invoice:" + f.invoice.ID.String()}, f.locker.acquired)
	assert.Equal(t, 1, f.locker.released)
}

func TestInvoiceService_Recalculate_Idempotent(t *testing.T) {
	f := newInvoiceFixture(t)
	f.orders.removeItem(f.order.ID, 2)

	first, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
	require.NoError(t, err)
	assert.True(t, first.Diff.Equal(dec(2500)))

	second, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
	require.NoError(t, err)
	assert.True(t, second.Diff.IsZero())
	assert.True(t, second.NewTotal.Equal(first.NewTotal))
	assert.True(t, f.customer.OutstandingBalance.Equal(dec(2500)))
	assert.Len(t, f.audit.rows, 1)
	assert.Equal(t, 1, f.notifier.count(EventInvoiceRecalculated))
}

func TestInvoiceService_Recalculate_NoCommissionRecord(t *testing.T) {
	f := newInvoiceFixture(t)
	f.orders.removeItem(f.order.ID, 0)

	_, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
	require.NoError(t, err)
	assert.Empty(t, f.commissions.rows, "recalculation never invents a payout record")
}

func TestInvoiceService_Recalculate_PartiallyPaid(t *testing.T) {
	f := newInvoiceFixture(t)
	f.invoice.PaidAmount = dec(4500)
	f.orders.removeItem(f.order.ID, 0)

	_, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPaid, f.invoice.Status)
	assert.True(t, f.invoice.DueAmount.Equal(decimal.Zero))
}

func TestInvoiceService_Recalculate_IncreaseRaisesBalance(t *testing.T) {
	f := newInvoiceFixture(t)
	f.invoice.TotalAmount = dec(4500) // stale cache, items say 5000

	res, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
	require.NoError(t, err)
	assert.True(t, res.Diff.Equal(dec(-500)))
	assert.True(t, f.customer.OutstandingBalance.Equal(dec(5500)))
}

func TestInvoiceService_Recalculate_NoCustomer(t *testing.T) {
	f := newInvoiceFixture(t)
	f.invoice.CustomerID = nil
	f.order.CustomerID = nil
	f.orders.removeItem(f.order.ID, 0)

	_, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
	require.NoError(t, err)
	assert.True(t, f.customer.OutstandingBalance.Equal(dec(5000)))
}

func TestInvoiceService_Recalculate_Errors(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		f := newInvoiceFixture(t)
		_, err := f.svc.Recalculate(context.Background(), "", "nope")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("missing invoice", func(t *testing.T) {
		f := newInvoiceFixture(t)
		_, err := f.svc.Recalculate(context.Background(), "", uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("missing order", func(t *testing.T) {
		f := newInvoiceFixture(t)
		delete(f.orders.rows, f.order.ID)
		_, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("no items", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.orders.items[f.order.ID] = nil
		_, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, f.invoice.TotalAmount.Equal(dec(5000)))
	})
	t.Run("locked", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.locker.busy["invoice:"+f.invoice.ID.String()] = true
		_, err := f.svc.Recalculate(context.Background(), "", f.invoice.ID.String())
		assert.ErrorIs(t, err, ErrConflict)
	})
}
