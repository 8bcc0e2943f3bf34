package service

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commissionFixture struct {
	svc         *commissionService
	orders      *fakeOrders
	commissions *fakeCommissions
	audit       *fakeAudit
	rep         uuid.UUID
}

func newCommissionFixture(t *testing.T) *commissionFixture {
	t.Helper()
	f := &commissionFixture{
		orders:      newFakeOrders(),
		commissions: newFakeCommissions(),
		audit:       &fakeAudit{},
		rep:         uuid.New(),
	}
	f.svc = NewCommissionService(f.orders, f.commissions, f.audit, &fakeTx{}).(*commissionService)
	f.svc.now = func() time.Time { return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func (f *commissionFixture) order(no, status string, commissions ...int64) *model.Order {
	o := &model.Order{
		ID: uuid.New(), OrderNo: no, SalesRepID: &f.rep, Status: status, TotalAmount: dec(1000),
		Customer:  &model.Customer{Name: "Karim", ShopName: "Karim Traders"},
		CreatedAt: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
	}
	var items []model.OrderItem
	for _, c := range commissions {
		items = append(items, model.OrderItem{ProductID: uuid.New(), TotalPrice: dec(500), CommissionEarned: dec(c)})
	}
	f.orders.add(o, items...)
	return o
}

func TestCommissionService_CommissionFor(t *testing.T) {
	f := newCommissionFixture(t)
	first := f.order("ORD-1", model.OrderStatusDelivered, 70, 50)
	second := f.order("ORD-2", model.OrderStatusDelivered, 80)
	f.order("ORD-3", model.OrderStatusPending, 999)
	f.commissions.rows[first.ID] = &model.RepCommission{OrderID: first.ID, SalesRepID: f.rep,
		TotalCommissionAmount: dec(120), Status: model.CommissionStatusPaid}

	rows, err := f.svc.CommissionFor(context.Background(), f.rep.String())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, CommissionRow{
		ID: first.ID.String(), OrderRef: "ORD-1", ShopName: "Karim Traders",
		OrderTotal: 1000, Commission: 120, Status: model.CommissionStatusPaid, Date: "2025-01-15",
	}, rows[0])
	assert.Equal(t, second.ID.String(), rows[1].ID)
	assert.Equal(t, float64(80), rows[1].Commission)
	assert.Equal(t, model.CommissionStatusPending, rows[1].Status)
}

func TestCommissionService_CommissionFor_ReflectsLiveItems(t *testing.T) {
	f := newCommissionFixture(t)
	o := f.order("ORD-1", model.OrderStatusCompleted, 70, 50)
	// a stale payout record does not mask the live sum
	f.commissions.rows[o.ID] = &model.RepCommission{OrderID: o.ID, TotalCommissionAmount: dec(500), Status: model.CommissionStatusPending}

	f.orders.removeItem(o.ID, 0)
	rows, err := f.svc.CommissionFor(context.Background(), f.rep.String())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(50), rows[0].Commission)
}

func TestCommissionService_CommissionFor_FallsBackToCustomerName(t *testing.T) {
	f := newCommissionFixture(t)
	o := f.order("ORD-1", model.OrderStatusDelivered, 10)
	o.Customer = &model.Customer{Name: "Walk-in"}

	rows, err := f.svc.CommissionFor(context.Background(), f.rep.String())
	require.NoError(t, err)
	assert.Equal(t, "Walk-in", rows[0].ShopName)
}

func TestCommissionService_CommissionFor_BadRep(t *testing.T) {
	f := newCommissionFixture(t)
	_, err := f.svc.CommissionFor(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCommissionService_MarkPaid(t *testing.T) {
	f := newCommissionFixture(t)
	o := f.order("ORD-9", model.OrderStatusDelivered, 30, 45)

	require.NoError(t, f.svc.MarkPaid(context.Background(), uuid.NewString(), o.ID.String()))
	rc := f.commissions.rows[o.ID]
	require.NotNil(t, rc)
	assert.Equal(t, model.CommissionStatusPaid, rc.Status)
	assert.True(t, rc.TotalCommissionAmount.Equal(dec(75)))
	require.NotNil(t, rc.PaidAt)
	assert.Equal(t, f.svc.now(), *rc.PaidAt)
	assert.Equal(t, []string{model.ActionMarkCommissionPaid}, f.audit.actions())

	rows, err := f.svc.CommissionFor(context.Background(), f.rep.String())
	require.NoError(t, err)
	assert.Equal(t, model.CommissionStatusPaid, rows[0].Status)
}

func TestCommissionService_MarkPaid_Errors(t *testing.T) {
	f := newCommissionFixture(t)
	assert.ErrorIs(t, f.svc.MarkPaid(context.Background(), "", uuid.NewString()), ErrNotFound)

	o := f.order("ORD-X", model.OrderStatusDelivered, 5)
	o.SalesRepID = nil
	assert.ErrorIs(t, f.svc.MarkPaid(context.Background(), "", o.ID.String()), ErrInvalidInput)
}
