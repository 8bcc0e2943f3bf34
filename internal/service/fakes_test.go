package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"backoffice/internal/lock"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fakeTx struct{ calls int }

func (f *fakeTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Publish(event string, _ interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) count(event string) int {
	n := 0
	for _, e := range f.events {
		if e == event {
			n++
		}
	}
	return n
}

type fakeCounter struct {
	values map[string]int64
	err    error
}

func newFakeCounter() *fakeCounter { return &fakeCounter{values: map[string]int64{}} }

func (f *fakeCounter) Next(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.values[key]++
	return f.values[key], nil
}

type fakeLocker struct {
	busy     map[string]bool
	acquired []string
	released int
}

func newFakeLocker() *fakeLocker { return &fakeLocker{busy: map[string]bool{}} }

func (f *fakeLocker) Acquire(_ context.Context, key string) (func(), error) {
	if f.busy[key] {
		return nil, fmt.Errorf("%s: %w", key, lock.ErrNotObtained)
	}
	f.acquired = append(f.acquired, key)
	return func() { f.released++ }, nil
}

// ---- products / stock ----

type fakeProducts struct {
	rows        map[uuid.UUID]*model.Product
	adjustErr   map[uuid.UUID]error
	pricesErr   map[uuid.UUID]error
	priceWrites int
}

func newFakeProducts(products ...*model.Product) *fakeProducts {
	f := &fakeProducts{rows: map[uuid.UUID]*model.Product{}, adjustErr: map[uuid.UUID]error{}, pricesErr: map[uuid.UUID]error{}}
	for _, p := range products {
		f.rows[p.ID] = p
	}
	return f
}

func (f *fakeProducts) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := f.rows[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProducts) UpdatePrices(_ context.Context, id uuid.UUID, cost, selling, mrp decimal.Decimal) error {
	if err := f.pricesErr[id]; err != nil {
		return err
	}
	p, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.priceWrites++
	p.CostPrice, p.SellingPrice, p.MRP = cost, selling, mrp
	return nil
}

func (f *fakeProducts) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	if err := f.adjustErr[id]; err != nil {
		return err
	}
	p, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity += delta
	return nil
}

func (f *fakeProducts) ReduceDamaged(_ context.Context, id uuid.UUID, qty int) error {
	if p, ok := f.rows[id]; ok {
		p.DamagedQuantity = max(p.DamagedQuantity-qty, 0)
	}
	return nil
}

func (f *fakeProducts) SetAggregates(_ context.Context, id uuid.UUID, stock, damaged int) error {
	p, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity, p.DamagedQuantity = stock, damaged
	return nil
}

type stockKey struct{ product, location uuid.UUID }

type fakeLocations struct {
	rows map[stockKey]*model.LocationStock
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{rows: map[stockKey]*model.LocationStock{}}
}

func (f *fakeLocations) put(productID, locationID uuid.UUID, qty, damaged int) {
	f.rows[stockKey{productID, locationID}] = &model.LocationStock{
		ID: uuid.New(), ProductID: productID, LocationID: locationID, Quantity: qty, DamagedQuantity: damaged,
	}
}

func (f *fakeLocations) get(productID, locationID uuid.UUID) *model.LocationStock {
	return f.rows[stockKey{productID, locationID}]
}

func (f *fakeLocations) Find(_ context.Context, productID, locationID uuid.UUID) (*model.LocationStock, error) {
	r, ok := f.rows[stockKey{productID, locationID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeLocations) FindForUpdate(ctx context.Context, productID, locationID uuid.UUID) (*model.LocationStock, error) {
	return f.Find(ctx, productID, locationID)
}

func (f *fakeLocations) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.LocationStock, error) {
	var out []model.LocationStock
	for k, r := range f.rows {
		if k.product == productID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID.String() < out[j].LocationID.String() })
	return out, nil
}

func (f *fakeLocations) upsert(productID, locationID uuid.UUID) *model.LocationStock {
	k := stockKey{productID, locationID}
	r, ok := f.rows[k]
	if !ok {
		r = &model.LocationStock{ID: uuid.New(), ProductID: productID, LocationID: locationID}
		f.rows[k] = r
	}
	return r
}

func (f *fakeLocations) Increment(_ context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error {
	r := f.upsert(productID, locationID)
	r.Quantity += qty
	r.LastUpdated = at
	return nil
}

func (f *fakeLocations) SetQuantity(_ context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error {
	r := f.upsert(productID, locationID)
	r.Quantity = qty
	r.LastUpdated = at
	return nil
}

func (f *fakeLocations) ReduceDamaged(_ context.Context, productID, locationID uuid.UUID, qty int, at time.Time) error {
	if r, ok := f.rows[stockKey{productID, locationID}]; ok {
		r.DamagedQuantity = max(r.DamagedQuantity-qty, 0)
		r.LastUpdated = at
	}
	return nil
}

func (f *fakeLocations) SumByProduct(_ context.Context, productID uuid.UUID) (int, int, error) {
	q, d := 0, 0
	for k, r := range f.rows {
		if k.product == productID {
			q += r.Quantity
			d += r.DamagedQuantity
		}
	}
	return q, d, nil
}

type fakeMovements struct {
	rows []model.StockMovement
}

func (f *fakeMovements) Create(_ context.Context, m *model.StockMovement) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeMovements) ListByProduct(_ context.Context, productID uuid.UUID, limit int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].ProductID == productID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

type fakeAudit struct {
	rows []model.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, entry *model.AuditLog) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	f.rows = append(f.rows, *entry)
	return nil
}

func (f *fakeAudit) List(_ context.Context, action string, offset, limit int) ([]model.AuditLog, int64, error) {
	var matched []model.AuditLog
	for _, r := range f.rows {
		if action == "" || r.Action == action {
			matched = append(matched, r)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], total, nil
}

func (f *fakeAudit) actions() []string {
	out := make([]string, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r.Action)
	}
	return out
}

// ---- purchases ----

type fakePurchases struct {
	rows      map[uuid.UUID]*model.Purchase
	createErr error
}

func newFakePurchases() *fakePurchases {
	return &fakePurchases{rows: map[uuid.UUID]*model.Purchase{}}
}

func (f *fakePurchases) Create(_ context.Context, p *model.Purchase) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = uuid.New()
	for i := range p.Items {
		p.Items[i].ID = uuid.New()
		p.Items[i].PurchaseID = p.ID
	}
	cp := *p
	cp.Items = append([]model.PurchaseItem(nil), p.Items...)
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePurchases) FindByIDWithItems(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Items = append([]model.PurchaseItem(nil), p.Items...)
	return &cp, nil
}

func (f *fakePurchases) MarkItemApplied(_ context.Context, itemID uuid.UUID, stock, price bool) error {
	for _, p := range f.rows {
		for i := range p.Items {
			if p.Items[i].ID == itemID {
				p.Items[i].StockApplied = p.Items[i].StockApplied || stock
				p.Items[i].PriceApplied = p.Items[i].PriceApplied || price
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

// ---- orders / invoices / commissions / customers ----

type fakeOrders struct {
	rows  map[uuid.UUID]*model.Order
	items map[uuid.UUID][]model.OrderItem
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{rows: map[uuid.UUID]*model.Order{}, items: map[uuid.UUID][]model.OrderItem{}}
}

func (f *fakeOrders) add(o *model.Order, items ...model.OrderItem) {
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = o.ID
	}
	f.rows[o.ID] = o
	f.items[o.ID] = items
}

func (f *fakeOrders) removeItem(orderID uuid.UUID, idx int) {
	items := f.items[orderID]
	f.items[orderID] = append(items[:idx:idx], items[idx+1:]...)
}

func (f *fakeOrders) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) ListItems(_ context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	return append([]model.OrderItem(nil), f.items[orderID]...), nil
}

func (f *fakeOrders) UpdateTotal(_ context.Context, id uuid.UUID, total decimal.Decimal) error {
	if o, ok := f.rows[id]; ok {
		o.TotalAmount = total
	}
	return nil
}

func (f *fakeOrders) ListByRep(_ context.Context, repID uuid.UUID, statuses []string) ([]model.Order, error) {
	allowed := map[string]bool{}
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []model.Order
	for _, o := range f.rows {
		if o.SalesRepID != nil && *o.SalesRepID == repID && allowed[o.Status] {
			cp := *o
			cp.Items = append([]model.OrderItem(nil), f.items[o.ID]...)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNo < out[j].OrderNo })
	return out, nil
}

type fakeInvoices struct {
	rows map[uuid.UUID]*model.Invoice
}

func (f *fakeInvoices) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoices) UpdateTotals(_ context.Context, id uuid.UUID, total, due decimal.Decimal, status string) error {
	if inv, ok := f.rows[id]; ok {
		inv.TotalAmount, inv.DueAmount, inv.Status = total, due, status
	}
	return nil
}

type fakeCommissions struct {
	rows map[uuid.UUID]*model.RepCommission
}

func newFakeCommissions() *fakeCommissions {
	return &fakeCommissions{rows: map[uuid.UUID]*model.RepCommission{}}
}

func (f *fakeCommissions) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.RepCommission, error) {
	rc, ok := f.rows[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rc
	return &cp, nil
}

func (f *fakeCommissions) FindByOrderIDs(_ context.Context, ids []uuid.UUID) ([]model.RepCommission, error) {
	var out []model.RepCommission
	for _, id := range ids {
		if rc, ok := f.rows[id]; ok {
			out = append(out, *rc)
		}
	}
	return out, nil
}

func (f *fakeCommissions) UpdateTotal(_ context.Context, orderID uuid.UUID, total decimal.Decimal) error {
	if rc, ok := f.rows[orderID]; ok {
		rc.TotalCommissionAmount = total
	}
	return nil
}

func (f *fakeCommissions) Upsert(_ context.Context, c *model.RepCommission) error {
	cp := *c
	if existing, ok := f.rows[c.OrderID]; ok {
		cp.ID = existing.ID
	} else {
		cp.ID = uuid.New()
	}
	f.rows[c.OrderID] = &cp
	return nil
}

type fakeCustomers struct {
	rows map[uuid.UUID]*model.Customer
}

func (f *fakeCustomers) AdjustOutstanding(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := f.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.OutstandingBalance = c.OutstandingBalance.Add(delta)
	return nil
}

// ---- returns ----

type fakeReturns struct {
	rows        map[uuid.UUID]*model.InventoryReturn
	finalizeErr map[uuid.UUID]error
	// raceLost simulates another request finalising the item first
	raceLost map[uuid.UUID]bool
}

func newFakeReturns(items ...*model.InventoryReturn) *fakeReturns {
	f := &fakeReturns{rows: map[uuid.UUID]*model.InventoryReturn{}, finalizeErr: map[uuid.UUID]error{}, raceLost: map[uuid.UUID]bool{}}
	for _, it := range items {
		f.rows[it.ID] = it
	}
	return f
}

func (f *fakeReturns) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.InventoryReturn, error) {
	var out []model.InventoryReturn
	for _, id := range ids {
		if r, ok := f.rows[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReturns) Finalize(_ context.Context, id uuid.UUID, status string, batchID *uuid.UUID, note string) (bool, error) {
	if err := f.finalizeErr[id]; err != nil {
		return false, err
	}
	if f.raceLost[id] {
		return false, nil
	}
	r, ok := f.rows[id]
	if !ok || r.IsTerminal() {
		return false, nil
	}
	r.Status = status
	r.ReturnBatchID = batchID
	if note != "" {
		r.DispositionNote = note
	}
	return true, nil
}

func (f *fakeReturns) ListByInvoice(_ context.Context, invoiceID uuid.UUID, invoiceNo string) ([]model.InventoryReturn, error) {
	var out []model.InventoryReturn
	for _, r := range f.rows {
		if r.InvoiceID != nil && *r.InvoiceID == invoiceID {
			out = append(out, *r)
			continue
		}
		if no, _, ok := model.ParseInvoiceRef(r.Reason); ok && r.InvoiceID == nil && no == invoiceNo {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

type fakeBatches struct {
	rows map[uuid.UUID]*model.SupplierReturnBatch
}

func newFakeBatches() *fakeBatches {
	return &fakeBatches{rows: map[uuid.UUID]*model.SupplierReturnBatch{}}
}

func (f *fakeBatches) Create(_ context.Context, b *model.SupplierReturnBatch) error {
	b.ID = uuid.New()
	cp := *b
	f.rows[b.ID] = &cp
	return nil
}

func (f *fakeBatches) UpdateTotals(_ context.Context, id uuid.UUID, items int, value decimal.Decimal) error {
	if b, ok := f.rows[id]; ok {
		b.TotalItems, b.TotalValue = items, value
	}
	return nil
}

func (f *fakeBatches) only() *model.SupplierReturnBatch {
	for _, b := range f.rows {
		return b
	}
	return nil
}
