package service

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRow is one order in a rep's commission statement.
type CommissionRow struct {
	ID         string  `json:"id"`
	OrderRef   string  `json:"orderRef"`
	ShopName   string  `json:"shopName"`
	OrderTotal float64 `json:"orderTotal"`
	Commission float64 `json:"commission"`
	Status     string  `json:"status"`
	Date       string  `json:"date"`
}

var commissionableStatuses = []string{model.OrderStatusDelivered, model.OrderStatusCompleted}

type CommissionService interface {
	CommissionFor(ctx context.Context, repID string) ([]CommissionRow, error)
	MarkPaid(ctx context.Context, userID, orderID string) error
}

type commissionService struct {
	orderRepo      repository.OrderRepository
	commissionRepo repository.CommissionRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	now            func() time.Time
}

func NewCommissionService(
	orderRepo repository.OrderRepository,
	commissionRepo repository.CommissionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CommissionService {
	return &commissionService{
		orderRepo:      orderRepo,
		commissionRepo: commissionRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		now:            time.Now,
	}
}

// CommissionFor always sums the live order items; nothing is cached, so edits
// to an order show up in the rep's statement immediately.
func (s *commissionService) CommissionFor(ctx context.Context, repID string) (rows []CommissionRow, err error) {
	ctx, span := tracer.Start(ctx, "CommissionService.CommissionFor")
	defer func() { endSpan(span, err) }()

	rid, err := parseID("repId", repID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListByRep(ctx, rid, commissionableStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	records, err := s.commissionRepo.FindByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission records: %w", err)
	}
	status := make(map[uuid.UUID]string, len(records))
	for _, r := range records {
		status[r.OrderID] = r.Status
	}

	rows = make([]CommissionRow, 0, len(orders))
	for _, o := range orders {
		row := CommissionRow{
			ID:         o.ID.String(),
			OrderRef:   o.OrderNo,
			OrderTotal: o.TotalAmount.InexactFloat64(),
			Commission: sumCommission(o.Items).InexactFloat64(),
			Status:     model.CommissionStatusPending,
			Date:       dateOf(o.CreatedAt),
		}
		if st, ok := status[o.ID]; ok && st != "" {
			row.Status = st
		}
		if o.Customer != nil {
			row.ShopName = o.Customer.ShopName
			if row.ShopName == "" {
				row.ShopName = o.Customer.Name
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MarkPaid records the payout at the order's current commission.
func (s *commissionService) MarkPaid(ctx context.Context, userID, orderID string) error {
	oid, err := parseID("orderId", orderID)
	if err != nil {
		return err
	}
	order, err := s.orderRepo.FindByID(ctx, oid)
	if err != nil {
		return lookupErr("order", err)
	}
	if order.SalesRepID == nil {
		return invalidf("order %s has no sales rep", order.OrderNo)
	}
	items, err := s.orderRepo.ListItems(ctx, oid)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	paidAt := s.now()
	record := &model.RepCommission{
		OrderID:               oid,
		SalesRepID:            *order.SalesRepID,
		TotalCommissionAmount: sumCommission(items),
		Status:                model.CommissionStatusPaid,
		PaidAt:                &paidAt,
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.commissionRepo.Upsert(txCtx, record); err != nil {
			return fmt.Errorf("failed to record commission payout: %w", err)
		}
		details := map[string]interface{}{"order_no": order.OrderNo, "amount": record.TotalCommissionAmount}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionMarkCommissionPaid, oid.String(), order.OrderNo, details)
	})
}

func sumCommission(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.CommissionEarned)
	}
	return total
}
