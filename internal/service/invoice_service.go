package service

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/lock"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type RecalculateResult struct {
	InvoiceID       string          `json:"invoiceId"`
	PreviousTotal   decimal.Decimal `json:"previousTotal"`
	NewTotal        decimal.Decimal `json:"newTotal"`
	Diff            decimal.Decimal `json:"diff"`
	CommissionTotal decimal.Decimal `json:"commissionTotal"`
}

// InvoiceService re-derives cached invoice totals from live order items and
// cascades the change to the order, rep commission and customer balance.
type InvoiceService interface {
	Recalculate(ctx context.Context, userID, invoiceID string) (*RecalculateResult, error)
}

type invoiceService struct {
	invoiceRepo    repository.InvoiceRepository
	orderRepo      repository.OrderRepository
	commissionRepo repository.CommissionRepository
	customerRepo   repository.CustomerRepository
	auditRepo      repository.AuditRepository
	locker         lock.Locker
	txManager      repository.TransactionManager
	notifier       Notifier
	logger         *logrus.Logger
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	commissionRepo repository.CommissionRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditRepository,
	locker lock.Locker,
	txManager repository.TransactionManager,
	notifier Notifier,
	logger *logrus.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:    invoiceRepo,
		orderRepo:      orderRepo,
		commissionRepo: commissionRepo,
		customerRepo:   customerRepo,
		auditRepo:      auditRepo,
		locker:         locker,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

// Recalculate is idempotent: with no item change in between, a second call
// finds diff zero and moves nothing.
func (s *invoiceService) Recalculate(ctx context.Context, userID, invoiceID string) (res *RecalculateResult, err error) {
	ctx, span := tracer.Start(ctx, "InvoiceService.Recalculate")
	defer func() { endSpan(span, err) }()

	id, err := parseID("invoiceId", invoiceID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("invoice.id", id.String()))

	release, err := s.locker.Acquire(ctx, "invoice:"+id.String())
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: invoice %s is already being recalculated", ErrConflict, id)
		}
		return nil, err
	}
	defer release()

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr("invoice", err)
	}
	order, err := s.orderRepo.FindByID(ctx, invoice.OrderID)
	if err != nil {
		return nil, lookupErr("order", err)
	}
	items, err := s.orderRepo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order items %w", ErrNotFound)
	}

	newTotal, newCommission := decimal.Zero, decimal.Zero
	for _, it := range items {
		newTotal = newTotal.Add(it.TotalPrice)
		newCommission = newCommission.Add(it.CommissionEarned)
	}
	diff := invoice.TotalAmount.Sub(newTotal)

	customerID := invoice.CustomerID
	if customerID == nil {
		customerID = order.CustomerID
	}

	res = &RecalculateResult{
		InvoiceID:       invoice.ID.String(),
		PreviousTotal:   invoice.TotalAmount,
		NewTotal:        newTotal,
		Diff:            diff,
		CommissionTotal: newCommission,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		due := decimal.Max(newTotal.Sub(invoice.PaidAmount), decimal.Zero)
		status := model.DeriveInvoiceStatus(newTotal, invoice.PaidAmount)
		if err := s.invoiceRepo.UpdateTotals(txCtx, invoice.ID, newTotal, due, status); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		if err := s.orderRepo.UpdateTotal(txCtx, order.ID, newTotal); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		if _, err := s.commissionRepo.FindByOrderID(txCtx, order.ID); err == nil {
			if err := s.commissionRepo.UpdateTotal(txCtx, order.ID, newCommission); err != nil {
				return fmt.Errorf("failed to update rep commission: %w", err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load rep commission: %w", err)
		}

		// a smaller invoice means the customer owes less
		if !diff.IsZero() && customerID != nil {
			if err := s.customerRepo.AdjustOutstanding(txCtx, *customerID, diff.Neg()); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to adjust customer balance: %w", err)
			}
		}

		if diff.IsZero() {
			return nil
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionRecalculateInvoice, invoice.ID.String(), invoice.InvoiceNo, res)
	})
	if err != nil {
		return nil, err
	}

	if !diff.IsZero() {
		s.logger.WithFields(logrus.Fields{
			"invoiceNo": invoice.InvoiceNo,
			"previous":  invoice.TotalAmount.String(),
			"newTotal":  newTotal.String(),
		}).Info("invoice total recalculated")
		s.notifier.Publish(EventInvoiceRecalculated, map[string]interface{}{
			"invoice_id": invoice.ID.String(),
			"new_total":  newTotal.InexactFloat64(),
			"diff":       diff.InexactFloat64(),
		})
	}
	return res, nil
}
