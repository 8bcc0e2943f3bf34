package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/lock"
	"backoffice/internal/logger"
	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/sequence"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type SendToSupplierRequest struct {
	ItemIDs    []string `json:"itemIds" binding:"required,min=1,dive,uuid"`
	SupplierID string   `json:"supplierId" binding:"required,uuid"`
}

type BusinessLossRequest struct {
	ItemIDs []string `json:"itemIds" binding:"required,min=1,dive,uuid"`
	Reason  string   `json:"reason"`
}

type SendToSupplierResult struct {
	BatchNumber string          `json:"batchNumber"`
	BatchID     string          `json:"batchId"`
	TotalItems  int             `json:"totalItems"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Skipped     int             `json:"skipped"`
}

type ReturnResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	LocationID  string `json:"locationId"`
	Quantity    int    `json:"quantity"`
	ReturnType  string `json:"returnType"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	InvoiceNo   string `json:"invoiceNo"`
	BatchNumber string `json:"batchNumber,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// ReturnService moves damaged stock to a terminal disposition.
type ReturnService interface {
	SendToSupplier(ctx context.Context, userID string, req SendToSupplierRequest) (*SendToSupplierResult, error)
	MarkBusinessLoss(ctx context.Context, userID string, req BusinessLossRequest) (int, error)
	ListInvoiceReturns(ctx context.Context, invoiceID string) ([]ReturnResponse, error)
}

type returnService struct {
	returnRepo  repository.ReturnRepository
	batchRepo   repository.ReturnBatchRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	auditRepo   repository.AuditRepository
	stock       StockService
	counter     sequence.Counter
	locker      lock.Locker
	txManager   repository.TransactionManager
	notifier    Notifier
	logger      *logrus.Logger
	now         func() time.Time
}

func NewReturnService(
	returnRepo repository.ReturnRepository,
	batchRepo repository.ReturnBatchRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	auditRepo repository.AuditRepository,
	stock StockService,
	counter sequence.Counter,
	locker lock.Locker,
	txManager repository.TransactionManager,
	notifier Notifier,
	logger *logrus.Logger,
) ReturnService {
	return &returnService{
		returnRepo:  returnRepo,
		batchRepo:   batchRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		auditRepo:   auditRepo,
		stock:       stock,
		counter:     counter,
		locker:      locker,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// errAlreadyFinal marks an item another request finalised first.
var errAlreadyFinal = errors.New("return item already finalised")

type pendingReturn struct {
	item  model.InventoryReturn
	value decimal.Decimal
}

func (s *returnService) SendToSupplier(ctx context.Context, userID string, req SendToSupplierRequest) (res *SendToSupplierResult, err error) {
	ctx, span := tracer.Start(ctx, "ReturnService.SendToSupplier")
	defer func() { endSpan(span, err) }()

	supplierID, err := parseID("supplierId", req.SupplierID)
	if err != nil {
		return nil, err
	}
	ids, err := parseIDs(req.ItemIDs)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("supplier.id", supplierID.String()), attribute.Int("items", len(ids)))

	release, err := s.locker.Acquire(ctx, "supplier-returns:"+supplierID.String())
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: a return batch for this supplier is already being created", ErrConflict)
		}
		return nil, err
	}
	defer release()

	pending, skipped, err := s.loadPending(ctx, ids, true)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, invalidf("none of the selected items are pending disposition")
	}

	totalValue := decimal.Zero
	for _, p := range pending {
		totalValue = totalValue.Add(p.value)
	}

	now := s.now()
	seq, err := s.counter.Next(ctx, sequence.ReturnBatchKey(now))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate batch number: %w", err)
	}
	batch := &model.SupplierReturnBatch{
		BatchNumber: sequence.ReturnBatchNumber(now, seq),
		SupplierID:  supplierID,
		TotalItems:  len(pending),
		TotalValue:  totalValue,
		Status:      model.BatchStatusPendingCredit,
		CreatedBy:   parseUserID(userID),
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: batch number %s is already taken", ErrConflict, batch.BatchNumber)
		}
		return nil, fmt.Errorf("failed to create return batch: %w", err)
	}

	linked, linkedValue, failed := 0, decimal.Zero, 0
	for _, p := range pending {
		perr := s.finalize(ctx, p.item, model.ReturnStatusReturned, &batch.ID, "", model.MovementDamageReturned)
		switch {
		case perr == nil:
			linked++
			linkedValue = linkedValue.Add(p.value)
		case errors.Is(perr, errAlreadyFinal):
			skipped++
		default:
			failed++
			logger.LogError(s.logger, "Returns", "SendToSupplier", "link return item to batch",
				map[string]interface{}{"itemId": p.item.ID.String(), "batch": batch.BatchNumber}, perr)
		}
	}

	if linked != batch.TotalItems {
		// keep the batch honest about what actually shipped
		if uerr := s.batchRepo.UpdateTotals(ctx, batch.ID, linked, linkedValue); uerr != nil {
			logger.LogError(s.logger, "Returns", "SendToSupplier", "correct batch totals", batch.BatchNumber, uerr)
		}
		batch.TotalItems, batch.TotalValue = linked, linkedValue
	}

	details := map[string]interface{}{
		"batch_number": batch.BatchNumber,
		"supplier_id":  supplierID.String(),
		"total_items":  batch.TotalItems,
		"total_value":  batch.TotalValue,
		"skipped":      skipped,
		"failed":       failed,
	}
	if aerr := writeAudit(ctx, s.auditRepo, userID, model.ActionSendToSupplier, batch.ID.String(), batch.BatchNumber, details); aerr != nil {
		logger.LogError(s.logger, "Returns", "SendToSupplier", "audit", nil, aerr)
	}

	if linked == 0 && failed > 0 {
		return nil, fmt.Errorf("no items could be linked to batch %s", batch.BatchNumber)
	}
	s.notifier.Publish(EventReturnsProcessed, details)

	return &SendToSupplierResult{
		BatchNumber: batch.BatchNumber,
		BatchID:     batch.ID.String(),
		TotalItems:  batch.TotalItems,
		TotalValue:  batch.TotalValue,
		Skipped:     skipped,
	}, nil
}

// MarkBusinessLoss writes damaged stock off. Already-final items are skipped,
// so a retry only touches what is left.
func (s *returnService) MarkBusinessLoss(ctx context.Context, userID string, req BusinessLossRequest) (processed int, err error) {
	ctx, span := tracer.Start(ctx, "ReturnService.MarkBusinessLoss")
	defer func() { endSpan(span, err) }()

	ids, err := parseIDs(req.ItemIDs)
	if err != nil {
		return 0, err
	}
	pending, skipped, err := s.loadPending(ctx, ids, false)
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, p := range pending {
		perr := s.finalize(ctx, p.item, model.ReturnStatusBusinessLoss, nil, req.Reason, model.MovementDamageWriteOff)
		switch {
		case perr == nil:
			processed++
		case errors.Is(perr, errAlreadyFinal):
			skipped++
		default:
			failed++
			logger.LogError(s.logger, "Returns", "MarkBusinessLoss", "write off return item",
				p.item.ID.String(), perr)
		}
	}

	if processed > 0 {
		details := map[string]interface{}{"items": processed, "skipped": skipped, "failed": failed, "reason": req.Reason}
		if aerr := writeAudit(ctx, s.auditRepo, userID, model.ActionMarkBusinessLoss, "", "business loss", details); aerr != nil {
			logger.LogError(s.logger, "Returns", "MarkBusinessLoss", "audit", nil, aerr)
		}
		s.notifier.Publish(EventReturnsProcessed, details)
	}

	if failed > 0 {
		return processed, fmt.Errorf("%w: %d of %d items could not be written off", ErrPartialFailure, failed, len(pending))
	}
	return processed, nil
}

func (s *returnService) ListInvoiceReturns(ctx context.Context, invoiceID string) ([]ReturnResponse, error) {
	id, err := parseID("invoiceId", invoiceID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr("invoice", err)
	}
	items, err := s.returnRepo.ListByInvoice(ctx, invoice.ID, invoice.InvoiceNo)
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}

	res := make([]ReturnResponse, 0, len(items))
	for _, it := range items {
		r := ReturnResponse{
			ID:         it.ID.String(),
			ProductID:  it.ProductID.String(),
			LocationID: it.LocationID.String(),
			Quantity:   it.Quantity,
			ReturnType: it.ReturnType,
			Status:     it.Status,
			Reason:     it.Reason,
			InvoiceNo:  invoice.InvoiceNo,
			CreatedAt:  it.CreatedAt.Format(time.RFC3339),
		}
		if no, rest, ok := model.ParseInvoiceRef(it.Reason); ok && no == invoice.InvoiceNo {
			r.Reason = rest
		}
		if it.Product != nil {
			r.ProductName = it.Product.Name
		}
		if it.ReturnBatch != nil {
			r.BatchNumber = it.ReturnBatch.BatchNumber
		}
		res = append(res, r)
	}
	return res, nil
}

// loadPending resolves the selection to non-terminal items. withValue prices
// each at the product's current cost; items whose product is gone are skipped.
func (s *returnService) loadPending(ctx context.Context, ids []uuid.UUID, withValue bool) ([]pendingReturn, int, error) {
	items, err := s.returnRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load return items: %w", err)
	}
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("return items %w", ErrNotFound)
	}

	skipped := len(ids) - len(items)
	var open []model.InventoryReturn
	productIDs := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool)
	for _, it := range items {
		if it.IsTerminal() {
			skipped++
			continue
		}
		open = append(open, it)
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			productIDs = append(productIDs, it.ProductID)
		}
	}

	costs := make(map[uuid.UUID]decimal.Decimal)
	if withValue && len(productIDs) > 0 {
		products, perr := s.productRepo.FindByIDs(ctx, productIDs)
		if perr != nil {
			return nil, 0, fmt.Errorf("failed to load products: %w", perr)
		}
		for _, p := range products {
			costs[p.ID] = p.CostPrice
		}
	}

	pending := make([]pendingReturn, 0, len(open))
	for _, it := range open {
		p := pendingReturn{item: it, value: decimal.Zero}
		if withValue {
			cost, ok := costs[it.ProductID]
			if !ok {
				skipped++
				s.logger.WithFields(logrus.Fields{"itemId": it.ID.String(), "productId": it.ProductID.String()}).
					Warn("return item references a missing product; skipped")
				continue
			}
			p.value = cost.Mul(decimal.NewFromInt(int64(it.Quantity)))
		}
		pending = append(pending, p)
	}
	return pending, skipped, nil
}

// finalize claims the item with a conditional status update and drains its
// damaged units in the same transaction.
func (s *returnService) finalize(ctx context.Context, item model.InventoryReturn, status string, batchID *uuid.UUID, note, movementType string) error {
	ref := item.ID
	if batchID != nil {
		ref = *batchID
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		ok, err := s.returnRepo.Finalize(txCtx, item.ID, status, batchID, note)
		if err != nil {
			return fmt.Errorf("failed to update return status: %w", err)
		}
		if !ok {
			return errAlreadyFinal
		}
		return s.stock.ReduceDamaged(txCtx, item.ProductID, item.LocationID, item.Quantity, movementType, &ref)
	})
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, invalidf("itemIds must not be empty")
	}
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for i, r := range raw {
		id, err := parseID(fmt.Sprintf("itemIds[%d]", i), r)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}
