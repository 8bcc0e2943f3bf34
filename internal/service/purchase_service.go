package service

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/lock"
	"backoffice/internal/logger"
	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/sequence"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type PurchaseItemRequest struct {
	ProductID    string          `json:"productId" binding:"required,uuid"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	FreeQuantity int             `json:"freeQuantity" binding:"gte=0"`
	FinalPrice   decimal.Decimal `json:"finalPrice"`
	MRP          decimal.Decimal `json:"mrp"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

// CreatePurchaseRequest keeps the snake_case header fields existing clients send.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplier_id" binding:"required,uuid"`
	LocationID    string                `json:"location_id" binding:"required,uuid"`
	InvoiceNumber string                `json:"invoice_number"`
	PurchaseDate  string                `json:"purchase_date" binding:"required"`
	DueDate       string                `json:"due_date"`
	PaymentStatus string                `json:"payment_status" binding:"omitempty,oneof=Unpaid Partial Paid"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

type PurchaseResult struct {
	ID         string `json:"id"`
	PurchaseNo string `json:"purchaseNo"`
	Applied    int    `json:"applied"`
	Failed     int    `json:"failed"`
}

type PurchaseService interface {
	CreatePurchase(ctx context.Context, userID string, req CreatePurchaseRequest) (*PurchaseResult, error)
	ReapplyPurchase(ctx context.Context, userID, purchaseID string) (*PurchaseResult, error)
	GetPurchase(ctx context.Context, purchaseID string) (*model.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	auditRepo    repository.AuditRepository
	stock        StockService
	counter      sequence.Counter
	locker       lock.Locker
	txManager    repository.TransactionManager
	notifier     Notifier
	logger       *logrus.Logger
	numberOffset int64
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	stock StockService,
	counter sequence.Counter,
	locker lock.Locker,
	txManager repository.TransactionManager,
	notifier Notifier,
	logger *logrus.Logger,
	numberOffset int64,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
		stock:        stock,
		counter:      counter,
		locker:       locker,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
		numberOffset: numberOffset,
	}
}

func (s *purchaseService) CreatePurchase(ctx context.Context, userID string, req CreatePurchaseRequest) (res *PurchaseResult, err error) {
	ctx, span := tracer.Start(ctx, "PurchaseService.CreatePurchase")
	defer func() { endSpan(span, err) }()

	purchase, err := s.buildPurchase(userID, req)
	if err != nil {
		return nil, err
	}

	seq, err := s.counter.Next(ctx, sequence.KeyPurchase)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate purchase number: %w", err)
	}
	purchase.PurchaseNo = sequence.PurchaseNumber(seq, s.numberOffset)
	span.SetAttributes(attribute.String("purchase.no", purchase.PurchaseNo))

	// the purchase record is durable before any stock moves
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.purchaseRepo.Create(txCtx, purchase); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: purchase number %s is already taken", ErrConflict, purchase.PurchaseNo)
			}
			return fmt.Errorf("failed to create purchase: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreatePurchase, purchase.ID.String(), purchase.PurchaseNo, req)
	})
	if err != nil {
		return nil, err
	}

	applied, failed := s.applyItems(ctx, purchase)
	s.notifier.Publish(EventPurchaseCreated, map[string]interface{}{
		"purchase_id": purchase.ID.String(),
		"purchase_no": purchase.PurchaseNo,
		"location_id": purchase.LocationID.String(),
	})

	return &PurchaseResult{ID: purchase.ID.String(), PurchaseNo: purchase.PurchaseNo, Applied: applied, Failed: failed}, nil
}

// ReapplyPurchase replays only the side effects not yet recorded, so it is
// safe after a partially failed intake.
func (s *purchaseService) ReapplyPurchase(ctx context.Context, userID, purchaseID string) (res *PurchaseResult, err error) {
	ctx, span := tracer.Start(ctx, "PurchaseService.ReapplyPurchase")
	defer func() { endSpan(span, err) }()

	id, err := parseID("id", purchaseID)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, "purchase:"+id.String())
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return nil, fmt.Errorf("%w: purchase %s is already being applied", ErrConflict, id)
		}
		return nil, err
	}
	defer release()

	purchase, err := s.purchaseRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, lookupErr("purchase", err)
	}

	applied, failed := s.applyItems(ctx, purchase)
	details := map[string]interface{}{"applied": applied, "failed": failed}
	if aerr := writeAudit(ctx, s.auditRepo, userID, model.ActionReapplyPurchase, purchase.ID.String(), purchase.PurchaseNo, details); aerr != nil {
		logger.LogError(s.logger, "Purchase", "ReapplyPurchase", "audit", nil, aerr)
	}

	res = &PurchaseResult{ID: purchase.ID.String(), PurchaseNo: purchase.PurchaseNo, Applied: applied, Failed: failed}
	if failed > 0 {
		return res, fmt.Errorf("%w: %d purchase items still pending", ErrPartialFailure, failed)
	}
	return res, nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID string) (*model.Purchase, error) {
	id, err := parseID("id", purchaseID)
	if err != nil {
		return nil, err
	}
	purchase, err := s.purchaseRepo.FindByIDWithItems(ctx, id)
	if err != nil {
		return nil, lookupErr("purchase", err)
	}
	return purchase, nil
}

// applyItems moves stock and prices line by line. A failed step is logged and
// left unflagged; it never stops the remaining lines.
func (s *purchaseService) applyItems(ctx context.Context, purchase *model.Purchase) (applied, failed int) {
	for i := range purchase.Items {
		item := &purchase.Items[i]
		if item.StockApplied && item.PriceApplied {
			applied++
			continue
		}
		fields := map[string]interface{}{
			"purchaseNo": purchase.PurchaseNo,
			"itemId":     item.ID.String(),
			"productId":  item.ProductID.String(),
		}

		stockDone, priceDone := false, false
		if !item.StockApplied {
			if err := s.stock.Increment(ctx, item.ProductID, purchase.LocationID, item.StockUnits(), &purchase.ID); err != nil {
				logger.LogError(s.logger, "Purchase", "applyItems", "increment stock", fields, err)
			} else {
				stockDone = true
			}
		}
		if !item.PriceApplied {
			if err := s.productRepo.UpdatePrices(ctx, item.ProductID, item.UnitCost, item.SellingPrice, item.MRP); err != nil {
				logger.LogError(s.logger, "Purchase", "applyItems", "update product prices", fields, err)
			} else {
				priceDone = true
			}
		}

		if stockDone || priceDone {
			if err := s.purchaseRepo.MarkItemApplied(ctx, item.ID, stockDone, priceDone); err != nil {
				logger.LogError(s.logger, "Purchase", "applyItems", "record applied flags", fields, err)
			}
		}
		item.StockApplied = item.StockApplied || stockDone
		item.PriceApplied = item.PriceApplied || priceDone

		if item.StockApplied && item.PriceApplied {
			applied++
		} else {
			failed++
		}
	}
	return applied, failed
}

func (s *purchaseService) buildPurchase(userID string, req CreatePurchaseRequest) (*model.Purchase, error) {
	supplierID, err := parseID("supplier_id", req.SupplierID)
	if err != nil {
		return nil, err
	}
	locationID, err := parseID("location_id", req.LocationID)
	if err != nil {
		return nil, err
	}
	purchaseDate, err := parseDate("purchase_date", req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, invalidf("items must not be empty")
	}

	purchase := &model.Purchase{
		SupplierID:    supplierID,
		LocationID:    locationID,
		InvoiceNumber: req.InvoiceNumber,
		PurchaseDate:  purchaseDate,
		PaymentStatus: model.PaymentStatusUnpaid,
		CreatedBy:     parseUserID(userID),
		TotalAmount:   decimal.Zero,
	}
	if req.PaymentStatus != "" {
		purchase.PaymentStatus = req.PaymentStatus
	}
	if req.DueDate != "" {
		due, derr := parseDate("due_date", req.DueDate)
		if derr != nil {
			return nil, derr
		}
		purchase.DueDate = &due
	}

	for i, it := range req.Items {
		pid, perr := parseID(fmt.Sprintf("items[%d].productId", i), it.ProductID)
		if perr != nil {
			return nil, perr
		}
		if it.Quantity <= 0 {
			return nil, invalidf("items[%d].quantity must be positive", i)
		}
		if it.FreeQuantity < 0 {
			return nil, invalidf("items[%d].freeQuantity must not be negative", i)
		}
		if it.FinalPrice.IsNegative() || it.SellingPrice.IsNegative() || it.MRP.IsNegative() || it.Total.IsNegative() {
			return nil, invalidf("items[%d] prices must not be negative", i)
		}
		total := it.Total
		if total.IsZero() {
			total = it.FinalPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.Discount)
		}
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			ProductID:    pid,
			Quantity:     it.Quantity,
			FreeQuantity: it.FreeQuantity,
			UnitCost:     it.FinalPrice,
			Discount:     it.Discount,
			SellingPrice: it.SellingPrice,
			MRP:          it.MRP,
			TotalCost:    total,
		})
		purchase.TotalAmount = purchase.TotalAmount.Add(total)
	}
	return purchase, nil
}
