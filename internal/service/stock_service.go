package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/logger"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const movementHistoryLimit = 50

type StockAdjustItem struct {
	ProductID   string `json:"productId" binding:"required,uuid"`
	NewQuantity *int   `json:"newQuantity" binding:"required"`
}

type StockAdjustRequest struct {
	LocationID string            `json:"locationId" binding:"required,uuid"`
	Items      []StockAdjustItem `json:"items" binding:"required,min=1,dive"`
}

type ReconcileResult struct {
	ProductID       string `json:"productId"`
	StockQuantity   int    `json:"stockQuantity"`
	DamagedQuantity int    `json:"damagedQuantity"`
	StockDrift      int    `json:"stockDrift"`
	DamagedDrift    int    `json:"damagedDrift"`
}

type LocationStockResponse struct {
	LocationID      string `json:"locationId"`
	Quantity        int    `json:"quantity"`
	DamagedQuantity int    `json:"damagedQuantity"`
	LastUpdated     string `json:"lastUpdated"`
}

type StockMovementResponse struct {
	LocationID      string `json:"locationId"`
	MovementType    string `json:"movementType"`
	QuantityChanged int    `json:"quantityChanged"`
	DamagedChanged  int    `json:"damagedChanged"`
	ReferenceID     string `json:"referenceId,omitempty"`
	Note            string `json:"note,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

type ProductStockResponse struct {
	ProductID       string                  `json:"productId"`
	SKU             string                  `json:"sku"`
	Name            string                  `json:"name"`
	StockQuantity   int                     `json:"stockQuantity"`
	DamagedQuantity int                     `json:"damagedQuantity"`
	MinStockLevel   int                     `json:"minStockLevel"`
	LowStock        bool                    `json:"lowStock"`
	Locations       []LocationStockResponse `json:"locations"`
	Movements       []StockMovementResponse `json:"movements"`
}

// StockService owns per-location quantities and the product aggregates.
type StockService interface {
	Increment(ctx context.Context, productID, locationID uuid.UUID, qty int, ref *uuid.UUID) error
	Overwrite(ctx context.Context, productID, locationID uuid.UUID, newQty int, ref *uuid.UUID) (int, error)
	ReduceDamaged(ctx context.Context, productID, locationID uuid.UUID, qty int, movementType string, ref *uuid.UUID) error
	AdjustStock(ctx context.Context, userID string, req StockAdjustRequest) (int, error)
	Reconcile(ctx context.Context, userID, productID string) (*ReconcileResult, error)
	GetProductStock(ctx context.Context, productID string) (*ProductStockResponse, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationStockRepository
	movementRepo repository.StockMovementRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	notifier     Notifier
	logger       *logrus.Logger
	now          func() time.Time
}

func NewStockService(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationStockRepository,
	movementRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier Notifier,
	logger *logrus.Logger,
) StockService {
	return &stockService{
		productRepo:  productRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Increment adds qty good units at a location, creating the row if needed.
func (s *stockService) Increment(ctx context.Context, productID, locationID uuid.UUID, qty int, ref *uuid.UUID) error {
	if qty <= 0 {
		return nil
	}
	now := s.now()
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.AdjustStock(txCtx, productID, qty); err != nil {
			return wrapProductErr(err)
		}
		if err := s.locationRepo.Increment(txCtx, productID, locationID, qty, now); err != nil {
			return fmt.Errorf("failed to increment location stock: %w", err)
		}
		return s.movementRepo.Create(txCtx, &model.StockMovement{
			ProductID:       productID,
			LocationID:      locationID,
			MovementType:    model.MovementPurchaseIn,
			QuantityChanged: qty,
			ReferenceID:     ref,
		})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, productID, locationID)
	return nil
}

// Overwrite sets the absolute good quantity, never below zero, and moves the
// product aggregate by the same delta. Returns the stored quantity.
func (s *stockService) Overwrite(ctx context.Context, productID, locationID uuid.UUID, newQty int, ref *uuid.UUID) (int, error) {
	stored := max(newQty, 0)
	now := s.now()

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.productRepo.FindByID(txCtx, productID); err != nil {
			return wrapProductErr(err)
		}

		previous := 0
		row, err := s.locationRepo.FindForUpdate(txCtx, productID, locationID)
		switch {
		case err == nil:
			previous = row.Quantity
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to lock location stock: %w", err)
		}

		if err := s.locationRepo.SetQuantity(txCtx, productID, locationID, stored, now); err != nil {
			return fmt.Errorf("failed to set location stock: %w", err)
		}
		delta := stored - previous
		if delta != 0 {
			if err := s.productRepo.AdjustStock(txCtx, productID, delta); err != nil {
				return wrapProductErr(err)
			}
		}
		return s.movementRepo.Create(txCtx, &model.StockMovement{
			ProductID:       productID,
			LocationID:      locationID,
			MovementType:    model.MovementStockTake,
			QuantityChanged: delta,
			ReferenceID:     ref,
			Note:            fmt.Sprintf("stock-take %d -> %d", previous, stored),
		})
	})
	if err != nil {
		return 0, err
	}
	s.publish(ctx, productID, locationID)
	return stored, nil
}

// ReduceDamaged drains damaged units at both the location and the product,
// each floored at zero so duplicate processing cannot go negative.
func (s *stockService) ReduceDamaged(ctx context.Context, productID, locationID uuid.UUID, qty int, movementType string, ref *uuid.UUID) error {
	if qty <= 0 {
		return nil
	}
	now := s.now()
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.ReduceDamaged(txCtx, productID, qty); err != nil {
			return fmt.Errorf("failed to reduce product damaged quantity: %w", err)
		}
		if err := s.locationRepo.ReduceDamaged(txCtx, productID, locationID, qty, now); err != nil {
			return fmt.Errorf("failed to reduce location damaged quantity: %w", err)
		}
		return s.movementRepo.Create(txCtx, &model.StockMovement{
			ProductID:      productID,
			LocationID:     locationID,
			MovementType:   movementType,
			DamagedChanged: -qty,
			ReferenceID:    ref,
		})
	})
	if err != nil {
		return err
	}
	s.publish(ctx, productID, locationID)
	return nil
}

// AdjustStock applies a stock-take. Items are independent: one failing does
// not stop the rest, and a resubmission is harmless since each is absolute.
func (s *stockService) AdjustStock(ctx context.Context, userID string, req StockAdjustRequest) (applied int, err error) {
	ctx, span := tracer.Start(ctx, "StockService.AdjustStock")
	defer func() { endSpan(span, err) }()

	locationID, err := parseID("locationId", req.LocationID)
	if err != nil {
		return 0, err
	}
	type adjustment struct {
		productID uuid.UUID
		quantity  int
	}
	adjustments := make([]adjustment, 0, len(req.Items))
	for i, item := range req.Items {
		pid, perr := parseID(fmt.Sprintf("items[%d].productId", i), item.ProductID)
		if perr != nil {
			return 0, perr
		}
		if item.NewQuantity == nil {
			return 0, invalidf("items[%d].newQuantity is required", i)
		}
		adjustments = append(adjustments, adjustment{productID: pid, quantity: *item.NewQuantity})
	}
	span.SetAttributes(attribute.String("location.id", locationID.String()), attribute.Int("items", len(adjustments)))

	type adjusted struct {
		ProductID string `json:"product_id"`
		Requested int    `json:"requested"`
		Stored    int    `json:"stored"`
	}
	var done []adjusted
	failed := 0
	for _, a := range adjustments {
		stored, oerr := s.Overwrite(ctx, a.productID, locationID, a.quantity, nil)
		if oerr != nil {
			failed++
			logger.LogError(s.logger, "Stock", "AdjustStock", "overwrite location stock",
				map[string]interface{}{"productId": a.productID.String(), "locationId": locationID.String()}, oerr)
			continue
		}
		done = append(done, adjusted{ProductID: a.productID.String(), Requested: a.quantity, Stored: stored})
	}

	if len(done) > 0 {
		details := map[string]interface{}{"location_id": locationID.String(), "items": done, "failed": failed}
		if aerr := writeAudit(ctx, s.auditRepo, userID, model.ActionStockAdjust, locationID.String(), "stock-take", details); aerr != nil {
			logger.LogError(s.logger, "Stock", "AdjustStock", "audit", nil, aerr)
		}
	}

	if failed > 0 {
		return len(done), fmt.Errorf("%w: %d of %d stock items could not be updated", ErrPartialFailure, failed, len(adjustments))
	}
	return len(done), nil
}

// Reconcile rebuilds the product aggregates from the per-location rows.
func (s *stockService) Reconcile(ctx context.Context, userID, productID string) (res *ReconcileResult, err error) {
	ctx, span := tracer.Start(ctx, "StockService.Reconcile")
	defer func() { endSpan(span, err) }()

	pid, err := parseID("productId", productID)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, ferr := s.productRepo.FindByID(txCtx, pid)
		if ferr != nil {
			return lookupErr("product", ferr)
		}
		qty, damaged, serr := s.locationRepo.SumByProduct(txCtx, pid)
		if serr != nil {
			return fmt.Errorf("failed to sum location stock: %w", serr)
		}
		res = &ReconcileResult{
			ProductID:       pid.String(),
			StockQuantity:   qty,
			DamagedQuantity: damaged,
			StockDrift:      product.StockQuantity - qty,
			DamagedDrift:    product.DamagedQuantity - damaged,
		}
		if res.StockDrift == 0 && res.DamagedDrift == 0 {
			return nil
		}
		if uerr := s.productRepo.SetAggregates(txCtx, pid, qty, damaged); uerr != nil {
			return fmt.Errorf("failed to update product aggregates: %w", uerr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionStockReconcile, pid.String(), product.Name, res)
	})
	if err != nil {
		return nil, err
	}
	if res.StockDrift != 0 || res.DamagedDrift != 0 {
		s.logger.WithFields(logrus.Fields{
			"productId":    res.ProductID,
			"stockDrift":   res.StockDrift,
			"damagedDrift": res.DamagedDrift,
		}).Warn("product stock aggregates drifted from location rows; repaired")
		s.notifier.Publish(EventStockUpdated, map[string]interface{}{
			"product_id":       res.ProductID,
			"stock_quantity":   res.StockQuantity,
			"damaged_quantity": res.DamagedQuantity,
		})
	}
	return res, nil
}

func (s *stockService) GetProductStock(ctx context.Context, productID string) (*ProductStockResponse, error) {
	pid, err := parseID("productId", productID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, lookupErr("product", err)
	}
	rows, err := s.locationRepo.ListByProduct(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list location stock: %w", err)
	}
	movements, err := s.movementRepo.ListByProduct(ctx, pid, movementHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}

	res := &ProductStockResponse{
		ProductID:       product.ID.String(),
		SKU:             product.SKU,
		Name:            product.Name,
		StockQuantity:   product.StockQuantity,
		DamagedQuantity: product.DamagedQuantity,
		MinStockLevel:   product.MinStockLevel,
		LowStock:        product.StockQuantity <= product.MinStockLevel,
		Locations:       make([]LocationStockResponse, 0, len(rows)),
		Movements:       make([]StockMovementResponse, 0, len(movements)),
	}
	for _, r := range rows {
		res.Locations = append(res.Locations, LocationStockResponse{
			LocationID:      r.LocationID.String(),
			Quantity:        r.Quantity,
			DamagedQuantity: r.DamagedQuantity,
			LastUpdated:     r.LastUpdated.Format(time.RFC3339),
		})
	}
	for _, m := range movements {
		mr := StockMovementResponse{
			LocationID:      m.LocationID.String(),
			MovementType:    m.MovementType,
			QuantityChanged: m.QuantityChanged,
			DamagedChanged:  m.DamagedChanged,
			Note:            m.Note,
			CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		}
		if m.ReferenceID != nil {
			mr.ReferenceID = m.ReferenceID.String()
		}
		res.Movements = append(res.Movements, mr)
	}
	return res, nil
}

// publish is skipped inside a caller's transaction; that caller announces
// the change once it commits.
func (s *stockService) publish(ctx context.Context, productID, locationID uuid.UUID) {
	if repository.InTx(ctx) {
		return
	}
	s.notifier.Publish(EventStockUpdated, map[string]interface{}{
		"product_id":  productID.String(),
		"location_id": locationID.String(),
	})
}

func wrapProductErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %w", ErrNotFound)
	}
	return fmt.Errorf("failed to update product stock: %w", err)
}
