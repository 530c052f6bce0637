package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

type PurchaseService interface {
	Create(ctx context.Context, req dto.CreatePurchaseRequest) (*model.Purchase, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type purchaseService struct {
	repo         repository.PurchaseRepository
	materialRepo repository.MaterialRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.StockMovementRepository
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	materialRepo repository.MaterialRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.StockMovementRepository,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
	}
}

// Create receives a purchase: persists the record and increases raw-material
// stock in one transaction. Purchases only add stock, so there is nothing to
// validate beyond resolving the referenced records.
func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseRequest) (*model.Purchase, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id", ledger.ErrValidation)
	}
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ledger.ErrNotFound, req.SupplierID)
	}

	items := make([]model.PurchaseItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		materialID, err := uuid.Parse(it.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid material id", ledger.ErrValidation)
		}
		material, err := s.materialRepo.FindByID(ctx, materialID)
		if err != nil {
			return nil, fmt.Errorf("%w: material %s", ledger.ErrNotFound, it.MaterialID)
		}
		lineTotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, model.PurchaseItem{
			MaterialID:   materialID,
			MaterialName: material.Name,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}

	purchase := &model.Purchase{
		InvoiceNumber: req.InvoiceNumber,
		SupplierID:    supplier.ID,
		SupplierName:  supplier.Name,
		Date:          req.Date,
		Subtotal:      subtotal,
		Items:         items,
	}

	delta := ledger.PurchaseDelta(items)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, purchase); err != nil {
			return err
		}
		ref := purchase.ID
		reason := fmt.Sprintf("Purchase #%s", purchase.InvoiceNumber)
		return applyMaterialDelta(ctx, tx, s.materialRepo, s.movementRepo, delta,
			model.MovementPurchase, reason, &ref)
	})
	if txErr != nil {
		return nil, txErr
	}
	return purchase, nil
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase %s", ledger.ErrNotFound, id)
	}
	return p, nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Delete rolls back exactly the stock the purchase added. Stock may have been
// consumed since by sales or manufacturing, so every item needs
// stock >= quantity — otherwise deleting would drive a material negative.
func (s *purchaseService) Delete(ctx context.Context, id uuid.UUID) error {
	purchase, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: purchase %s", ledger.ErrNotFound, id)
	}

	stock := make(map[uuid.UUID]int, len(purchase.Items))
	names := make(map[uuid.UUID]string, len(purchase.Items))
	for _, it := range purchase.Items {
		material, err := s.materialRepo.FindByID(ctx, it.MaterialID)
		if err != nil {
			return fmt.Errorf("%w: material %s", ledger.ErrNotFound, it.MaterialName)
		}
		stock[it.MaterialID] = material.Stock
		names[it.MaterialID] = material.Name
	}

	// Validate the aggregated delta, not item lines: a material spread across
	// several lines rolls back as one sum.
	rollback := ledger.PurchaseRollbackDelta(purchase.Items)
	if err := ledger.Validate(stock, names, rollback, ledger.ErrRollbackInfeasible); err != nil {
		return err
	}
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ref := purchase.ID
		reason := fmt.Sprintf("Delete purchase #%s", purchase.InvoiceNumber)
		if err := applyMaterialDelta(ctx, tx, s.materialRepo, s.movementRepo, rollback,
			model.MovementPurchaseRollback, reason, &ref); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, purchase.ID)
	})
}
