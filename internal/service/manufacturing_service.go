package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

type ManufacturingService interface {
	Record(ctx context.Context, req dto.RecordManufacturingRequest) (*model.ManufacturingRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ManufacturingRecord, error)
	List(ctx context.Context) ([]model.ManufacturingRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type manufacturingService struct {
	repo         repository.ManufacturingRepository
	materialRepo repository.MaterialRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func NewManufacturingService(
	repo repository.ManufacturingRepository,
	materialRepo repository.MaterialRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) ManufacturingService {
	return &manufacturingService{
		repo:         repo,
		materialRepo: materialRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Record applies one production run atomically: every consumed material is
// checked against current stock before anything moves, so a run that would
// overdraw any material consumes nothing.
func (s *manufacturingService) Record(ctx context.Context, req dto.RecordManufacturingRequest) (*model.ManufacturingRecord, error) {
	consumed := make([]model.ConsumedMaterial, 0, len(req.Consumed))
	materialStock := make(map[uuid.UUID]int, len(req.Consumed))
	materialNames := make(map[uuid.UUID]string, len(req.Consumed))
	for _, c := range req.Consumed {
		materialID, err := uuid.Parse(c.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid material id", ledger.ErrValidation)
		}
		material, err := s.materialRepo.FindByID(ctx, materialID)
		if err != nil {
			return nil, fmt.Errorf("%w: material %s", ledger.ErrNotFound, c.MaterialID)
		}
		materialStock[materialID] = material.Stock
		materialNames[materialID] = material.Name
		consumed = append(consumed, model.ConsumedMaterial{
			MaterialID:   materialID,
			MaterialName: material.Name,
			Quantity:     c.Quantity,
		})
	}

	produced := make([]model.ProducedProduct, 0, len(req.Produced))
	for _, p := range req.Produced {
		productID, err := uuid.Parse(p.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid product id", ledger.ErrValidation)
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s", ledger.ErrNotFound, p.ProductID)
		}
		produced = append(produced, model.ProducedProduct{
			ProductID:   productID,
			ProductName: product.Name,
			Quantity:    p.Quantity,
		})
	}

	materials, products := ledger.ManufacturingDelta(consumed, produced)
	if err := ledger.Validate(materialStock, materialNames, materials, ledger.ErrInsufficientRawMaterial); err != nil {
		return nil, err
	}

	rec := &model.ManufacturingRecord{
		Date:     req.Date,
		Consumed: consumed,
		Produced: produced,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, rec); err != nil {
			return err
		}
		ref := rec.ID
		reason := fmt.Sprintf("Manufacturing on %s", rec.Date)
		if err := applyMaterialDelta(ctx, tx, s.materialRepo, s.movementRepo, materials,
			model.MovementManufacturing, reason, &ref); err != nil {
			return err
		}
		return applyProductDelta(ctx, tx, s.productRepo, s.movementRepo, products,
			model.MovementManufacturing, reason, &ref)
	})
	if txErr != nil {
		return nil, txErr
	}
	return rec, nil
}

func (s *manufacturingService) Get(ctx context.Context, id uuid.UUID) (*model.ManufacturingRecord, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: manufacturing record %s", ledger.ErrNotFound, id)
	}
	return rec, nil
}

func (s *manufacturingService) List(ctx context.Context) ([]model.ManufacturingRecord, error) {
	return s.repo.List(ctx)
}

// Delete reverses the run: consumed materials come back, produced products go
// out. The produced side can fail if the output has since been sold — then
// the record stays and nothing moves.
func (s *manufacturingService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: manufacturing record %s", ledger.ErrNotFound, id)
	}

	materials, products := ledger.ManufacturingRollbackDelta(rec)

	productStock := make(map[uuid.UUID]int, len(rec.Produced))
	productNames := make(map[uuid.UUID]string, len(rec.Produced))
	for _, p := range rec.Produced {
		product, err := s.productRepo.FindByID(ctx, p.ProductID)
		if err != nil {
			return fmt.Errorf("%w: product %s", ledger.ErrNotFound, p.ProductID)
		}
		productStock[p.ProductID] = product.StockQuantity
		productNames[p.ProductID] = product.Name
	}
	if err := ledger.Validate(productStock, productNames, products, ledger.ErrRollbackInfeasible); err != nil {
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ref := rec.ID
		reason := fmt.Sprintf("Delete manufacturing on %s", rec.Date)
		if err := applyMaterialDelta(ctx, tx, s.materialRepo, s.movementRepo, materials,
			model.MovementManufRollback, reason, &ref); err != nil {
			return err
		}
		if err := applyProductDelta(ctx, tx, s.productRepo, s.movementRepo, products,
			model.MovementManufRollback, reason, &ref); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, rec.ID)
	})
}
