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

type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest) (*model.RawMaterial, error)
	Get(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error)
	List(ctx context.Context) ([]model.RawMaterial, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*model.RawMaterial, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Movements(ctx context.Context, id uuid.UUID) ([]model.StockMovement, error)
}

type materialService struct {
	repo         repository.MaterialRepository
	movementRepo repository.StockMovementRepository
}

func NewMaterialService(repo repository.MaterialRepository, movementRepo repository.StockMovementRepository) MaterialService {
	return &materialService{repo: repo, movementRepo: movementRepo}
}

func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest) (*model.RawMaterial, error) {
	m := &model.RawMaterial{
		Name:      req.Name,
		Stock:     req.Stock,
		Threshold: req.Threshold,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *materialService) Get(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: material %s", ledger.ErrNotFound, id)
	}
	return m, nil
}

func (s *materialService) List(ctx context.Context) ([]model.RawMaterial, error) {
	return s.repo.List(ctx)
}

// Update writes a manual stock override through the movement ledger rather
// than silently mutating the column, so the audit trail stays complete.
func (s *materialService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*model.RawMaterial, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: material %s", ledger.ErrNotFound, id)
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Threshold != nil {
		m.Threshold = *req.Threshold
	}

	var delta ledger.Delta
	if req.Stock != nil && *req.Stock != m.Stock {
		delta = ledger.Delta{id: *req.Stock - m.Stock}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if delta != nil {
			if err := applyMaterialDelta(ctx, tx, s.repo, s.movementRepo, delta,
				model.MovementAdjustment, "Manual stock adjustment", nil); err != nil {
				return err
			}
		}
		return s.repo.UpdateTx(tx, m)
	})
	if txErr != nil {
		return nil, txErr
	}
	if req.Stock != nil {
		m.Stock = *req.Stock
	}
	return m, nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: material %s", ledger.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *materialService) Movements(ctx context.Context, id uuid.UUID) ([]model.StockMovement, error) {
	return s.movementRepo.ListByEntity(ctx, model.StockEntityMaterial, id)
}
