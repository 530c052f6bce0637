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

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Movements(ctx context.Context, id uuid.UUID) ([]model.StockMovement, error)
}

type productService struct {
	repo         repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func NewProductService(repo repository.ProductRepository, movementRepo repository.StockMovementRepository) ProductService {
	return &productService{repo: repo, movementRepo: movementRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	p := &model.Product{
		Name:          req.Name,
		SalesPrice:    req.SalesPrice,
		StockQuantity: req.StockQuantity,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ledger.ErrNotFound, id)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: product %s", ledger.ErrNotFound, id)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SalesPrice != nil {
		p.SalesPrice = *req.SalesPrice
	}

	var delta ledger.Delta
	if req.StockQuantity != nil && *req.StockQuantity != p.StockQuantity {
		delta = ledger.Delta{id: *req.StockQuantity - p.StockQuantity}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if delta != nil {
			if err := applyProductDelta(ctx, tx, s.repo, s.movementRepo, delta,
				model.MovementAdjustment, "Manual stock adjustment", nil); err != nil {
				return err
			}
		}
		return s.repo.UpdateTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: product %s", ledger.ErrNotFound, id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *productService) Movements(ctx context.Context, id uuid.UUID) ([]model.StockMovement, error) {
	return s.movementRepo.ListByEntity(ctx, model.StockEntityProduct, id)
}
