package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*model.Customer, error) {
	c := &model.Customer{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s", ledger.ErrNotFound, id)
	}
	return c, nil
}

func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.repo.List(ctx)
}

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*model.Supplier, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*model.Supplier, error) {
	sp := &model.Supplier{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ledger.ErrNotFound, id)
	}
	return sp, nil
}

func (s *supplierService) List(ctx context.Context) ([]model.Supplier, error) {
	return s.repo.List(ctx)
}
