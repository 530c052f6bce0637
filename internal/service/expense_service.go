package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*model.Expense, error)
	List(ctx context.Context) ([]model.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	repo repository.ExpenseRepository
}

func NewExpenseService(repo repository.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*model.Expense, error) {
	e := &model.Expense{
		Date:     req.Date,
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *expenseService) List(ctx context.Context) ([]model.Expense, error) {
	return s.repo.List(ctx)
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
