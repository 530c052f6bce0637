package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	ListRange(ctx context.Context, from, to string) ([]model.Sale, error)

	// ReplaceTx swaps the sale's item set and saves the header — used by the
	// edit operation after the original items' stock has been rolled back.
	ReplaceTx(tx *gorm.DB, s *model.Sale) error
	UpdateItemReturnedTx(tx *gorm.DB, itemID uuid.UUID, returnedQuantity int) error
	SetCancelledTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}
	switch filter.Cancelled {
	case "true":
		q = q.Where("is_cancelled = true")
	case "false":
		q = q.Where("is_cancelled = false")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("date DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) ListRange(ctx context.Context, from, to string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC, created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ReplaceTx(tx *gorm.DB, s *model.Sale) error {
	if err := tx.Where("sale_id = ?", s.ID).Delete(&model.SaleItem{}).Error; err != nil {
		return err
	}
	for i := range s.Items {
		s.Items[i].SaleID = s.ID
	}
	if len(s.Items) > 0 {
		if err := tx.Create(&s.Items).Error; err != nil {
			return err
		}
	}
	return tx.Omit("Items").Save(s).Error
}

func (r *saleRepo) UpdateItemReturnedTx(tx *gorm.DB, itemID uuid.UUID, returnedQuantity int) error {
	return tx.Model(&model.SaleItem{}).Where("id = ?", itemID).
		Update("returned_quantity", returnedQuantity).Error
}

func (r *saleRepo) SetCancelledTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).
		Update("is_cancelled", true).Error
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
