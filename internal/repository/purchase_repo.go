package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

type PurchaseRepository interface {
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	ListRange(ctx context.Context, from, to string) ([]model.Purchase, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Items").First(&p, "id = ?", id).Error
	return &p, err
}

// List returns purchases newest-first — history views always sort descending
// by business date.
func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("date DESC, created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) ListRange(ctx context.Context, from, to string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.WithContext(ctx).Preload("Items").
		Where("date >= ? AND date <= ?", from, to).
		Order("date DESC, created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("purchase_id = ?", id).Delete(&model.PurchaseItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Purchase{}, "id = ?", id).Error
}

func (r *purchaseRepo) DB() *gorm.DB { return r.db }
