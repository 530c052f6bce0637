package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

type ManufacturingRepository interface {
	CreateTx(tx *gorm.DB, rec *model.ManufacturingRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ManufacturingRecord, error)
	List(ctx context.Context) ([]model.ManufacturingRecord, error)
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type manufacturingRepo struct{ db *gorm.DB }

func NewManufacturingRepository(db *gorm.DB) ManufacturingRepository {
	return &manufacturingRepo{db: db}
}

func (r *manufacturingRepo) CreateTx(tx *gorm.DB, rec *model.ManufacturingRecord) error {
	return tx.Create(rec).Error
}

func (r *manufacturingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ManufacturingRecord, error) {
	var rec model.ManufacturingRecord
	err := r.db.WithContext(ctx).Preload("Consumed").Preload("Produced").
		First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *manufacturingRepo) List(ctx context.Context) ([]model.ManufacturingRecord, error) {
	var recs []model.ManufacturingRecord
	err := r.db.WithContext(ctx).Preload("Consumed").Preload("Produced").
		Order("date DESC, created_at DESC").
		Find(&recs).Error
	return recs, err
}

func (r *manufacturingRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("record_id = ?", id).Delete(&model.ConsumedMaterial{}).Error; err != nil {
		return err
	}
	if err := tx.Where("record_id = ?", id).Delete(&model.ProducedProduct{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.ManufacturingRecord{}, "id = ?", id).Error
}

func (r *manufacturingRepo) DB() *gorm.DB { return r.db }
