package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

// MaterialRepository defines the data access contract for raw materials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.RawMaterial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.RawMaterial, error)
	List(ctx context.Context) ([]model.RawMaterial, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateTx saves the editable columns (name, threshold) inside a
	// transaction. Stock is owned by UpdateStockTx and never written here.
	UpdateTx(tx *gorm.DB, m *model.RawMaterial) error

	// UpdateStockTx applies a signed delta inside a transaction — callers must
	// pass the live tx instance.
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.RawMaterial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *materialRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&materials).Error
	return materials, err
}

func (r *materialRepo) List(ctx context.Context) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) UpdateTx(tx *gorm.DB, m *model.RawMaterial) error {
	return tx.Model(&model.RawMaterial{}).Where("id = ?", m.ID).
		Updates(map[string]any{"name": m.Name, "threshold": m.Threshold}).Error
}

func (r *materialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RawMaterial{}, "id = ?", id).Error
}

func (r *materialRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.RawMaterial{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *materialRepo) DB() *gorm.DB { return r.db }
