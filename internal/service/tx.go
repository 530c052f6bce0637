package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
	"github.com/DareDevilStudios/sharon-billing/internal/repository"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// applyMaterialDelta applies a validated ledger delta to raw-material stock
// inside tx, writing one StockMovement per touched material.
func applyMaterialDelta(
	ctx context.Context,
	tx *gorm.DB,
	materials repository.MaterialRepository,
	movements repository.StockMovementRepository,
	d ledger.Delta,
	movType, reason string,
	ref *uuid.UUID,
) error {
	for id, qty := range d {
		if qty == 0 {
			continue
		}
		before := 0
		if m, err := materials.FindByID(ctx, id); err == nil && m != nil {
			before = m.Stock
		}
		if err := materials.UpdateStockTx(tx, id, qty); err != nil {
			return err
		}
		mov := &model.StockMovement{
			EntityKind:  model.StockEntityMaterial,
			EntityID:    id,
			Type:        movType,
			Quantity:    qty,
			StockBefore: before,
			StockAfter:  before + qty,
			Reason:      reason,
			ReferenceID: ref,
		}
		if err := movements.CreateTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}

// applyProductDelta mirrors applyMaterialDelta for product stock.
func applyProductDelta(
	ctx context.Context,
	tx *gorm.DB,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	d ledger.Delta,
	movType, reason string,
	ref *uuid.UUID,
) error {
	for id, qty := range d {
		if qty == 0 {
			continue
		}
		before := 0
		if p, err := products.FindByID(ctx, id); err == nil && p != nil {
			before = p.StockQuantity
		}
		if err := products.UpdateStockTx(tx, id, qty); err != nil {
			return err
		}
		mov := &model.StockMovement{
			EntityKind:  model.StockEntityProduct,
			EntityID:    id,
			Type:        movType,
			Quantity:    qty,
			StockBefore: before,
			StockAfter:  before + qty,
			Reason:      reason,
			ReferenceID: ref,
		}
		if err := movements.CreateTx(tx, mov); err != nil {
			return err
		}
	}
	return nil
}
