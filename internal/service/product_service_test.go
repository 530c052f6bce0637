package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

func TestProductUpdateRecordsAdjustmentMovement(t *testing.T) {
	products := newStubProductRepo()
	movements := newStubMovementRepo()
	svc := NewProductService(products, movements)
	ctx := context.Background()

	pID := products.seed("Hollow Block", "50.00", 200)

	newStock := 180
	updated, err := svc.Update(ctx, pID, dto.UpdateProductRequest{StockQuantity: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 180, updated.StockQuantity)

	require.Equal(t, 1, movements.byType(model.MovementAdjustment))
	mov := movements.movements[0]
	assert.Equal(t, -20, mov.Quantity)
	assert.Equal(t, 200, mov.StockBefore)
	assert.Equal(t, 180, mov.StockAfter)
}

func TestProductUpdateFailedMovementLeavesRecordUntouched(t *testing.T) {
	products := newStubProductRepo()
	movements := newStubMovementRepo()
	movements.createErr = errStubNotFound
	svc := NewProductService(products, movements)
	ctx := context.Background()

	pID := products.seed("Hollow Block", "50.00", 200)

	price := mustDecimal("60")
	newStock := 180
	_, err := svc.Update(ctx, pID, dto.UpdateProductRequest{SalesPrice: &price, StockQuantity: &newStock})
	require.Error(t, err)

	p, findErr := products.FindByID(ctx, pID)
	require.NoError(t, findErr)
	assert.True(t, p.SalesPrice.Equal(mustDecimal("50")))
	assert.Empty(t, movements.movements)
}
