package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DareDevilStudios/sharon-billing/internal/dto"
	"github.com/DareDevilStudios/sharon-billing/internal/ledger"
	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

type purchaseFixture struct {
	svc       PurchaseService
	materials *stubMaterialRepo
	purchases *stubPurchaseRepo
	movements *stubMovementRepo
	supplier  uuid.UUID
}

func newPurchaseFixture() *purchaseFixture {
	materials := newStubMaterialRepo()
	purchases := newStubPurchaseRepo()
	suppliers := newStubSupplierRepo()
	movements := newStubMovementRepo()
	supplierID := suppliers.seed("Kerala Cements", "Industrial Estate, Palakkad")

	return &purchaseFixture{
		svc:       NewPurchaseService(purchases, materials, suppliers, movements),
		materials: materials,
		purchases: purchases,
		movements: movements,
		supplier:  supplierID,
	}
}

func (f *purchaseFixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	m, err := f.materials.FindByID(context.Background(), id)
	require.NoError(t, err)
	return m.Stock
}

func purchaseReq(supplierID uuid.UUID, items ...dto.PurchaseItemRequest) dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		InvoiceNumber: "PUR-001",
		SupplierID:    supplierID.String(),
		Date:          "2025-03-01",
		Items:         items,
	}
}

func TestCreatePurchaseIncreasesStock(t *testing.T) {
	f := newPurchaseFixture()
	mID := f.materials.seed("Cement", 100, 50)

	purchase, err := f.svc.Create(context.Background(), purchaseReq(f.supplier,
		dto.PurchaseItemRequest{MaterialID: mID.String(), Quantity: 20, Price: mustDecimal("350")}))
	require.NoError(t, err)

	assert.Equal(t, 120, f.stock(t, mID))
	assert.True(t, purchase.Subtotal.Equal(mustDecimal("7000")))
	assert.Equal(t, "Kerala Cements", purchase.SupplierName)
	assert.Equal(t, 1, f.movements.byType(model.MovementPurchase))
}

func TestDeletePurchaseRollsBackExactly(t *testing.T) {
	f := newPurchaseFixture()
	mID := f.materials.seed("Cement", 100, 50)
	ctx := context.Background()

	purchase, err := f.svc.Create(ctx, purchaseReq(f.supplier,
		dto.PurchaseItemRequest{MaterialID: mID.String(), Quantity: 20, Price: mustDecimal("350")}))
	require.NoError(t, err)
	require.Equal(t, 120, f.stock(t, mID))

	require.NoError(t, f.svc.Delete(ctx, purchase.ID))
	assert.Equal(t, 100, f.stock(t, mID))
	assert.Empty(t, f.purchases.purchases)
	assert.Equal(t, 1, f.movements.byType(model.MovementPurchaseRollback))
}

func TestDeletePurchaseInfeasibleWhenStockConsumed(t *testing.T) {
	f := newPurchaseFixture()
	mID := f.materials.seed("Cement", 0, 50)
	ctx := context.Background()

	purchase, err := f.svc.Create(ctx, purchaseReq(f.supplier,
		dto.PurchaseItemRequest{MaterialID: mID.String(), Quantity: 150, Price: mustDecimal("350")}))
	require.NoError(t, err)
	require.Equal(t, 150, f.stock(t, mID))

	// Simulate downstream consumption: only 100 remain
	require.NoError(t, f.materials.UpdateStockTx(nil, mID, -50))

	err = f.svc.Delete(ctx, purchase.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrRollbackInfeasible)

	// purchase record and stock untouched
	assert.Equal(t, 100, f.stock(t, mID))
	_, err = f.svc.Get(ctx, purchase.ID)
	assert.NoError(t, err)
}

func TestDeletePurchaseAggregatesRepeatedMaterialLines(t *testing.T) {
	f := newPurchaseFixture()
	mID := f.materials.seed("Cement", 0, 50)
	ctx := context.Background()

	// the same material split across two lines rolls back as one 120-unit sum
	purchase, err := f.svc.Create(ctx, purchaseReq(f.supplier,
		dto.PurchaseItemRequest{MaterialID: mID.String(), Quantity: 60, Price: mustDecimal("350")},
		dto.PurchaseItemRequest{MaterialID: mID.String(), Quantity: 60, Price: mustDecimal("350")}))
	require.NoError(t, err)
	require.Equal(t, 120, f.stock(t, mID))

	// consumption leaves 70 — enough for either line alone, not for both
	require.NoError(t, f.materials.UpdateStockTx(nil, mID, -50))

	err = f.svc.Delete(ctx, purchase.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrRollbackInfeasible)

	assert.Equal(t, 70, f.stock(t, mID))
	_, err = f.svc.Get(ctx, purchase.ID)
	assert.NoError(t, err)
}

func TestCreatePurchaseUnknownMaterial(t *testing.T) {
	f := newPurchaseFixture()

	_, err := f.svc.Create(context.Background(), purchaseReq(f.supplier,
		dto.PurchaseItemRequest{MaterialID: uuid.NewString(), Quantity: 5, Price: mustDecimal("10")}))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Empty(t, f.purchases.purchases)
}
