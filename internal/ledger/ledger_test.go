package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

func TestNegateIsExactInverse(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	d := Delta{a: 5, b: -3}

	inv := Negate(d)
	assert.Equal(t, Delta{a: -5, b: 3}, inv)

	// d + Negate(d) must be a zero delta for every key
	sum := Merge(d, inv)
	for id, q := range sum {
		assert.Zerof(t, q, "residual delta for %s", id)
	}
}

func TestMergeSumsOverlappingKeys(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	got := Merge(Delta{a: 2, b: -1}, Delta{b: 4, c: 7})
	assert.Equal(t, Delta{a: 2, b: 3, c: 7}, got)
}

func TestPurchaseDeltaAndRollback(t *testing.T) {
	m := uuid.New()
	items := []model.PurchaseItem{{MaterialID: m, Quantity: 20}}

	assert.Equal(t, Delta{m: 20}, PurchaseDelta(items))
	assert.Equal(t, Delta{m: -20}, PurchaseRollbackDelta(items))
}

func TestSaleRollbackDeltaExcludesReturnedUnits(t *testing.T) {
	p := uuid.New()
	items := []model.SaleItem{{ProductID: p, Quantity: 10, ReturnedQuantity: 3}}

	// 3 units are already back in stock — only the remaining 7 are restored
	assert.Equal(t, Delta{p: 7}, SaleRollbackDelta(items))
}

func TestReturnDeltaSkipsZeroLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	d := ReturnDelta([]Return{
		{ProductID: a, Quantity: 3},
		{ProductID: b, Quantity: 0},
	})
	assert.Equal(t, Delta{a: 3}, d)
}

func TestManufacturingDeltaSplitsSides(t *testing.T) {
	m, p := uuid.New(), uuid.New()
	materials, products := ManufacturingDelta(
		[]model.ConsumedMaterial{{MaterialID: m, Quantity: 4}},
		[]model.ProducedProduct{{ProductID: p, Quantity: 2}},
	)
	assert.Equal(t, Delta{m: -4}, materials)
	assert.Equal(t, Delta{p: 2}, products)
}

func TestManufacturingRollbackInvertsBothSides(t *testing.T) {
	m, p := uuid.New(), uuid.New()
	rec := &model.ManufacturingRecord{
		Consumed: []model.ConsumedMaterial{{MaterialID: m, Quantity: 4}},
		Produced: []model.ProducedProduct{{ProductID: p, Quantity: 2}},
	}
	materials, products := ManufacturingRollbackDelta(rec)
	assert.Equal(t, Delta{m: 4}, materials)
	assert.Equal(t, Delta{p: -2}, products)
}

func TestValidateRejectsNegativeOutcome(t *testing.T) {
	p := uuid.New()
	stock := map[uuid.UUID]int{p: 10}
	names := map[uuid.UUID]string{p: "Bricks"}

	require.NoError(t, Validate(stock, names, Delta{p: -10}, ErrInsufficientStock))

	err := Validate(stock, names, Delta{p: -12}, ErrInsufficientStock)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Bricks")
}

func TestValidateUnknownEntity(t *testing.T) {
	err := Validate(map[uuid.UUID]int{}, nil, Delta{uuid.New(): -1}, ErrInsufficientStock)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateReturnBounds(t *testing.T) {
	p := uuid.New()
	items := []model.SaleItem{{ProductID: p, ProductName: "Tiles", Quantity: 10, ReturnedQuantity: 7}}

	// remaining un-returned is 3
	require.NoError(t, ValidateReturn(items, []Return{{ProductID: p, Quantity: 3}}))
	require.NoError(t, ValidateReturn(items, []Return{{ProductID: p, Quantity: 0}}))

	err := ValidateReturn(items, []Return{{ProductID: p, Quantity: 5}})
	assert.ErrorIs(t, err, ErrInvalidReturnQuantity)

	err = ValidateReturn(items, []Return{{ProductID: p, Quantity: -1}})
	assert.ErrorIs(t, err, ErrInvalidReturnQuantity)

	err = ValidateReturn(items, []Return{{ProductID: uuid.New(), Quantity: 1}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateReturnSumsDuplicateLines(t *testing.T) {
	p := uuid.New()
	items := []model.SaleItem{{ProductID: p, ProductName: "Tiles", Quantity: 10}}

	// each line fits the remainder on its own, the sum does not
	err := ValidateReturn(items, []Return{{ProductID: p, Quantity: 6}, {ProductID: p, Quantity: 6}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReturnQuantity)

	// split lines whose sum fits are fine
	require.NoError(t, ValidateReturn(items, []Return{{ProductID: p, Quantity: 3}, {ProductID: p, Quantity: 4}}))
}

func TestEffectiveQuantity(t *testing.T) {
	it := model.SaleItem{Quantity: 10, ReturnedQuantity: 2}
	assert.Equal(t, 8, EffectiveQuantity(it))
}
