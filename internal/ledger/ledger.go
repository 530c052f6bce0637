// Package ledger computes and validates signed stock deltas for every
// transaction type. It never mutates state: the transaction services apply
// the deltas it produces, and deleting or cancelling a transaction reapplies
// the negated delta rather than recomputing from scratch. This keeps every
// transaction's stock effect reversible by construction.
package ledger

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/DareDevilStudios/sharon-billing/internal/model"
)

// Delta maps an entity id to a signed stock change.
type Delta map[uuid.UUID]int

// Return is one line of a return request against a sale.
type Return struct {
	ProductID uuid.UUID
	Quantity  int
}

// Negate returns the exact inverse of d.
func Negate(d Delta) Delta {
	out := make(Delta, len(d))
	for id, q := range d {
		out[id] = -q
	}
	return out
}

// Merge sums two deltas into a new one.
func Merge(a, b Delta) Delta {
	out := make(Delta, len(a)+len(b))
	for id, q := range a {
		out[id] += q
	}
	for id, q := range b {
		out[id] += q
	}
	return out
}

// PurchaseDelta is the material stock effect of receiving a purchase.
// Purchases only increase stock, so no validation is needed.
func PurchaseDelta(items []model.PurchaseItem) Delta {
	d := make(Delta, len(items))
	for _, it := range items {
		d[it.MaterialID] += it.Quantity
	}
	return d
}

// PurchaseRollbackDelta is the inverse of PurchaseDelta, applied when a
// purchase is deleted.
func PurchaseRollbackDelta(items []model.PurchaseItem) Delta {
	return Negate(PurchaseDelta(items))
}

// SaleDelta is the product stock effect of a new sale.
func SaleDelta(items []model.SaleItem) Delta {
	d := make(Delta, len(items))
	for _, it := range items {
		d[it.ProductID] -= it.Quantity
	}
	return d
}

// SaleRollbackDelta restores the un-returned remainder of every item:
// quantity minus returnedQuantity. Returned units are already back in stock,
// so restoring the full quantity would double-count them.
func SaleRollbackDelta(items []model.SaleItem) Delta {
	d := make(Delta, len(items))
	for _, it := range items {
		d[it.ProductID] += it.Quantity - it.ReturnedQuantity
	}
	return d
}

// ReturnDelta is the product stock restored by a set of return lines.
// Zero-quantity lines contribute nothing.
func ReturnDelta(returns []Return) Delta {
	d := make(Delta, len(returns))
	for _, r := range returns {
		if r.Quantity > 0 {
			d[r.ProductID] += r.Quantity
		}
	}
	return d
}

// ManufacturingDelta splits one production run into its material side
// (consumption, negative) and product side (output, positive).
func ManufacturingDelta(consumed []model.ConsumedMaterial, produced []model.ProducedProduct) (materials Delta, products Delta) {
	materials = make(Delta, len(consumed))
	for _, c := range consumed {
		materials[c.MaterialID] -= c.Quantity
	}
	products = make(Delta, len(produced))
	for _, p := range produced {
		products[p.ProductID] += p.Quantity
	}
	return materials, products
}

// ManufacturingRollbackDelta inverts a recorded run for deletion.
func ManufacturingRollbackDelta(rec *model.ManufacturingRecord) (materials Delta, products Delta) {
	m, p := ManufacturingDelta(rec.Consumed, rec.Produced)
	return Negate(m), Negate(p)
}

// Validate checks that applying d to the given stock snapshot leaves no entity
// below zero. names is used for the error message; cause is the sentinel the
// failure wraps (ErrInsufficientStock, ErrInsufficientRawMaterial or
// ErrRollbackInfeasible depending on the operation).
func Validate(stock map[uuid.UUID]int, names map[uuid.UUID]string, d Delta, cause error) error {
	for id, q := range d {
		have, ok := stock[id]
		if !ok {
			return fmt.Errorf("%w: id %s", ErrNotFound, id)
		}
		if have+q < 0 {
			return fmt.Errorf("%w: %s has %d in stock, %d required", cause, names[id], have, -q)
		}
	}
	return nil
}

// ValidateReturn checks return lines against each sale item's un-returned
// remainder: 0 <= quantity <= (quantity - returnedQuantity). Lines repeating
// a product are summed before the check, so splitting a return across
// duplicate lines cannot exceed the remainder.
func ValidateReturn(items []model.SaleItem, returns []Return) error {
	byProduct := make(map[uuid.UUID]model.SaleItem, len(items))
	for _, it := range items {
		byProduct[it.ProductID] = it
	}
	requested := make(map[uuid.UUID]int, len(returns))
	for _, r := range returns {
		if _, ok := byProduct[r.ProductID]; !ok {
			return fmt.Errorf("%w: product %s is not part of this sale", ErrNotFound, r.ProductID)
		}
		if r.Quantity < 0 {
			return fmt.Errorf("%w: %s quantity must not be negative", ErrInvalidReturnQuantity, byProduct[r.ProductID].ProductName)
		}
		requested[r.ProductID] += r.Quantity
	}
	for id, q := range requested {
		it := byProduct[id]
		max := it.Quantity - it.ReturnedQuantity
		if q > max {
			return fmt.Errorf("%w: %s allows at most %d, got %d", ErrInvalidReturnQuantity, it.ProductName, max, q)
		}
	}
	return nil
}

// EffectiveQuantity is the sold quantity minus whatever has been returned.
func EffectiveQuantity(it model.SaleItem) int {
	return it.Quantity - it.ReturnedQuantity
}
