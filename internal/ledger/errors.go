package ledger

import "errors"

// Domain error taxonomy. Services wrap these with human-readable detail; the
// HTTP layer and tests match them with errors.Is.
var (
	// ErrInsufficientStock — a sale requests more product units than available.
	ErrInsufficientStock = errors.New("insufficient product stock")

	// ErrInsufficientRawMaterial — a manufacturing run would drive a raw
	// material below zero.
	ErrInsufficientRawMaterial = errors.New("insufficient raw material stock")

	// ErrRollbackInfeasible — deleting a transaction cannot be honored because
	// the stock it added has since been consumed.
	ErrRollbackInfeasible = errors.New("stock rollback infeasible")

	// ErrInvalidReturnQuantity — a return exceeds the un-returned remainder of
	// a sale item.
	ErrInvalidReturnQuantity = errors.New("invalid return quantity")

	// ErrSaleCancelled — edit/return/cancel attempted on a cancelled sale.
	ErrSaleCancelled = errors.New("sale is cancelled")

	// ErrNotFound — a referenced record id could not be resolved.
	ErrNotFound = errors.New("record not found")

	// ErrValidation — a required field is missing or malformed.
	ErrValidation = errors.New("validation error")
)
