package dto

import "github.com/shopspring/decimal"

type PurchaseItemRequest struct {
	MaterialID string          `json:"materialId" validate:"required,uuid"`
	Quantity   int             `json:"quantity"   validate:"required,min=1"`
	Price      decimal.Decimal `json:"price"      validate:"min=0"`
}

type CreatePurchaseRequest struct {
	InvoiceNumber string                `json:"invoiceNumber" validate:"required"`
	SupplierID    string                `json:"supplierId"    validate:"required,uuid"`
	Date          string                `json:"date"          validate:"required,datetime=2006-01-02"`
	Items         []PurchaseItemRequest `json:"items"         validate:"required,min=1,dive"`
}

// PurchaseFilter is bound from the query string of GET /v1/purchases.
type PurchaseFilter struct {
	From  string `form:"from"  validate:"omitempty,datetime=2006-01-02"`
	To    string `form:"to"    validate:"omitempty,datetime=2006-01-02"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}
