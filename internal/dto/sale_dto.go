package dto

import "github.com/shopspring/decimal"

type SaleItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoiceNumber" validate:"required"`
	CustomerID    string            `json:"customerId"    validate:"required,uuid"`
	Date          string            `json:"date"          validate:"required,datetime=2006-01-02"`
	Discount      decimal.Decimal   `json:"discount"      validate:"min=0"`
	VehicleNumber *string           `json:"vehicleNumber" validate:"omitempty,min=1"`
	Items         []SaleItemRequest `json:"items"         validate:"required,min=1,dive"`
}

// UpdateSaleRequest replaces the full item set. The service rolls back the
// original items before applying these — edit is never an item diff.
type UpdateSaleRequest struct {
	InvoiceNumber string            `json:"invoiceNumber" validate:"required"`
	CustomerID    string            `json:"customerId"    validate:"required,uuid"`
	Date          string            `json:"date"          validate:"required,datetime=2006-01-02"`
	Discount      decimal.Decimal   `json:"discount"      validate:"min=0"`
	VehicleNumber *string           `json:"vehicleNumber" validate:"omitempty,min=1"`
	Items         []SaleItemRequest `json:"items"         validate:"required,min=1,dive"`
}

type ReturnItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"min=0"`
}

type ReturnSaleRequest struct {
	Items []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	From      string `form:"from"      validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to"        validate:"omitempty,datetime=2006-01-02"`
	Cancelled string `form:"cancelled"` // "true" | "false" | "" (all)
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}
