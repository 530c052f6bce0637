package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name          string          `json:"name"          validate:"required"`
	SalesPrice    decimal.Decimal `json:"salesPrice"    validate:"min=0"`
	StockQuantity int             `json:"stockQuantity" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"          validate:"omitempty,min=1"`
	SalesPrice    *decimal.Decimal `json:"salesPrice"    validate:"omitempty,min=0"`
	StockQuantity *int             `json:"stockQuantity" validate:"omitempty,min=0"`
}
