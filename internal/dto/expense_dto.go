package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Date     string          `json:"date"     validate:"required,datetime=2006-01-02"`
	Category string          `json:"category" validate:"required"`
	Amount   decimal.Decimal `json:"amount"   validate:"required"`
	Note     *string         `json:"note"`
}
