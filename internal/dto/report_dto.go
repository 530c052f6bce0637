package dto

import "github.com/shopspring/decimal"

// DateRangeFilter bounds the daily book and export queries, inclusive on both
// ends. Dates are compared by calendar day, never time-of-day.
type DateRangeFilter struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to"   validate:"required,datetime=2006-01-02"`
}

// DayBookEntry aggregates one calendar day. Cancelled sales contribute zero.
type DayBookEntry struct {
	Date           string          `json:"date"`
	SalesTotal     decimal.Decimal `json:"salesTotal"`
	PurchasesTotal decimal.Decimal `json:"purchasesTotal"`
	ExpensesTotal  decimal.Decimal `json:"expensesTotal"`
	Net            decimal.Decimal `json:"net"`
}

// DayBookResponse lists entries newest-first plus range totals.
type DayBookResponse struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	Entries        []DayBookEntry  `json:"entries"`
	SalesTotal     decimal.Decimal `json:"salesTotal"`
	PurchasesTotal decimal.Decimal `json:"purchasesTotal"`
	ExpensesTotal  decimal.Decimal `json:"expensesTotal"`
	Net            decimal.Decimal `json:"net"`
}

// InvoiceItem carries the per-line effective figures after returns.
type InvoiceItem struct {
	ProductName       string          `json:"productName"`
	Quantity          int             `json:"quantity"`
	ReturnedQuantity  int             `json:"returnedQuantity"`
	EffectiveQuantity int             `json:"effectiveQuantity"`
	Price             decimal.Decimal `json:"price"`
	EffectiveTotal    decimal.Decimal `json:"effectiveTotal"`
}

type InvoiceResponse struct {
	SaleID          string          `json:"saleId"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Date            string          `json:"date"`
	CustomerName    string          `json:"customerName"`
	CustomerAddress string          `json:"customerAddress"`
	VehicleNumber   *string         `json:"vehicleNumber,omitempty"`
	Items           []InvoiceItem   `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	IsCancelled     bool            `json:"isCancelled"`
}

type LowStockItem struct {
	MaterialID string `json:"materialId"`
	Name       string `json:"name"`
	Stock      int    `json:"stock"`
	Threshold  int    `json:"threshold"`
}

// ExportRequest asks for a PDF of sales or purchase history in a date range.
type ExportRequest struct {
	Kind string `json:"kind" validate:"required,oneof=sales purchases"`
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to"   validate:"required,datetime=2006-01-02"`
}
