package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is append-mostly: after creation it may only change through the edit,
// return and cancel operations of SaleService. IsCancelled is terminal — a
// cancelled sale accepts no further edits or returns, but its items remain
// visible for audit.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceNumber string          `gorm:"index;not null" json:"invoiceNumber"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"customerId"`
	CustomerName  string          `gorm:"not null" json:"customerName"`
	Date          string          `gorm:"type:date;index;not null" json:"date"` // YYYY-MM-DD
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	IsCancelled   bool            `gorm:"not null;default:false" json:"isCancelled"`
	VehicleNumber *string         `json:"vehicleNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// SaleItem tracks partial returns via ReturnedQuantity. The effective stock
// effect of an active item is -(Quantity - ReturnedQuantity).
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"saleId"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null" json:"productId"`
	ProductName      string          `gorm:"not null" json:"productName"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ReturnedQuantity int             `gorm:"not null;default:0" json:"returnedQuantity"`
}
