package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records raw materials received from a supplier. Deleting a purchase
// rolls back exactly the stock it added — see PurchaseService.Delete.
type Purchase struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceNumber string          `gorm:"index;not null" json:"invoiceNumber"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplierId"`
	SupplierName  string          `gorm:"not null" json:"supplierName"`
	Date          string          `gorm:"type:date;index;not null" json:"date"` // YYYY-MM-DD
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	CreatedAt     time.Time       `json:"createdAt"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE" json:"items"`
}

type PurchaseItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PurchaseID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchaseId"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;not null" json:"materialId"`
	MaterialName string          `gorm:"not null" json:"materialName"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}
