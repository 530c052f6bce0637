package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a manufactured good available for sale. StockQuantity increases
// on manufacturing runs and sale returns/cancellations, decreases on sales.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name          string          `gorm:"index;not null" json:"name"`
	SalesPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salesPrice"`
	StockQuantity int             `gorm:"not null;default:0" json:"stockQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
