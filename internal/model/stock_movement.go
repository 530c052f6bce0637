package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity kinds referenced by StockMovement.
const (
	StockEntityMaterial = "material"
	StockEntityProduct  = "product"
)

// Movement types. Every stock write carries one.
const (
	MovementPurchase         = "purchase"
	MovementPurchaseRollback = "purchase_rollback"
	MovementSale             = "sale"
	MovementSaleEdit         = "sale_edit"
	MovementReturn           = "return"
	MovementCancellation     = "cancellation"
	MovementManufacturing    = "manufacturing"
	MovementManufRollback    = "manufacturing_rollback"
	MovementAdjustment       = "adjustment"
)

// StockMovement registers every stock change on a material or product.
// Manual corrections through the material/product edit forms go through the
// same audit trail as transactional changes, recorded as "adjustment".
type StockMovement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EntityKind  string     `gorm:"not null;index" json:"entityKind"` // material | product
	EntityID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"entityId"`
	Type        string     `gorm:"not null" json:"type"`
	Quantity    int        `gorm:"not null" json:"quantity"` // positive = in, negative = out
	StockBefore int        `gorm:"not null" json:"stockBefore"`
	StockAfter  int        `gorm:"not null" json:"stockAfter"`
	Reason      string     `json:"reason"`
	ReferenceID *uuid.UUID `gorm:"type:uuid" json:"referenceId,omitempty"` // sale/purchase/manufacturing id
	CreatedAt   time.Time  `json:"createdAt"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
