package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer identity is immutable once a sale references it — sales carry a
// denormalized CustomerName so historical invoices survive later edits.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Supplier mirrors Customer on the purchasing side.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
