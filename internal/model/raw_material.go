package model

import (
	"time"

	"github.com/google/uuid"
)

// RawMaterial is an input material consumed by manufacturing and replenished
// by purchases. Stock is only written by the transaction services — never
// directly from a handler.
type RawMaterial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	// Threshold marks the low-stock warning level. Display only — it never
	// blocks a transaction.
	Threshold int       `gorm:"not null;default:0" json:"threshold"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
