package model

import (
	"time"

	"github.com/google/uuid"
)

// ManufacturingRecord captures one production run: raw materials consumed and
// finished products produced, applied to stock as a single atomic step.
type ManufacturingRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date      string    `gorm:"type:date;index;not null" json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"createdAt"`

	Consumed []ConsumedMaterial `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"rawMaterialsConsumed"`
	Produced []ProducedProduct  `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"productsProduced"`
}

type ConsumedMaterial struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recordId"`
	MaterialID   uuid.UUID `gorm:"type:uuid;not null" json:"materialId"`
	MaterialName string    `gorm:"not null" json:"materialName"`
	Quantity     int       `gorm:"not null" json:"quantity"`
}

type ProducedProduct struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RecordID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recordId"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	ProductName string    `gorm:"not null" json:"productName"`
	Quantity    int       `gorm:"not null" json:"quantity"`
}
