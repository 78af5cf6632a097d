package models

import (
	"time"

	"github.com/google/uuid"
)

type Supplier struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	SupermarketID uuid.UUID   `gorm:"type:uuid;index;not null" json:"supermarket_id"`
	Supermarket   Supermarket `gorm:"foreignKey:SupermarketID" json:"-"`
	Name          string      `gorm:"size:200;not null" json:"name"`
	Email         string      `gorm:"size:200" json:"email"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
