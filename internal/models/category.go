package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	SupermarketID uuid.UUID   `gorm:"type:uuid;index;not null" json:"supermarket_id"`
	Supermarket   Supermarket `gorm:"foreignKey:SupermarketID" json:"-"`
	Name          string      `gorm:"size:100;not null" json:"name"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
