package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale records a quantity of a product being sold on a date. Creating a sale
// decrements the product's QuantityLeft by Quantity, deleting it restores the
// same amount; both writes happen in one transaction.
type Sale struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	SupermarketID uuid.UUID   `gorm:"type:uuid;index;not null" json:"supermarket_id"`
	Supermarket   Supermarket `gorm:"foreignKey:SupermarketID" json:"-"`
	ProductID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"product_id"`
	Product       Product     `gorm:"foreignKey:ProductID" json:"-"`
	Quantity      int         `gorm:"not null" json:"quantity"`
	SaleDate      time.Time   `gorm:"index;not null" json:"sale_date"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
