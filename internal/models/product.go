package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Units a product can be counted in.
const (
	UnitPiece    = "Unit"
	UnitLiter    = "Liter"
	UnitGallon   = "Gallon"
	UnitKilogram = "Kilogram"
	UnitPound    = "Pound"
)

var ProductUnits = []string{UnitPiece, UnitLiter, UnitGallon, UnitKilogram, UnitPound}

type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SupermarketID uuid.UUID       `gorm:"type:uuid;index;not null" json:"supermarket_id"`
	Supermarket   Supermarket     `gorm:"foreignKey:SupermarketID" json:"-"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"category_id"`
	Category      Category        `gorm:"foreignKey:CategoryID" json:"-"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"supplier_id"`
	Supplier      Supplier        `gorm:"foreignKey:SupplierID" json:"-"`
	Code          string          `gorm:"size:50;index" json:"code"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"size:500" json:"description"`
	Unit          string          `gorm:"size:20;not null" json:"unit"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	QuantityLeft  int             `gorm:"not null;default:0" json:"quantity_left"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
