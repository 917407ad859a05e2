package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Measurement values accepted for products and order lines.
const (
	MeasurementUnit     = "unit"
	MeasurementKilogram = "kilogram"
)

// PriceVector is a product's full price list: index 0 is the base price,
// index i (i>0) is the base price adjusted by price list tier #i.
// Stored as jsonb so the vector length can follow the tier set.
type PriceVector []decimal.Decimal

// Product is a catalog item. Prices always holds 1 + tierCount entries and
// is recomputed from Prices[0] whenever the tier set changes.
type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code        int64            `gorm:"uniqueIndex;not null" json:"code"`
	Name        string           `gorm:"index;not null" json:"name"`
	Description *string          `json:"description,omitempty"`
	Measurement string           `gorm:"type:varchar(20);not null;default:'unit'" json:"measurement"`
	Prices      PriceVector      `gorm:"serializer:json;not null" json:"prices"`
	Discount    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount,omitempty"`
	Units       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"units,omitempty"`
	Quantity    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"quantity,omitempty"`
	UserID      uuid.UUID        `gorm:"type:uuid;index;not null" json:"userId"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
