package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceList is one markup tier applied uniformly across the catalog.
// Number is the 1-based rank (contiguous 1..N, renumbered on delete by
// ascending percent); Percent is the markup over the base price.
type PriceList struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Number  int             `gorm:"uniqueIndex;not null" json:"number"`
	Percent decimal.Decimal `gorm:"type:decimal(5,2);uniqueIndex;not null" json:"percent"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
