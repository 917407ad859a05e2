package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a customer of the distribution business.
// Number is a sequential client number taken from a postgres sequence.
type Client struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Number         int64            `gorm:"uniqueIndex;not null" json:"clientNumber"`
	Name           string           `gorm:"index;not null" json:"name"`
	Type           string           `gorm:"not null" json:"type"`
	Address        string           `gorm:"not null" json:"address"`
	Phone          string           `gorm:"not null" json:"phone"`
	CurrentAccount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"currentAccount,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
