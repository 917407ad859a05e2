package model

import (
	"time"

	"github.com/google/uuid"
)

// Route is a delivery route: an ordered set of client ids visited on a date.
type Route struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name    *string   `json:"name,omitempty"`
	Clients []string  `gorm:"serializer:json" json:"clients"`
	Date    time.Time `gorm:"index;not null" json:"date"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
