package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable-after-creation business document capturing a
// point-in-time sale. Client data and line item prices are snapshotted at
// creation so later price list changes never re-price historical orders.
type Order struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DocumentNumber int64     `gorm:"uniqueIndex;not null" json:"documentNumber"`
	ClientID       uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	ClientName     string    `gorm:"not null" json:"clientName"`
	ClientNumber   int64     `gorm:"not null" json:"clientNumber"`
	ClientAddress  string    `json:"clientAddress"`
	ClientPhone    string    `json:"clientPhone"`
	// DeliveryDate is user-entered, format DD/MM/YYYY.
	DeliveryDate string `json:"deliveryDate"`
	// SelectedList is the index into each line item's price vector used for
	// this sale. Valid for every line at creation time.
	SelectedList int         `gorm:"not null" json:"selectedList"`
	UserID       uuid.UUID   `gorm:"type:uuid;index;not null" json:"userId"`
	Date         time.Time   `gorm:"not null" json:"date"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// OrderItem snapshots one product line, including the product's full price
// vector at order time.
type OrderItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	OrderID     uuid.UUID        `gorm:"type:uuid;index;not null" json:"-"`
	Code        int64            `gorm:"not null" json:"code"`
	Name        string           `gorm:"not null" json:"name"`
	Measurement string           `gorm:"type:varchar(20);not null" json:"measurement"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Units       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"units,omitempty"`
	Discount    *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount,omitempty"`
	Prices      PriceVector      `gorm:"serializer:json;not null" json:"prices"`
}
