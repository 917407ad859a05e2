package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of a new order. The caller sends the full
// product snapshot (the catalog state it sold against), which is stored
// verbatim — orders are never re-priced.
type OrderItemRequest struct {
	Code        int64             `json:"code"        validate:"required"`
	Name        string            `json:"name"        validate:"required"`
	Measurement string            `json:"measurement" validate:"required,oneof=unit kilogram"`
	Quantity    decimal.Decimal   `json:"quantity"    validate:"required"`
	Units       *decimal.Decimal  `json:"units"`
	Discount    *decimal.Decimal  `json:"discount"`
	Prices      []decimal.Decimal `json:"prices"      validate:"required,min=1"`
}

type CreateOrderRequest struct {
	ClientID     string             `json:"clientId"     validate:"required,uuid"`
	DeliveryDate string             `json:"deliveryDate" validate:"required"`
	SelectedList int                `json:"selectedList" validate:"min=0"`
	Products     []OrderItemRequest `json:"products"     validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	DeliveryDate *string             `json:"deliveryDate"`
	SelectedList *int                `json:"selectedList" validate:"omitempty,min=0"`
	Products     []OrderItemRequest  `json:"products"     validate:"omitempty,min=1,dive"`
}

type OrderFilter struct {
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=100"`
	Search string `form:"search"`
}

type OrderItemResponse struct {
	Code        int64             `json:"code"`
	Name        string            `json:"name"`
	Measurement string            `json:"measurement"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Units       *decimal.Decimal  `json:"units,omitempty"`
	Discount    *decimal.Decimal  `json:"discount,omitempty"`
	Prices      []decimal.Decimal `json:"prices"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	DocumentNumber int64               `json:"documentNumber"`
	ClientID       string              `json:"clientId"`
	ClientName     string              `json:"clientName"`
	ClientNumber   int64               `json:"clientNumber"`
	ClientAddress  string              `json:"clientAddress"`
	ClientPhone    string              `json:"clientPhone"`
	DeliveryDate   string              `json:"deliveryDate"`
	SelectedList   int                 `json:"selectedList"`
	Date           time.Time           `json:"date"`
	Products       []OrderItemResponse `json:"products"`
}

type OrderListResponse struct {
	Data       []OrderResponse `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}
