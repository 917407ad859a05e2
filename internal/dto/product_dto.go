package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,min=2,max=120"`
	Description *string          `json:"description"`
	Measurement string           `json:"measurement" validate:"required,oneof=unit kilogram"`
	// Price is the base price; the full vector is derived from the current
	// price list tiers at creation time.
	Price    decimal.Decimal  `json:"price"    validate:"required"`
	Discount *decimal.Decimal `json:"discount"`
	Units    *decimal.Decimal `json:"units"`
	Quantity *decimal.Decimal `json:"quantity"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description"`
	Measurement *string          `json:"measurement" validate:"omitempty,oneof=unit kilogram"`
	Price       *decimal.Decimal `json:"price"`
	Discount    *decimal.Decimal `json:"discount"`
	Units       *decimal.Decimal `json:"units"`
	Quantity    *decimal.Decimal `json:"quantity"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name  string `form:"name"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=100"`
	// UserID scopes the listing to one owner. Set by the service layer for
	// non-admin callers, never bound from the request.
	UserID *string `form:"-"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string            `json:"id"`
	Code        int64             `json:"code"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Measurement string            `json:"measurement"`
	Prices      []decimal.Decimal `json:"prices"`
	Discount    *decimal.Decimal  `json:"discount,omitempty"`
	Units       *decimal.Decimal  `json:"units,omitempty"`
	Quantity    *decimal.Decimal  `json:"quantity,omitempty"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceCheckResponse is the public, cacheable price lookup payload.
type PriceCheckResponse struct {
	Code        int64             `json:"code"`
	Name        string            `json:"name"`
	Measurement string            `json:"measurement"`
	Prices      []decimal.Decimal `json:"prices"`
}
