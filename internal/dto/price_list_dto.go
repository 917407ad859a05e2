package dto

import "github.com/shopspring/decimal"

type CreatePriceListRequest struct {
	Percent decimal.Decimal `json:"percent" validate:"required"`
}

type UpdatePriceListRequest struct {
	Number  int             `json:"number"  validate:"required,min=1"`
	Percent decimal.Decimal `json:"percent" validate:"required"`
}

type PriceListResponse struct {
	Number  int             `json:"number"`
	Percent decimal.Decimal `json:"percent"`
}
