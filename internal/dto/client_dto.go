package dto

import "github.com/shopspring/decimal"

type CreateClientRequest struct {
	Name           string           `json:"name"    validate:"required,min=2,max=120"`
	Type           string           `json:"type"    validate:"required"`
	Address        string           `json:"address" validate:"required"`
	Phone          string           `json:"phone"   validate:"required"`
	CurrentAccount *decimal.Decimal `json:"currentAccount"`
}

type UpdateClientRequest struct {
	Name           *string          `json:"name"    validate:"omitempty,min=2,max=120"`
	Type           *string          `json:"type"`
	Address        *string          `json:"address"`
	Phone          *string          `json:"phone"`
	CurrentAccount *decimal.Decimal `json:"currentAccount"`
}

type ClientResponse struct {
	ID             string           `json:"id"`
	Number         int64            `json:"clientNumber"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Address        string           `json:"address"`
	Phone          string           `json:"phone"`
	CurrentAccount *decimal.Decimal `json:"currentAccount,omitempty"`
}
