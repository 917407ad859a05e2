package dto

import "time"

type CreateRouteRequest struct {
	Name    *string  `json:"name"`
	Clients []string `json:"clients" validate:"required,min=1,dive,uuid"`
	Date    string   `json:"date"    validate:"required"` // RFC 3339 or YYYY-MM-DD
}

type RouteFilter struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type RouteResponse struct {
	ID      string    `json:"id"`
	Name    *string   `json:"name,omitempty"`
	Clients []string  `json:"clients"`
	Date    time.Time `json:"date"`
}
