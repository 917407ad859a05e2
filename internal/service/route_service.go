package service

import (
	"context"
	"errors"
	"time"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type RouteService interface {
	Create(ctx context.Context, req dto.CreateRouteRequest) (*dto.RouteResponse, error)
	List(ctx context.Context, filter dto.RouteFilter) ([]dto.RouteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type routeService struct {
	routes repository.RouteRepository
	log    zerolog.Logger
}

func NewRouteService(routes repository.RouteRepository, log zerolog.Logger) RouteService {
	return &routeService{
		routes: routes,
		log:    log.With().Str("component", "route_service").Logger(),
	}
}

// parseDate accepts RFC 3339 or plain YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (s *routeService) Create(ctx context.Context, req dto.CreateRouteRequest) (*dto.RouteResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, errors.New("fecha invalida, use formato YYYY-MM-DD")
	}

	route := &model.Route{
		Name:    req.Name,
		Clients: req.Clients,
		Date:    date,
	}
	if err := s.routes.Create(ctx, route); err != nil {
		return nil, err
	}

	s.log.Info().Int("clients", len(route.Clients)).Time("date", route.Date).Msg("route created")
	resp := toRouteResponse(route)
	return &resp, nil
}

func (s *routeService) List(ctx context.Context, filter dto.RouteFilter) ([]dto.RouteResponse, error) {
	var start, end *time.Time
	if filter.StartDate != "" {
		t, err := parseDate(filter.StartDate)
		if err != nil {
			return nil, errors.New("startDate invalida, use formato YYYY-MM-DD")
		}
		start = &t
	}
	if filter.EndDate != "" {
		t, err := parseDate(filter.EndDate)
		if err != nil {
			return nil, errors.New("endDate invalida, use formato YYYY-MM-DD")
		}
		// Inclusive end of day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	routes, err := s.routes.List(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RouteResponse, len(routes))
	for i := range routes {
		out[i] = toRouteResponse(&routes[i])
	}
	return out, nil
}

func (s *routeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.routes.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.routes.Delete(ctx, id)
}

func toRouteResponse(r *model.Route) dto.RouteResponse {
	return dto.RouteResponse{
		ID:      r.ID.String(),
		Name:    r.Name,
		Clients: r.Clients,
		Date:    r.Date,
	}
}
