package repository

import (
	"context"
	"time"

	"github.com/rafamossetto/distributor-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RouteRepository interface {
	Create(ctx context.Context, rt *model.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Route, error)
	// List filters by optional inclusive date bounds.
	List(ctx context.Context, startDate, endDate *time.Time) ([]model.Route, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type routeRepo struct{ db *gorm.DB }

func NewRouteRepository(db *gorm.DB) RouteRepository { return &routeRepo{db: db} }

func (r *routeRepo) Create(ctx context.Context, rt *model.Route) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *routeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Route, error) {
	var rt model.Route
	err := r.db.WithContext(ctx).First(&rt, id).Error
	return &rt, err
}

func (r *routeRepo) List(ctx context.Context, startDate, endDate *time.Time) ([]model.Route, error) {
	var routes []model.Route
	q := r.db.WithContext(ctx).Model(&model.Route{})
	if startDate != nil {
		q = q.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("date <= ?", *endDate)
	}
	err := q.Order("date").Find(&routes).Error
	return routes, err
}

func (r *routeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Route{}, id).Error
}
