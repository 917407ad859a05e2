package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/pricing"
	"github.com/rafamossetto/distributor-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Caller identifies the authenticated user for ownership checks.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

type ProductService interface {
	Create(ctx context.Context, caller Caller, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.ProductResponse, error)
	GetByCode(ctx context.Context, code int64) (*dto.PriceCheckResponse, error)
	List(ctx context.Context, caller Caller, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, caller Caller, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
}

type productService struct {
	products   repository.ProductRepository
	priceLists repository.PriceListRepository
	log        zerolog.Logger
}

func NewProductService(products repository.ProductRepository, priceLists repository.PriceListRepository, log zerolog.Logger) ProductService {
	return &productService{
		products:   products,
		priceLists: priceLists,
		log:        log.With().Str("component", "product_service").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, caller Caller, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	lists, err := s.priceLists.List(ctx)
	if err != nil {
		return nil, err
	}

	code, err := s.products.NextCode(ctx)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Code:        code,
		Name:        strings.ToUpper(req.Name),
		Description: req.Description,
		Measurement: req.Measurement,
		Prices:      pricing.PriceVector(req.Price, extractPercents(lists)),
		Discount:    req.Discount,
		Units:       req.Units,
		Quantity:    req.Quantity,
		UserID:      caller.UserID,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info().Int64("code", product.Code).Str("name", product.Name).Msg("product created")
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) GetByCode(ctx context.Context, code int64) (*dto.PriceCheckResponse, error) {
	product, err := s.products.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dto.PriceCheckResponse{
		Code:        product.Code,
		Name:        product.Name,
		Measurement: product.Measurement,
		Prices:      product.Prices,
	}, nil
}

func (s *productService) List(ctx context.Context, caller Caller, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if !caller.IsAdmin {
		id := caller.UserID.String()
		filter.UserID = &id
	}

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ProductResponse, len(products))
	for i := range products {
		data[i] = toProductResponse(&products[i])
	}

	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productService) Update(ctx context.Context, caller Caller, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.ToUpper(*req.Name)
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Measurement != nil {
		product.Measurement = *req.Measurement
	}
	if req.Discount != nil {
		product.Discount = req.Discount
	}
	if req.Units != nil {
		product.Units = req.Units
	}
	if req.Quantity != nil {
		product.Quantity = req.Quantity
	}

	// A base price change rebuilds the whole vector from the current tiers.
	if req.Price != nil {
		lists, err := s.priceLists.List(ctx)
		if err != nil {
			return nil, err
		}
		product.Prices = pricing.PriceVector(*req.Price, extractPercents(lists))
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, caller, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// findOwned loads a product and enforces ownership for non-admin callers.
func (s *productService) findOwned(ctx context.Context, caller Caller, id uuid.UUID) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin && product.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	return product, nil
}

// extractPercents reads the tier percents in ascending tier-number order.
func extractPercents(lists []model.PriceList) []decimal.Decimal {
	percents := make([]decimal.Decimal, len(lists))
	for i, pl := range lists {
		percents[i] = pl.Percent
	}
	return percents
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Measurement: p.Measurement,
		Prices:      p.Prices,
		Discount:    p.Discount,
		Units:       p.Units,
		Quantity:    p.Quantity,
	}
}
