package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/pricing"
	"github.com/rafamossetto/distributor-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceCache invalidates cached public price lookups after catalog-wide
// price changes. Implemented over redis in the infra package.
type PriceCache interface {
	InvalidateAll(ctx context.Context) error
}

type PriceListService interface {
	List(ctx context.Context) ([]dto.PriceListResponse, error)
	Create(ctx context.Context, req dto.CreatePriceListRequest) (*dto.PriceListResponse, error)
	Update(ctx context.Context, req dto.UpdatePriceListRequest) (*dto.PriceListResponse, error)
	Delete(ctx context.Context, number int) error

	// CurrentPercents returns the tier percents in ascending tier-number
	// order, the shape product price vectors are derived from.
	CurrentPercents(ctx context.Context) ([]decimal.Decimal, error)

	// RecomputeAllProductPrices rebuilds every product's price vector from
	// its base price and the current tier set. Runs in the background
	// worker, paged, with one commit per page.
	RecomputeAllProductPrices(ctx context.Context) error
}

type priceListService struct {
	priceLists repository.PriceListRepository
	products   repository.ProductRepository
	dispatcher JobDispatcher
	cache      PriceCache
	pageSize   int
	log        zerolog.Logger
}

func NewPriceListService(
	priceLists repository.PriceListRepository,
	products repository.ProductRepository,
	dispatcher JobDispatcher,
	cache PriceCache,
	pageSize int,
	log zerolog.Logger,
) PriceListService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &priceListService{
		priceLists: priceLists,
		products:   products,
		dispatcher: dispatcher,
		cache:      cache,
		pageSize:   pageSize,
		log:        log.With().Str("component", "price_list_service").Logger(),
	}
}

func (s *priceListService) List(ctx context.Context) ([]dto.PriceListResponse, error) {
	lists, err := s.priceLists.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListResponse, len(lists))
	for i, pl := range lists {
		out[i] = dto.PriceListResponse{Number: pl.Number, Percent: pl.Percent}
	}
	return out, nil
}

func (s *priceListService) CurrentPercents(ctx context.Context) ([]decimal.Decimal, error) {
	lists, err := s.priceLists.List(ctx)
	if err != nil {
		return nil, err
	}
	percents := make([]decimal.Decimal, len(lists))
	for i, pl := range lists {
		percents[i] = pl.Percent
	}
	return percents, nil
}

func (s *priceListService) Create(ctx context.Context, req dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	var created model.PriceList

	err := s.priceLists.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.priceLists.FindByPercentTx(tx, req.Percent); err == nil {
			return ErrDuplicateTier
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		count, err := s.priceLists.CountTx(tx)
		if err != nil {
			return err
		}

		created = model.PriceList{Number: int(count) + 1, Percent: req.Percent}
		return s.priceLists.CreateTx(tx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("number", created.Number).Str("percent", created.Percent.String()).Msg("price list tier created")
	s.enqueueRecompute(ctx)

	return &dto.PriceListResponse{Number: created.Number, Percent: created.Percent}, nil
}

func (s *priceListService) Update(ctx context.Context, req dto.UpdatePriceListRequest) (*dto.PriceListResponse, error) {
	if existing, err := s.priceLists.FindByPercent(ctx, req.Percent); err == nil && existing.Number != req.Number {
		return nil, ErrDuplicateTier
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rows, err := s.priceLists.UpdatePercent(ctx, req.Number, req.Percent)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	s.log.Info().Int("number", req.Number).Str("percent", req.Percent.String()).Msg("price list tier updated")
	s.enqueueRecompute(ctx)

	return &dto.PriceListResponse{Number: req.Number, Percent: req.Percent}, nil
}

func (s *priceListService) Delete(ctx context.Context, number int) error {
	err := s.priceLists.Transaction(ctx, func(tx *gorm.DB) error {
		count, err := s.priceLists.CountTx(tx)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastTier
		}

		rows, err := s.priceLists.DeleteByNumberTx(tx, number)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrNotFound
		}

		// Renumber survivors to contiguous 1..N by ascending percent.
		// Two passes because of the unique index on number.
		remaining, err := s.priceLists.ListByPercentAscTx(tx)
		if err != nil {
			return err
		}
		for i, pl := range remaining {
			if err := s.priceLists.UpdateNumberTx(tx, pl.ID, -(i + 1)); err != nil {
				return err
			}
		}
		for i, pl := range remaining {
			if err := s.priceLists.UpdateNumberTx(tx, pl.ID, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Int("number", number).Msg("price list tier deleted")
	s.enqueueRecompute(ctx)
	return nil
}

// enqueueRecompute is fire and forget: the tier change already committed,
// the catalog catches up asynchronously.
func (s *priceListService) enqueueRecompute(ctx context.Context) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueRecompute(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to enqueue price recompute")
	}
}

func (s *priceListService) RecomputeAllProductPrices(ctx context.Context) error {
	percents, err := s.CurrentPercents(ctx)
	if err != nil {
		return fmt.Errorf("loading tier set: %w", err)
	}

	offset := 0
	pages := 0
	for {
		page, err := s.products.ListPage(ctx, offset, s.pageSize)
		if err != nil {
			return fmt.Errorf("loading product page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			if len(page[i].Prices) == 0 {
				s.log.Warn().Int64("code", page[i].Code).Msg("product has empty price vector, skipping")
				continue
			}
			base := page[i].Prices[0]
			page[i].Prices = pricing.PriceVector(base, percents)
		}

		// One commit per page: a failure aborts the run but keeps the
		// pages already written.
		if err := s.products.UpdatePricesPage(ctx, page); err != nil {
			return fmt.Errorf("persisting product page at offset %d: %w", offset, err)
		}

		pages++
		offset += s.pageSize
	}

	if s.cache != nil {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			s.log.Error().Err(err).Msg("failed to invalidate price cache")
		}
	}

	s.log.Info().Int("pages", pages).Int("tiers", len(percents)).Msg("product price recompute finished")
	return nil
}
