package service_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/repository"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubPriceListRepo is an in-memory PriceListRepository. Transactions run
// the callback directly; the Tx methods ignore the tx handle.
type stubPriceListRepo struct {
	tiers []model.PriceList
}

var _ repository.PriceListRepository = (*stubPriceListRepo)(nil)

func newStubPriceListRepo(percents ...string) *stubPriceListRepo {
	r := &stubPriceListRepo{}
	for i, p := range percents {
		r.tiers = append(r.tiers, model.PriceList{ID: uuid.New(), Number: i + 1, Percent: dec(p)})
	}
	return r
}

func (r *stubPriceListRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubPriceListRepo) List(_ context.Context) ([]model.PriceList, error) {
	out := append([]model.PriceList(nil), r.tiers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *stubPriceListRepo) FindByNumber(_ context.Context, number int) (*model.PriceList, error) {
	for i := range r.tiers {
		if r.tiers[i].Number == number {
			return &r.tiers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPriceListRepo) FindByPercent(_ context.Context, percent decimal.Decimal) (*model.PriceList, error) {
	return r.FindByPercentTx(nil, percent)
}

func (r *stubPriceListRepo) FindByPercentTx(_ *gorm.DB, percent decimal.Decimal) (*model.PriceList, error) {
	for i := range r.tiers {
		if r.tiers[i].Percent.Equal(percent) {
			return &r.tiers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPriceListRepo) CountTx(_ *gorm.DB) (int64, error) {
	return int64(len(r.tiers)), nil
}

func (r *stubPriceListRepo) CreateTx(_ *gorm.DB, pl *model.PriceList) error {
	pl.ID = uuid.New()
	r.tiers = append(r.tiers, *pl)
	return nil
}

func (r *stubPriceListRepo) DeleteByNumberTx(_ *gorm.DB, number int) (int64, error) {
	for i := range r.tiers {
		if r.tiers[i].Number == number {
			r.tiers = append(r.tiers[:i], r.tiers[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubPriceListRepo) ListByPercentAscTx(_ *gorm.DB) ([]model.PriceList, error) {
	out := append([]model.PriceList(nil), r.tiers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Percent.LessThan(out[j].Percent) })
	return out, nil
}

func (r *stubPriceListRepo) UpdateNumberTx(_ *gorm.DB, id uuid.UUID, number int) error {
	for i := range r.tiers {
		if r.tiers[i].ID == id {
			r.tiers[i].Number = number
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPriceListRepo) UpdatePercent(_ context.Context, number int, percent decimal.Decimal) (int64, error) {
	for i := range r.tiers {
		if r.tiers[i].Number == number {
			r.tiers[i].Percent = percent
			return 1, nil
		}
	}
	return 0, nil
}

// stubProductRepo is an in-memory ProductRepository covering what the
// recompute path needs.
type stubProductRepo struct {
	products    []model.Product
	failAtPage  int // 1-based page index that fails, 0 = never
	pagesStored int
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uuid.New()
	r.products = append(r.products, *p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			return &r.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) FindByCode(_ context.Context, code int64) (*model.Product, error) {
	for i := range r.products {
		if r.products[i].Code == code {
			return &r.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	return r.products, int64(len(r.products)), nil
}

func (r *stubProductRepo) ListByUserID(_ context.Context, _ uuid.UUID) ([]model.Product, error) {
	return r.products, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = *p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubProductRepo) NextCode(_ context.Context) (int64, error) {
	return int64(len(r.products)) + 1, nil
}

func (r *stubProductRepo) ListPage(_ context.Context, offset, limit int) ([]model.Product, error) {
	sorted := append([]model.Product(nil), r.products...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })
	if offset >= len(sorted) {
		return nil, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (r *stubProductRepo) UpdatePricesPage(_ context.Context, page []model.Product) error {
	r.pagesStored++
	if r.failAtPage > 0 && r.pagesStored == r.failAtPage {
		return errors.New("write failed")
	}
	for _, p := range page {
		for i := range r.products {
			if r.products[i].ID == p.ID {
				r.products[i].Prices = p.Prices
			}
		}
	}
	return nil
}

// stubDispatcher records enqueued jobs.
type stubDispatcher struct {
	recomputes int
	emails     int
}

var _ service.JobDispatcher = (*stubDispatcher)(nil)

func (d *stubDispatcher) EnqueueRecompute(_ context.Context) error {
	d.recomputes++
	return nil
}

func (d *stubDispatcher) EnqueueRemitEmail(_ context.Context, _ uuid.UUID, _ string) error {
	d.emails++
	return nil
}

// stubCache records invalidations.
type stubCache struct{ invalidations int }

var _ service.PriceCache = (*stubCache)(nil)

func (c *stubCache) InvalidateAll(_ context.Context) error {
	c.invalidations++
	return nil
}

func newPriceListService(tiers *stubPriceListRepo, products *stubProductRepo, d *stubDispatcher, c *stubCache, pageSize int) service.PriceListService {
	return service.NewPriceListService(tiers, products, d, c, pageSize, zerolog.Nop())
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateTierAssignsNextNumber(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	dispatcher := &stubDispatcher{}
	svc := newPriceListService(tiers, &stubProductRepo{}, dispatcher, &stubCache{}, 10)

	resp, err := svc.Create(context.Background(), dto.CreatePriceListRequest{Percent: dec("8")})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Number)
	assert.True(t, resp.Percent.Equal(dec("8")))
	assert.Equal(t, 1, dispatcher.recomputes, "tier change must enqueue a recompute")
}

func TestCreateTierRejectsDuplicatePercent(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	dispatcher := &stubDispatcher{}
	svc := newPriceListService(tiers, &stubProductRepo{}, dispatcher, &stubCache{}, 10)

	_, err := svc.Create(context.Background(), dto.CreatePriceListRequest{Percent: dec("5")})

	assert.ErrorIs(t, err, service.ErrDuplicateTier)
	assert.Len(t, tiers.tiers, 2)
	assert.Zero(t, dispatcher.recomputes)
}

func TestDeleteLastTierRejected(t *testing.T) {
	tiers := newStubPriceListRepo("3")
	svc := newPriceListService(tiers, &stubProductRepo{}, &stubDispatcher{}, &stubCache{}, 10)

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, service.ErrLastTier)
	assert.Len(t, tiers.tiers, 1)
}

func TestDeleteTierNotFound(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	svc := newPriceListService(tiers, &stubProductRepo{}, &stubDispatcher{}, &stubCache{}, 10)

	err := svc.Delete(context.Background(), 9)

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteTierRenumbersByAscendingPercent(t *testing.T) {
	// Numbers were assigned in creation order; percents are not sorted.
	tiers := newStubPriceListRepo("10", "5", "8")
	dispatcher := &stubDispatcher{}
	svc := newPriceListService(tiers, &stubProductRepo{}, dispatcher, &stubCache{}, 10)

	err := svc.Delete(context.Background(), 1) // removes the 10% tier
	require.NoError(t, err)

	lists, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, 1, lists[0].Number)
	assert.True(t, lists[0].Percent.Equal(dec("5")))
	assert.Equal(t, 2, lists[1].Number)
	assert.True(t, lists[1].Percent.Equal(dec("8")))
	assert.Equal(t, 1, dispatcher.recomputes)
}

func TestUpdateTierRejectsDuplicatePercent(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	svc := newPriceListService(tiers, &stubProductRepo{}, &stubDispatcher{}, &stubCache{}, 10)

	_, err := svc.Update(context.Background(), dto.UpdatePriceListRequest{Number: 1, Percent: dec("5")})

	assert.ErrorIs(t, err, service.ErrDuplicateTier)
}

func TestUpdateTierNotFound(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	svc := newPriceListService(tiers, &stubProductRepo{}, &stubDispatcher{}, &stubCache{}, 10)

	_, err := svc.Update(context.Background(), dto.UpdatePriceListRequest{Number: 7, Percent: dec("9")})

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateTierSamePercentIsIdempotent(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	dispatcher := &stubDispatcher{}
	svc := newPriceListService(tiers, &stubProductRepo{}, dispatcher, &stubCache{}, 10)

	resp, err := svc.Update(context.Background(), dto.UpdatePriceListRequest{Number: 2, Percent: dec("5")})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Number)
	assert.Equal(t, 1, dispatcher.recomputes)
}

func TestRecomputeRebuildsAllVectors(t *testing.T) {
	tiers := newStubPriceListRepo("3", "5")
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), Code: 1, Prices: model.PriceVector{dec("1000"), dec("1100")}},
		{ID: uuid.New(), Code: 2, Prices: model.PriceVector{dec("200")}},
		{ID: uuid.New(), Code: 3, Prices: model.PriceVector{dec("10.01")}},
	}}
	cache := &stubCache{}
	svc := newPriceListService(tiers, products, &stubDispatcher{}, cache, 2)

	err := svc.RecomputeAllProductPrices(context.Background())
	require.NoError(t, err)

	p1, _ := products.FindByCode(context.Background(), 1)
	require.Len(t, p1.Prices, 3)
	assert.True(t, p1.Prices[0].Equal(dec("1000")), "base price must stay untouched")
	assert.True(t, p1.Prices[1].Equal(dec("1030")))
	assert.True(t, p1.Prices[2].Equal(dec("1050")))

	p3, _ := products.FindByCode(context.Background(), 3)
	require.Len(t, p3.Prices, 3)
	assert.True(t, p3.Prices[1].Equal(dec("10.3103")), "no rounding during recompute, got %s", p3.Prices[1])

	assert.Equal(t, 2, products.pagesStored, "3 products at page size 2 = 2 pages")
	assert.Equal(t, 1, cache.invalidations)
}

func TestRecomputeAbortsButKeepsCommittedPages(t *testing.T) {
	tiers := newStubPriceListRepo("10")
	products := &stubProductRepo{
		products: []model.Product{
			{ID: uuid.New(), Code: 1, Prices: model.PriceVector{dec("100")}},
			{ID: uuid.New(), Code: 2, Prices: model.PriceVector{dec("200")}},
		},
		failAtPage: 2,
	}
	cache := &stubCache{}
	svc := newPriceListService(tiers, products, &stubDispatcher{}, cache, 1)

	err := svc.RecomputeAllProductPrices(context.Background())
	require.Error(t, err)

	p1, _ := products.FindByCode(context.Background(), 1)
	require.Len(t, p1.Prices, 2, "first page was committed before the failure")
	assert.True(t, p1.Prices[1].Equal(dec("110")))

	p2, _ := products.FindByCode(context.Background(), 2)
	assert.Len(t, p2.Prices, 1, "failed page must stay untouched")
	assert.Zero(t, cache.invalidations, "aborted runs do not invalidate the cache")
}

func TestCurrentPercentsFollowsTierNumberOrder(t *testing.T) {
	tiers := newStubPriceListRepo("10", "5", "8")
	svc := newPriceListService(tiers, &stubProductRepo{}, &stubDispatcher{}, &stubCache{}, 10)

	percents, err := svc.CurrentPercents(context.Background())

	require.NoError(t, err)
	require.Len(t, percents, 3)
	assert.True(t, percents[0].Equal(dec("10")))
	assert.True(t, percents[1].Equal(dec("5")))
	assert.True(t, percents[2].Equal(dec("8")))
}
