package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/repository"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubOrderRepo is an in-memory OrderRepository. Transactions run the
// callback directly; the Tx methods ignore the tx handle.
type stubOrderRepo struct {
	orders      map[uuid.UUID]*model.Order
	documentSeq int64
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListBySelectedList(_ context.Context, selectedList int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.SelectedList == selectedList {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) NextDocumentNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.documentSeq++
	return r.documentSeq, nil
}

func (r *stubOrderRepo) ReplaceItemsTx(_ *gorm.DB, orderID uuid.UUID, items []model.OrderItem) error {
	o, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Items = items
	return nil
}

func (r *stubOrderRepo) UpdateFieldsTx(_ *gorm.DB, orderID uuid.UUID, deliveryDate string, selectedList int) error {
	o, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.DeliveryDate = deliveryDate
	o.SelectedList = selectedList
	return nil
}

// stubClientRepo is an in-memory ClientRepository.
type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

func newStubClientRepo(clients ...*model.Client) *stubClientRepo {
	r := &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *stubClientRepo) NextNumber(_ context.Context) (int64, error) {
	return int64(len(r.clients)) + 1, nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

func lineReq(prices ...string) dto.OrderItemRequest {
	req := dto.OrderItemRequest{
		Code:        1,
		Name:        "QUESO CREMOSO",
		Measurement: model.MeasurementKilogram,
		Quantity:    dec("2"),
	}
	for _, p := range prices {
		req.Prices = append(req.Prices, dec(p))
	}
	return req
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateOrderSnapshotsClientAndNumbers(t *testing.T) {
	client := &model.Client{
		ID: uuid.New(), Number: 7, Name: "Almacen Don Pedro",
		Address: "Av. San Martin 1200", Phone: "351-5550000",
	}
	orders := newStubOrderRepo()
	svc := service.NewOrderService(orders, newStubClientRepo(client), zerolog.Nop())
	caller := service.Caller{UserID: uuid.New()}

	resp, err := svc.Create(context.Background(), caller, dto.CreateOrderRequest{
		ClientID:     client.ID.String(),
		DeliveryDate: "15/03/2024",
		SelectedList: 1,
		Products:     []dto.OrderItemRequest{lineReq("100", "103")},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.DocumentNumber)
	assert.Equal(t, "Almacen Don Pedro", resp.ClientName)
	assert.Equal(t, int64(7), resp.ClientNumber)
	assert.Equal(t, "Av. San Martin 1200", resp.ClientAddress)
	assert.Equal(t, "15/03/2024", resp.DeliveryDate)
	require.Len(t, resp.Products, 1)
	assert.WithinDuration(t, time.Now().UTC(), resp.Date, 5*time.Second)

	// Second order draws the next document number.
	resp2, err := svc.Create(context.Background(), caller, dto.CreateOrderRequest{
		ClientID:     client.ID.String(),
		DeliveryDate: "16/03/2024",
		SelectedList: 0,
		Products:     []dto.OrderItemRequest{lineReq("100")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp2.DocumentNumber)
}

func TestCreateOrderRejectsBadDeliveryDate(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "X"}
	svc := service.NewOrderService(newStubOrderRepo(), newStubClientRepo(client), zerolog.Nop())

	_, err := svc.Create(context.Background(), service.Caller{UserID: uuid.New()}, dto.CreateOrderRequest{
		ClientID:     client.ID.String(),
		DeliveryDate: "2024-03-15",
		SelectedList: 0,
		Products:     []dto.OrderItemRequest{lineReq("100")},
	})

	assert.Error(t, err)
}

func TestCreateOrderRejectsInvalidSelectedList(t *testing.T) {
	client := &model.Client{ID: uuid.New(), Name: "X"}
	svc := service.NewOrderService(newStubOrderRepo(), newStubClientRepo(client), zerolog.Nop())

	// Second line only has one price, so index 1 cannot resolve.
	_, err := svc.Create(context.Background(), service.Caller{UserID: uuid.New()}, dto.CreateOrderRequest{
		ClientID:     client.ID.String(),
		DeliveryDate: "15/03/2024",
		SelectedList: 1,
		Products:     []dto.OrderItemRequest{lineReq("100", "103"), lineReq("50")},
	})

	assert.ErrorIs(t, err, service.ErrInvalidSelectedList)
}

func TestCreateOrderUnknownClient(t *testing.T) {
	svc := service.NewOrderService(newStubOrderRepo(), newStubClientRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), service.Caller{UserID: uuid.New()}, dto.CreateOrderRequest{
		ClientID:     uuid.New().String(),
		DeliveryDate: "15/03/2024",
		SelectedList: 0,
		Products:     []dto.OrderItemRequest{lineReq("100")},
	})

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, UserID: owner}
	svc := service.NewOrderService(orders, newStubClientRepo(), zerolog.Nop())

	_, err := svc.Get(context.Background(), service.Caller{UserID: uuid.New()}, orderID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.Get(context.Background(), service.Caller{UserID: owner}, orderID)
	assert.NoError(t, err)

	// Admins can read any order.
	_, err = svc.Get(context.Background(), service.Caller{UserID: uuid.New(), IsAdmin: true}, orderID)
	assert.NoError(t, err)
}

func TestUpdateOrderRevalidatesSelectedListAgainstStoredLines(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{
		ID: orderID, UserID: owner, DeliveryDate: "15/03/2024", SelectedList: 0,
		Items: []model.OrderItem{{Code: 1, Quantity: dec("1"), Prices: model.PriceVector{dec("100")}}},
	}
	svc := service.NewOrderService(orders, newStubClientRepo(), zerolog.Nop())

	two := 2
	_, err := svc.Update(context.Background(), service.Caller{UserID: owner}, orderID, dto.UpdateOrderRequest{
		SelectedList: &two,
	})

	assert.ErrorIs(t, err, service.ErrInvalidSelectedList)
}

func TestListPaginationMath(t *testing.T) {
	orders := newStubOrderRepo()
	for i := 0; i < 25; i++ {
		id := uuid.New()
		orders.orders[id] = &model.Order{ID: id, UserID: uuid.New()}
	}
	svc := service.NewOrderService(orders, newStubClientRepo(), zerolog.Nop())

	resp, err := svc.List(context.Background(), dto.OrderFilter{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
}
