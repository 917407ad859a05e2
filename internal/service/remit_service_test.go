package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func seedOrder(orders *stubOrderRepo, o *model.Order) uuid.UUID {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	orders.orders[o.ID] = o
	return o.ID
}

func TestBuildRemitRoundsUnitPriceBeforeMultiplying(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{
		DocumentNumber: 42,
		UserID:         owner,
		ClientName:     "Almacen Don Pedro",
		ClientNumber:   7,
		DeliveryDate:   "15/03/2024",
		SelectedList:   1,
		Date:           time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{
				Code: 1, Name: "QUESO CREMOSO", Measurement: model.MeasurementKilogram,
				Quantity: dec("1"), Units: decPtr("2.5"),
				Prices: model.PriceVector{dec("100"), dec("103")},
			},
			{
				Code: 2, Name: "YERBA", Measurement: model.MeasurementUnit,
				Quantity: dec("2"),
				Prices:   model.PriceVector{dec("100"), dec("103.456")},
			},
		},
	})
	svc := service.NewRemitService(orders, &stubDispatcher{}, zerolog.Nop())

	remit, err := svc.Build(context.Background(), service.Caller{UserID: owner}, orderID)
	require.NoError(t, err)

	assert.Equal(t, int64(42), remit.RemitNumber)
	require.Len(t, remit.Items, 2)

	// Kilogram lines bill by weight (units), not by package count.
	kg := remit.Items[0]
	assert.Equal(t, "KG.", kg.Measurement)
	assert.Equal(t, "2.50", kg.Quantity)
	assert.Equal(t, "103.00", kg.UnitPrice)
	assert.Equal(t, "257.50", kg.TotalPrice)
	assert.Equal(t, "-", kg.Discount)

	// The unit price is rounded first: 103.46 * 2 = 206.92, not
	// round(103.456 * 2) = 206.91.
	un := remit.Items[1]
	assert.Equal(t, "U.", un.Measurement)
	assert.Equal(t, "103.46", un.UnitPrice)
	assert.Equal(t, "206.92", un.TotalPrice)

	assert.Equal(t, "464.42", remit.Total)
	assert.Equal(t, remit.Total, remit.SubTotal)
	assert.Equal(t, "05/03/2024", remit.Date)
	assert.Equal(t, "14:30", remit.Hour)
}

func TestBuildRemitPaymentScheduleDoesNotCompound(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{
		DocumentNumber: 1,
		UserID:         owner,
		DeliveryDate:   "01/01/2024",
		SelectedList:   0,
		Date:           time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{
				Code: 1, Name: "HARINA", Measurement: model.MeasurementUnit,
				Quantity: dec("10"),
				Prices:   model.PriceVector{dec("100")},
			},
		},
	})
	svc := service.NewRemitService(orders, &stubDispatcher{}, zerolog.Nop())

	remit, err := svc.Build(context.Background(), service.Caller{UserID: owner}, orderID)
	require.NoError(t, err)

	assert.Equal(t, "1,000.00", remit.Total)
	assert.Equal(t, "UN MIL PESOS", remit.AmountInLetter)

	assert.Equal(t, "02/01/2024", remit.FirstExpirationDate)
	assert.Equal(t, "09/01/2024", remit.SecondExpirationDate)
	assert.Equal(t, "17/01/2024", remit.ThirdExpirationDate)

	// All three surcharges apply to the original total.
	assert.Equal(t, "1,030.00", remit.FirstTotal)
	assert.Equal(t, "1,030.00", remit.SecondTotal)
	assert.Equal(t, "1,060.00", remit.ThirdTotal)
}

func TestBuildRemitDropsLinesWithUnresolvablePrice(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{
		DocumentNumber: 2,
		UserID:         owner,
		DeliveryDate:   "01/02/2024",
		SelectedList:   1,
		Date:           time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{
				Code: 1, Name: "ACEITE", Measurement: model.MeasurementUnit,
				Quantity: dec("1"), Discount: decPtr("5"),
				Prices: model.PriceVector{dec("100"), dec("110")},
			},
			{
				// Snapshot predates the selected tier: only the base price.
				Code: 2, Name: "AZUCAR", Measurement: model.MeasurementUnit,
				Quantity: dec("3"),
				Prices:   model.PriceVector{dec("50")},
			},
		},
	})
	svc := service.NewRemitService(orders, &stubDispatcher{}, zerolog.Nop())

	remit, err := svc.Build(context.Background(), service.Caller{UserID: owner}, orderID)
	require.NoError(t, err)

	require.Len(t, remit.Items, 1, "the unresolvable line is dropped from the printout")
	assert.Equal(t, int64(1), remit.Items[0].Code)
	assert.Equal(t, "5 %", remit.Items[0].Discount)
	assert.Equal(t, 2, remit.TotalArticles, "dropped lines still count as articles")
	assert.Equal(t, "110.00", remit.Total)
}

func TestBuildRemitUnparseableDeliveryDateOmitsExpirations(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{
		DocumentNumber: 3,
		UserID:         owner,
		DeliveryDate:   "pronto",
		SelectedList:   0,
		Date:           time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{Code: 1, Name: "PAN", Measurement: model.MeasurementUnit, Quantity: dec("1"), Prices: model.PriceVector{dec("100")}},
		},
	})
	svc := service.NewRemitService(orders, &stubDispatcher{}, zerolog.Nop())

	remit, err := svc.Build(context.Background(), service.Caller{UserID: owner}, orderID)
	require.NoError(t, err)

	assert.Empty(t, remit.FirstExpirationDate)
	assert.Empty(t, remit.SecondExpirationDate)
	assert.Empty(t, remit.ThirdExpirationDate)
	// The surcharge totals do not depend on the date.
	assert.Equal(t, "103.00", remit.FirstTotal)
	assert.Equal(t, "106.00", remit.ThirdTotal)
}

func TestBuildRemitFormatsQuantitiesLikeMoney(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{
		DocumentNumber: 6,
		UserID:         owner,
		DeliveryDate:   "01/04/2024",
		SelectedList:   0,
		Date:           time.Date(2024, 3, 20, 11, 0, 0, 0, time.UTC),
		Items: []model.OrderItem{
			{
				Code: 1, Name: "LEVADURA", Measurement: model.MeasurementUnit,
				Quantity: dec("1250"),
				Prices:   model.PriceVector{dec("2")},
			},
		},
	})
	svc := service.NewRemitService(orders, &stubDispatcher{}, zerolog.Nop())

	remit, err := svc.Build(context.Background(), service.Caller{UserID: owner}, orderID)
	require.NoError(t, err)

	// Quantities print like every other numeric field: two decimals and
	// en-US thousands separators.
	require.Len(t, remit.Items, 1)
	assert.Equal(t, "1,250.00", remit.Items[0].Quantity)
	assert.Equal(t, "2,500.00", remit.Items[0].TotalPrice)
}

func TestBuildRemitEnforcesOwnership(t *testing.T) {
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{DocumentNumber: 4, UserID: uuid.New()})
	svc := service.NewRemitService(orders, &stubDispatcher{}, zerolog.Nop())

	_, err := svc.Build(context.Background(), service.Caller{UserID: uuid.New()}, orderID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.Build(context.Background(), service.Caller{UserID: uuid.New(), IsAdmin: true}, orderID)
	assert.NoError(t, err)

	_, err = svc.Build(context.Background(), service.Caller{UserID: uuid.New()}, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestEmailRemitEnqueuesJob(t *testing.T) {
	owner := uuid.New()
	orders := newStubOrderRepo()
	orderID := seedOrder(orders, &model.Order{
		DocumentNumber: 5,
		UserID:         owner,
		DeliveryDate:   "01/03/2024",
		Date:           time.Now().UTC(),
		Items: []model.OrderItem{
			{Code: 1, Name: "PAN", Measurement: model.MeasurementUnit, Quantity: dec("1"), Prices: model.PriceVector{dec("10")}},
		},
	})
	dispatcher := &stubDispatcher{}
	svc := service.NewRemitService(orders, dispatcher, zerolog.Nop())

	err := svc.Email(context.Background(), service.Caller{UserID: owner}, orderID, "cliente@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, dispatcher.emails)

	err = svc.Email(context.Background(), service.Caller{UserID: uuid.New()}, orderID, "otro@example.com")
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Equal(t, 1, dispatcher.emails)
}
