package service

import (
	"context"
	"errors"
	"time"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/letras"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/pricing"
	"github.com/rafamossetto/distributor-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// Surcharge steps applied over the original total for the three payment
// reminder dates. Non-compounding.
var (
	firstSurcharge  = decimal.NewFromFloat(1.03)
	secondSurcharge = decimal.NewFromFloat(1.03)
	thirdSurcharge  = decimal.NewFromFloat(1.06)
)

type RemitService interface {
	// Build renders the print-ready remit document for a stored order.
	Build(ctx context.Context, caller Caller, orderID uuid.UUID) (*dto.RemitPresentation, error)
	// Email enqueues background delivery of the remit PDF.
	Email(ctx context.Context, caller Caller, orderID uuid.UUID, recipient string) error
}

type remitService struct {
	orders     repository.OrderRepository
	dispatcher JobDispatcher
	printer    *message.Printer
	log        zerolog.Logger
}

func NewRemitService(orders repository.OrderRepository, dispatcher JobDispatcher, log zerolog.Logger) RemitService {
	return &remitService{
		orders:     orders,
		dispatcher: dispatcher,
		printer:    message.NewPrinter(language.English),
		log:        log.With().Str("component", "remit_service").Logger(),
	}
}

// formatMoney renders a decimal with 2 fixed decimals and en-US thousands
// separators, e.g. 1234.5 -> "1,234.50".
func (s *remitService) formatMoney(d decimal.Decimal) string {
	return s.printer.Sprintf("%.2f", d.InexactFloat64())
}

func measurementLabel(measurement string) string {
	switch measurement {
	case model.MeasurementUnit:
		return "U."
	case model.MeasurementKilogram:
		return "KG."
	default:
		return measurement
	}
}

// billedAmount resolves how much of a line is billed: quantity for units,
// weight (falling back to quantity) for kilogram lines.
func billedAmount(item *model.OrderItem) decimal.Decimal {
	if item.Measurement == model.MeasurementKilogram && item.Units != nil {
		return *item.Units
	}
	return item.Quantity
}

func (s *remitService) Build(ctx context.Context, caller Caller, orderID uuid.UUID) (*dto.RemitPresentation, error) {
	order, err := s.findOwned(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RemitItem, 0, len(order.Items))
	total := decimal.Zero

	for i := range order.Items {
		item := &order.Items[i]

		// A line whose snapshot cannot resolve the selected price is
		// dropped from the printout but still counted in totalArticles.
		if order.SelectedList < 0 || order.SelectedList >= len(item.Prices) {
			s.log.Warn().
				Int64("document_number", order.DocumentNumber).
				Int64("code", item.Code).
				Int("selected_list", order.SelectedList).
				Int("prices_len", len(item.Prices)).
				Msg("dropping remit line with unresolvable price")
			continue
		}

		// Unit price is rounded before multiplying so the printed
		// unit price times the printed amount matches the line total.
		unitPrice := pricing.Round2(item.Prices[order.SelectedList])
		amount := billedAmount(item)
		lineTotal := unitPrice.Mul(amount)
		total = total.Add(lineTotal)

		discount := "-"
		if item.Discount != nil {
			discount = item.Discount.String() + " %"
		}

		items = append(items, dto.RemitItem{
			Code:        item.Code,
			Name:        item.Name,
			Measurement: measurementLabel(item.Measurement),
			Quantity:    s.formatMoney(amount),
			UnitPrice:   s.formatMoney(unitPrice),
			TotalPrice:  s.formatMoney(lineTotal),
			Discount:    discount,
		})
	}

	p := &dto.RemitPresentation{
		RemitNumber:    order.DocumentNumber,
		Client:         order.ClientName,
		ClientNumber:   order.ClientNumber,
		Address:        order.ClientAddress,
		PhoneNumber:    order.ClientPhone,
		DeliveryDate:   order.DeliveryDate,
		Date:           order.Date.UTC().Format("02/01/2006"),
		Hour:           order.Date.UTC().Format("15:04"),
		Items:          items,
		AmountInLetter: letras.NumberToWords(total),
		SubTotal:       s.formatMoney(total),
		Total:          s.formatMoney(total),
		TotalArticles:  len(order.Items),
	}

	s.applyPaymentSchedule(p, order, total)
	return p, nil
}

// applyPaymentSchedule fills the three escalating payment reminders:
// +1, +8 and +16 days after delivery at 3%, 3% and 6% over the original
// total. The surcharges never compound.
func (s *remitService) applyPaymentSchedule(p *dto.RemitPresentation, order *model.Order, total decimal.Decimal) {
	p.FirstTotal = s.formatMoney(total.Mul(firstSurcharge))
	p.SecondTotal = s.formatMoney(total.Mul(secondSurcharge))
	p.ThirdTotal = s.formatMoney(total.Mul(thirdSurcharge))

	delivery, err := time.Parse(deliveryDateLayout, order.DeliveryDate)
	if err != nil {
		s.log.Warn().
			Int64("document_number", order.DocumentNumber).
			Str("delivery_date", order.DeliveryDate).
			Msg("unparseable delivery date, omitting expiration dates")
		return
	}

	p.FirstExpirationDate = delivery.AddDate(0, 0, 1).Format(deliveryDateLayout)
	p.SecondExpirationDate = delivery.AddDate(0, 0, 8).Format(deliveryDateLayout)
	p.ThirdExpirationDate = delivery.AddDate(0, 0, 16).Format(deliveryDateLayout)
}

func (s *remitService) Email(ctx context.Context, caller Caller, orderID uuid.UUID, recipient string) error {
	// Build validates existence and ownership before anything is queued.
	if _, err := s.Build(ctx, caller, orderID); err != nil {
		return err
	}
	if s.dispatcher == nil {
		return errors.New("cola de envio de correos no disponible")
	}
	return s.dispatcher.EnqueueRemitEmail(ctx, orderID, recipient)
}

func (s *remitService) findOwned(ctx context.Context, caller Caller, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !caller.IsAdmin && order.UserID != caller.UserID {
		return nil, ErrForbidden
	}
	return order, nil
}
