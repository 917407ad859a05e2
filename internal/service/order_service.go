package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const deliveryDateLayout = "02/01/2006"

var errInvalidDeliveryDate = errors.New("fecha de entrega invalida, use formato DD/MM/YYYY")

type OrderService interface {
	Create(ctx context.Context, caller Caller, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
	ListBySelectedList(ctx context.Context, selectedList int) ([]dto.OrderResponse, error)
	Update(ctx context.Context, caller Caller, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error)
	Delete(ctx context.Context, caller Caller, id uuid.UUID) error
}

type orderService struct {
	orders  repository.OrderRepository
	clients repository.ClientRepository
	log     zerolog.Logger
}

func NewOrderService(orders repository.OrderRepository, clients repository.ClientRepository, log zerolog.Logger) OrderService {
	return &orderService{
		orders:  orders,
		clients: clients,
		log:     log.With().Str("component", "order_service").Logger(),
	}
}

// validateSelectedList checks that the index is valid for every line's
// price vector, so the remit can always resolve a unit price.
func validateSelectedList(selectedList int, items []dto.OrderItemRequest) error {
	for _, item := range items {
		if selectedList < 0 || selectedList >= len(item.Prices) {
			return ErrInvalidSelectedList
		}
	}
	return nil
}

func (s *orderService) Create(ctx context.Context, caller Caller, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if _, err := time.Parse(deliveryDateLayout, req.DeliveryDate); err != nil {
		return nil, errInvalidDeliveryDate
	}
	if err := validateSelectedList(req.SelectedList, req.Products); err != nil {
		return nil, err
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, ErrNotFound
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	order := &model.Order{
		ClientID:      client.ID,
		ClientName:    client.Name,
		ClientNumber:  client.Number,
		ClientAddress: client.Address,
		ClientPhone:   client.Phone,
		DeliveryDate:  req.DeliveryDate,
		SelectedList:  req.SelectedList,
		UserID:        caller.UserID,
		Date:          time.Now().UTC(),
		Items:         toOrderItems(req.Products),
	}

	err = s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		number, err := s.orders.NextDocumentNumber(ctx, tx)
		if err != nil {
			return err
		}
		order.DocumentNumber = number
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("document_number", order.DocumentNumber).
		Str("client", order.ClientName).
		Int("lines", len(order.Items)).
		Msg("order created")

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		data[i] = toOrderResponse(&orders[i])
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	return &dto.OrderListResponse{
		Data:       data,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out, nil
}

func (s *orderService) ListBySelectedList(ctx context.Context, selectedList int) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListBySelectedList(ctx, selectedList)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out, nil
}

func (s *orderService) Update(ctx context.Context, caller Caller, id uuid.UUID, req dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.findOwned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.DeliveryDate != nil {
		if _, err := time.Parse(deliveryDateLayout, *req.DeliveryDate); err != nil {
			return nil, errInvalidDeliveryDate
		}
		order.DeliveryDate = *req.DeliveryDate
	}
	if req.SelectedList != nil {
		order.SelectedList = *req.SelectedList
	}

	newItems := req.Products
	if newItems != nil {
		if err := validateSelectedList(order.SelectedList, newItems); err != nil {
			return nil, err
		}
	} else if req.SelectedList != nil {
		// Selected list changed without new lines: revalidate the stored ones.
		for _, item := range order.Items {
			if order.SelectedList < 0 || order.SelectedList >= len(item.Prices) {
				return nil, ErrInvalidSelectedList
			}
		}
	}

	err = s.orders.Transaction(ctx, func(tx *gorm.DB) error {
		if newItems != nil {
			order.Items = toOrderItems(newItems)
			if err := s.orders.ReplaceItemsTx(tx, order.ID, order.Items); err != nil {
				return err
			}
		}
		return s.orders.UpdateFieldsTx(tx, order.ID, order.DeliveryDate, order.SelectedList)
	})
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

func (s *orderService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, caller, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

func (s *orderService) findOwned(ctx context.Context, caller Caller, id uuid.UUID) (*model.Order, error) {
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

func toOrderItems(reqs []dto.OrderItemRequest) []model.OrderItem {
	items := make([]model.OrderItem, len(reqs))
	for i, r := range reqs {
		items[i] = model.OrderItem{
			Code:        r.Code,
			Name:        r.Name,
			Measurement: r.Measurement,
			Quantity:    r.Quantity,
			Units:       r.Units,
			Discount:    r.Discount,
			Prices:      r.Prices,
		}
	}
	return items
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = dto.OrderItemResponse{
			Code:        it.Code,
			Name:        it.Name,
			Measurement: it.Measurement,
			Quantity:    it.Quantity,
			Units:       it.Units,
			Discount:    it.Discount,
			Prices:      it.Prices,
		}
	}
	return dto.OrderResponse{
		ID:             o.ID.String(),
		DocumentNumber: o.DocumentNumber,
		ClientID:       o.ClientID.String(),
		ClientName:     o.ClientName,
		ClientNumber:   o.ClientNumber,
		ClientAddress:  o.ClientAddress,
		ClientPhone:    o.ClientPhone,
		DeliveryDate:   o.DeliveryDate,
		SelectedList:   o.SelectedList,
		Date:           o.Date,
		Products:       items,
	}
}
