package service

import (
	"context"
	"errors"

	"github.com/rafamossetto/distributor-api/internal/dto"
	"github.com/rafamossetto/distributor-api/internal/model"
	"github.com/rafamossetto/distributor-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ClientService interface {
	Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	List(ctx context.Context) ([]dto.ClientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	clients repository.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients repository.ClientRepository, log zerolog.Logger) ClientService {
	return &clientService{
		clients: clients,
		log:     log.With().Str("component", "client_service").Logger(),
	}
}

func (s *clientService) Create(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	number, err := s.clients.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	client := &model.Client{
		Number:         number,
		Name:           req.Name,
		Type:           req.Type,
		Address:        req.Address,
		Phone:          req.Phone,
		CurrentAccount: req.CurrentAccount,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	s.log.Info().Int64("number", client.Number).Str("name", client.Name).Msg("client created")
	resp := toClientResponse(client)
	return &resp, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	resp := toClientResponse(client)
	return &resp, nil
}

func (s *clientService) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		out[i] = toClientResponse(&clients[i])
	}
	return out, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Type != nil {
		client.Type = *req.Type
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.CurrentAccount != nil {
		client.CurrentAccount = req.CurrentAccount
	}

	if err := s.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	return &resp, nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.clients.Delete(ctx, id)
}

func toClientResponse(c *model.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:             c.ID.String(),
		Number:         c.Number,
		Name:           c.Name,
		Type:           c.Type,
		Address:        c.Address,
		Phone:          c.Phone,
		CurrentAccount: c.CurrentAccount,
	}
}
