package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

type ClientService struct {
	clientRepo *repository.ClientRepository
}

func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

type CreateClientInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func (s *ClientService) Create(ctx context.Context, principal model.Principal, input CreateClientInput) (*model.Client, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	if input.Name == "" || input.Phone == "" {
		return nil, ErrInvalidInput
	}

	client := &model.Client{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) Get(ctx context.Context, principal model.Principal, id string) (*model.Client, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context, principal model.Principal) ([]model.Client, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.clientRepo.List(ctx)
}

type UpdateClientInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

func (s *ClientService) Update(ctx context.Context, principal model.Principal, id string, input UpdateClientInput) (*model.Client, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Address != nil {
		client.Address = *input.Address
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes the client only. Tickets, orders and invoices that
// reference it keep their client_id as a dangling soft reference.
func (s *ClientService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsSuperAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.clientRepo.Delete(ctx, id)
}
