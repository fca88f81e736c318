package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"repairshop-service/internal/billing"
	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

type TicketService struct {
	ticketRepo *repository.TicketRepository
}

func NewTicketService(ticketRepo *repository.TicketRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
	}
}

// generateDisplayNumber produces the human-readable number stamped on
// tickets and invoices: lowercase month abbreviation plus a random
// four-digit integer. It is not a uniqueness key; collisions within a
// month are tolerated and the database id stays authoritative.
func generateDisplayNumber(now time.Time) string {
	month := strings.ToLower(now.Format("Jan"))
	return fmt.Sprintf("%s%d", month, 1000+rand.Intn(9000))
}

type CreateTicketInput struct {
	ClientID     string
	DeviceType   string
	Brand        string
	Model        string
	Tasks        []string
	TaskPrices   []model.TaskPrice
	Issue        string
	Cost         float64
	TechnicianID string
	Passcode     string
}

func (s *TicketService) Create(ctx context.Context, principal model.Principal, input CreateTicketInput) (*model.Ticket, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	clientID, err := uuid.Parse(input.ClientID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if input.DeviceType == "" || input.Brand == "" || len(input.Tasks) == 0 {
		return nil, ErrInvalidInput
	}

	var technicianID *uuid.UUID
	if input.TechnicianID != "" {
		id, err := uuid.Parse(input.TechnicianID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		technicianID = &id
	}

	ticket := &model.Ticket{
		TicketNumber: generateDisplayNumber(time.Now()),
		ClientID:     clientID,
		DeviceType:   input.DeviceType,
		Brand:        input.Brand,
		Model:        input.Model,
		Tasks:        input.Tasks,
		TaskPrices:   input.TaskPrices,
		Issue:        input.Issue,
		Status:       model.TicketStatusPending,
		Cost:         billing.TicketCost(input.TaskPrices, input.Cost),
		TechnicianID: technicianID,
		Passcode:     input.Passcode,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, principal model.Principal, id string) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.canAccessTicket(principal, ticket) {
		return nil, ErrPermissionDenied
	}

	return ticket, nil
}

// List is role-scoped: technicians only ever receive tickets assigned
// to them, regardless of the filter they pass.
func (s *TicketService) List(ctx context.Context, principal model.Principal, filter repository.TicketListFilter) ([]model.Ticket, error) {
	if principal.IsTechnician() {
		technicianID := principal.UserID.String()
		filter.TechnicianID = &technicianID
	} else if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	return s.ticketRepo.List(ctx, filter)
}

type UpdateTicketInput struct {
	DeviceType *string
	Brand      *string
	Model      *string
	Tasks      []string
	TaskPrices []model.TaskPrice
	Issue      *string
	Status     *model.TicketStatus
	Cost       *float64
	Passcode   *string
}

// Update merges partial fields into the stored ticket. Technicians may
// only move the status of their own tickets; everything else is
// super-admin territory. Cost is recomputed from task prices whenever
// they are present, the caller-supplied value is not trusted.
func (s *TicketService) Update(ctx context.Context, principal model.Principal, id string, input UpdateTicketInput) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if principal.IsTechnician() {
		if !s.canAccessTicket(principal, ticket) {
			return nil, ErrPermissionDenied
		}
		if input.Status == nil {
			return nil, ErrPermissionDenied
		}
		if !validTicketStatus(*input.Status) {
			return nil, ErrInvalidInput
		}
		ticket.Status = *input.Status
		if err := s.ticketRepo.Update(ctx, ticket); err != nil {
			return nil, err
		}
		return ticket, nil
	}

	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	if input.DeviceType != nil {
		ticket.DeviceType = *input.DeviceType
	}
	if input.Brand != nil {
		ticket.Brand = *input.Brand
	}
	if input.Model != nil {
		ticket.Model = *input.Model
	}
	if input.Tasks != nil {
		ticket.Tasks = input.Tasks
	}
	if input.TaskPrices != nil {
		ticket.TaskPrices = input.TaskPrices
	}
	if input.Issue != nil {
		ticket.Issue = *input.Issue
	}
	if input.Status != nil {
		if !validTicketStatus(*input.Status) {
			return nil, ErrInvalidInput
		}
		ticket.Status = *input.Status
	}
	if input.Cost != nil {
		ticket.Cost = *input.Cost
	}
	if input.Passcode != nil {
		ticket.Passcode = *input.Passcode
	}

	ticket.Cost = billing.TicketCost(ticket.TaskPrices, ticket.Cost)

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

// Assign sets or clears the ticket's technician.
func (s *TicketService) Assign(ctx context.Context, principal model.Principal, id, technicianID string) (*model.Ticket, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if technicianID == "" {
		ticket.TechnicianID = nil
	} else {
		parsed, err := uuid.Parse(technicianID)
		if err != nil {
			return nil, ErrInvalidInput
		}
		ticket.TechnicianID = &parsed
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (s *TicketService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsSuperAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.ticketRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.ticketRepo.Delete(ctx, id)
}

func (s *TicketService) canAccessTicket(principal model.Principal, ticket *model.Ticket) bool {
	if principal.IsSuperAdmin() {
		return true
	}
	if principal.IsTechnician() {
		return ticket.TechnicianID != nil && *ticket.TechnicianID == principal.UserID
	}
	return false
}

func validTicketStatus(status model.TicketStatus) bool {
	switch status {
	case model.TicketStatusPending, model.TicketStatusInProgress, model.TicketStatusCompleted:
		return true
	}
	return false
}
