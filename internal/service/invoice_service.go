package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"repairshop-service/internal/billing"
	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo *repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
	}
}

type CreateInvoiceInput struct {
	ClientID string
	Date     *time.Time
	Items    []model.InvoiceItem
}

// Create recomputes subtotal, tax and total from the items; the caller
// never supplies money totals directly.
func (s *InvoiceService) Create(ctx context.Context, principal model.Principal, input CreateInvoiceInput) (*model.Invoice, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	clientID, err := uuid.Parse(input.ClientID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if len(input.Items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			return nil, ErrInvalidInput
		}
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	totals := billing.Compute(billing.InvoiceSubtotal(input.Items))

	invoice := &model.Invoice{
		InvoiceNumber: generateDisplayNumber(time.Now()),
		Date:          date,
		ClientID:      clientID,
		Items:         input.Items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Status:        model.InvoiceStatusPending,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *InvoiceService) Get(ctx context.Context, principal model.Principal, id string) (*model.Invoice, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) List(ctx context.Context, principal model.Principal, filter repository.InvoiceListFilter) ([]model.Invoice, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.invoiceRepo.List(ctx, filter)
}

type UpdateInvoiceInput struct {
	Date   *time.Time
	Items  []model.InvoiceItem
	Status *model.InvoiceStatus
}

func (s *InvoiceService) Update(ctx context.Context, principal model.Principal, id string, input UpdateInvoiceInput) (*model.Invoice, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Date != nil {
		invoice.Date = *input.Date
	}
	if input.Items != nil {
		for _, item := range input.Items {
			if item.Quantity <= 0 || item.Price < 0 {
				return nil, ErrInvalidInput
			}
		}
		invoice.Items = input.Items
		totals := billing.Compute(billing.InvoiceSubtotal(input.Items))
		invoice.Subtotal = totals.Subtotal
		invoice.Tax = totals.Tax
		invoice.Total = totals.Total
	}
	if input.Status != nil {
		if !validInvoiceStatus(*input.Status) {
			return nil, ErrInvalidInput
		}
		invoice.Status = *input.Status
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *InvoiceService) UpdateStatus(ctx context.Context, principal model.Principal, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	return s.Update(ctx, principal, id, UpdateInvoiceInput{Status: &status})
}

func (s *InvoiceService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsSuperAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.invoiceRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.invoiceRepo.Delete(ctx, id)
}

func validInvoiceStatus(status model.InvoiceStatus) bool {
	switch status {
	case model.InvoiceStatusPending, model.InvoiceStatusCompleted, model.InvoiceStatusCancelled:
		return true
	}
	return false
}
