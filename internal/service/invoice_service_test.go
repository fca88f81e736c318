package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

func TestInvoiceCreateComputesTotals(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(newTestDB(t)))
	ctx := context.Background()

	invoice, err := svc.Create(ctx, adminPrincipal(), CreateInvoiceInput{
		ClientID: uuid.New().String(),
		Items: []model.InvoiceItem{
			{Name: "Screen", Quantity: 1, Price: 80},
			{Name: "Labor", Quantity: 2, Price: 20},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, invoice.Subtotal)
	assert.Equal(t, 24.0, invoice.Tax)
	assert.Equal(t, 144.0, invoice.Total)
	assert.Equal(t, model.InvoiceStatusPending, invoice.Status)
	assert.Regexp(t, regexp.MustCompile(`^[a-z]{3}\d{4}$`), invoice.InvoiceNumber)
}

func TestInvoiceUpdateRecomputesTotals(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(newTestDB(t)))
	ctx := context.Background()
	admin := adminPrincipal()

	invoice, err := svc.Create(ctx, admin, CreateInvoiceInput{
		ClientID: uuid.New().String(),
		Items:    []model.InvoiceItem{{Name: "Diagnostics", Quantity: 1, Price: 30}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, invoice.ID.String(), UpdateInvoiceInput{
		Items: []model.InvoiceItem{{Name: "Diagnostics", Quantity: 1, Price: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.Subtotal)
	assert.Equal(t, 60.0, updated.Total)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(newTestDB(t)))
	ctx := context.Background()
	admin := adminPrincipal()

	invoice, err := svc.Create(ctx, admin, CreateInvoiceInput{
		ClientID: uuid.New().String(),
		Items:    []model.InvoiceItem{{Name: "Part", Quantity: 1, Price: 10}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, admin, invoice.ID.String(), model.InvoiceStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(ctx, admin, invoice.ID.String(), model.InvoiceStatus("void"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInvoiceValidation(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(newTestDB(t)))
	ctx := context.Background()
	admin := adminPrincipal()

	_, err := svc.Create(ctx, admin, CreateInvoiceInput{ClientID: uuid.New().String()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, admin, CreateInvoiceInput{
		ClientID: uuid.New().String(),
		Items:    []model.InvoiceItem{{Name: "Part", Quantity: 0, Price: 10}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, technicianPrincipal(), CreateInvoiceInput{
		ClientID: uuid.New().String(),
		Items:    []model.InvoiceItem{{Name: "Part", Quantity: 1, Price: 10}},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
