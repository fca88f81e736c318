package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

func newSettingsService(t *testing.T) (*SettingsService, *TicketService) {
	db := newTestDB(t)
	return NewSettingsService(repository.NewSettingsRepository(db)),
		NewTicketService(repository.NewTicketRepository(db))
}

func TestSettingsReadableByBothRoles(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	require.NoError(t, svc.AddDeviceType(ctx, admin, "laptop"))
	require.NoError(t, svc.AddTask(ctx, admin, "diagnostics"))

	settings, err := svc.Get(ctx, technicianPrincipal())
	require.NoError(t, err)
	assert.Equal(t, []string{"laptop"}, settings.DeviceTypes)
	assert.Equal(t, []string{"diagnostics"}, settings.Tasks)

	_, err = svc.Get(ctx, model.Principal{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSettingsMutationRequiresSuperAdmin(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()

	err := svc.AddBrand(ctx, technicianPrincipal(), "Apple")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSettingsDuplicateNameConflicts(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	require.NoError(t, svc.AddBrand(ctx, admin, "Apple"))
	assert.ErrorIs(t, svc.AddBrand(ctx, admin, "Apple"), ErrConflict)
}

func TestBrandRenameCascadesToModels(t *testing.T) {
	svc, tickets := newSettingsService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	require.NoError(t, svc.AddBrand(ctx, admin, "Samsung"))
	_, err := svc.AddModel(ctx, admin, "Galaxy S21", "Samsung")
	require.NoError(t, err)
	_, err = svc.AddModel(ctx, admin, "Galaxy Tab", "Samsung")
	require.NoError(t, err)

	ticket, err := tickets.Create(ctx, admin, CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "phone",
		Brand:      "Samsung",
		Tasks:      []string{"diagnostics"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.RenameBrand(ctx, admin, "Samsung", "Samsung Electronics"))

	settings, err := svc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"Samsung Electronics"}, settings.Brands)
	for _, m := range settings.Models {
		assert.Equal(t, "Samsung Electronics", m.BrandID)
	}

	// Tickets are a historical snapshot: the old brand string stays.
	kept, err := tickets.Get(ctx, admin, ticket.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Samsung", kept.Brand)
}

func TestBrandDeleteRemovesModels(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	require.NoError(t, svc.AddBrand(ctx, admin, "LG"))
	_, err := svc.AddModel(ctx, admin, "G8", "LG")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveBrand(ctx, admin, "LG"))

	settings, err := svc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, settings.Brands)
	assert.Empty(t, settings.Models)
}

func TestTaskRename(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	require.NoError(t, svc.AddTask(ctx, admin, "battery swap"))
	require.NoError(t, svc.RenameTask(ctx, admin, "battery swap", "battery replacement"))

	settings, err := svc.Get(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"battery replacement"}, settings.Tasks)
}

func TestSettingsRejectsBlankNames(t *testing.T) {
	svc, _ := newSettingsService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	assert.ErrorIs(t, svc.AddDeviceType(ctx, admin, "   "), ErrInvalidInput)
	assert.ErrorIs(t, svc.AddTask(ctx, admin, ""), ErrInvalidInput)
}
