package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

func adminPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Email: "admin@example.com", Role: model.RoleSuperAdmin}
}

func technicianPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), Email: "tech@example.com", Role: model.RoleTechnician}
}

func TestGenerateDisplayNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]{3}\d{4}$`)

	seen := make(map[string]struct{})
	collisions := 0
	for i := 0; i < 10000; i++ {
		number := generateDisplayNumber(time.Now())
		require.Regexp(t, pattern, number)
		if _, ok := seen[number]; ok {
			collisions++
		}
		seen[number] = struct{}{}
	}
	// The number is a display label, not a key: collisions are expected
	// (9000 possible values) and allowed.
	t.Logf("display number collisions in 10000 draws: %d", collisions)

	assert.Regexp(t, `^mar`, generateDisplayNumber(time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)))
	assert.Regexp(t, `^dec`, generateDisplayNumber(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestTicketCreateComputesCostFromTaskPrices(t *testing.T) {
	svc := NewTicketService(repository.NewTicketRepository(newTestDB(t)))
	ctx := context.Background()

	ticket, err := svc.Create(ctx, adminPrincipal(), CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "laptop",
		Brand:      "Lenovo",
		Tasks:      []string{"screen replacement", "battery swap"},
		TaskPrices: []model.TaskPrice{
			{Name: "screen replacement", Price: 80},
			{Name: "battery swap", Price: 40},
		},
		Cost: 999, // ignored when task prices are present
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, ticket.Cost)
	assert.Equal(t, model.TicketStatusPending, ticket.Status)
	assert.NotEmpty(t, ticket.TicketNumber)
}

func TestTicketCreateFallbackCost(t *testing.T) {
	svc := NewTicketService(repository.NewTicketRepository(newTestDB(t)))

	ticket, err := svc.Create(context.Background(), adminPrincipal(), CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "phone",
		Brand:      "Apple",
		Tasks:      []string{"diagnostics"},
		Cost:       35,
	})
	require.NoError(t, err)
	assert.Equal(t, 35.0, ticket.Cost)
}

func TestTicketCreateRequiresSuperAdmin(t *testing.T) {
	svc := NewTicketService(repository.NewTicketRepository(newTestDB(t)))

	_, err := svc.Create(context.Background(), technicianPrincipal(), CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "phone",
		Brand:      "Apple",
		Tasks:      []string{"diagnostics"},
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestTicketListScopedToTechnician(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(repository.NewTicketRepository(db))
	ctx := context.Background()
	admin := adminPrincipal()
	tech := technicianPrincipal()

	mine, err := svc.Create(ctx, admin, CreateTicketInput{
		ClientID:     uuid.New().String(),
		DeviceType:   "laptop",
		Brand:        "Dell",
		Tasks:        []string{"cleaning"},
		TechnicianID: tech.UserID.String(),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "tablet",
		Brand:      "Samsung",
		Tasks:      []string{"cleaning"},
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, admin, repository.TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Technicians only ever see their own assignments, even with an
	// empty filter.
	scoped, err := svc.List(ctx, tech, repository.TicketListFilter{})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].ID)
}

func TestTicketUpdateTechnicianStatusOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewTicketService(repository.NewTicketRepository(db))
	ctx := context.Background()
	admin := adminPrincipal()
	tech := technicianPrincipal()

	ticket, err := svc.Create(ctx, admin, CreateTicketInput{
		ClientID:     uuid.New().String(),
		DeviceType:   "laptop",
		Brand:        "HP",
		Tasks:        []string{"reinstall"},
		TechnicianID: tech.UserID.String(),
	})
	require.NoError(t, err)

	status := model.TicketStatusInProgress
	updated, err := svc.Update(ctx, tech, ticket.ID.String(), UpdateTicketInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusInProgress, updated.Status)

	// Anything beyond status is off limits for technicians.
	brand := "Acer"
	_, err = svc.Update(ctx, tech, ticket.ID.String(), UpdateTicketInput{Brand: &brand})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// A foreign ticket is invisible even for a status change.
	other := technicianPrincipal()
	_, err = svc.Update(ctx, other, ticket.ID.String(), UpdateTicketInput{Status: &status})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestTicketUpdateRecomputesCost(t *testing.T) {
	svc := NewTicketService(repository.NewTicketRepository(newTestDB(t)))
	ctx := context.Background()
	admin := adminPrincipal()

	ticket, err := svc.Create(ctx, admin, CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "laptop",
		Brand:      "HP",
		Tasks:      []string{"reinstall"},
		Cost:       50,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, ticket.ID.String(), UpdateTicketInput{
		TaskPrices: []model.TaskPrice{
			{Name: "reinstall", Price: 60},
			{Name: "data recovery", Price: 90},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Cost)
}

func TestTicketAssignAndClear(t *testing.T) {
	svc := NewTicketService(repository.NewTicketRepository(newTestDB(t)))
	ctx := context.Background()
	admin := adminPrincipal()

	ticket, err := svc.Create(ctx, admin, CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "phone",
		Brand:      "Xiaomi",
		Tasks:      []string{"screen replacement"},
	})
	require.NoError(t, err)
	require.Nil(t, ticket.TechnicianID)

	techID := uuid.New()
	assigned, err := svc.Assign(ctx, admin, ticket.ID.String(), techID.String())
	require.NoError(t, err)
	require.NotNil(t, assigned.TechnicianID)
	assert.Equal(t, techID, *assigned.TechnicianID)

	cleared, err := svc.Assign(ctx, admin, ticket.ID.String(), "")
	require.NoError(t, err)
	assert.Nil(t, cleared.TechnicianID)
}

func TestTicketDelete(t *testing.T) {
	svc := NewTicketService(repository.NewTicketRepository(newTestDB(t)))
	ctx := context.Background()
	admin := adminPrincipal()

	ticket, err := svc.Create(ctx, admin, CreateTicketInput{
		ClientID:   uuid.New().String(),
		DeviceType: "phone",
		Brand:      "Apple",
		Tasks:      []string{"diagnostics"},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, technicianPrincipal(), ticket.ID.String()), ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, admin, ticket.ID.String()))

	_, err = svc.Get(ctx, admin, ticket.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}
