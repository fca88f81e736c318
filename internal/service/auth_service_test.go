package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairshop-service/internal/auth"
	"repairshop-service/internal/config"
	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	db := newTestDB(t)
	tokens := auth.NewManager("test-secret", time.Hour)
	return NewAuthService(repository.NewUserRepository(db), tokens, zerolog.Nop())
}

func TestRegisterDefaultsToTechnician(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    "tech@example.com",
		Password: "secret123",
		FullName: "Tech One",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTechnician, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "x1234567", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "y1234567", FullName: "B"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "secret123", FullName: "A"})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "a@b.c", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "a@b.c", user.Email)

	_, _, err = svc.Login(ctx, "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email looks exactly like a wrong password.
	_, _, err = svc.Login(ctx, "nobody@b.c", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "secret123", FullName: "A"})
	require.NoError(t, err)

	principal := model.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}

	err = svc.ChangePassword(ctx, principal, "wrong", "newpass123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, principal, "secret123", "newpass123"))

	_, _, err = svc.Login(ctx, "a@b.c", "newpass123")
	assert.NoError(t, err)
}

func TestUpdateProfileEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "secret123", FullName: "A"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Email: "taken@b.c", Password: "secret123", FullName: "B"})
	require.NoError(t, err)

	principal := model.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}

	taken := "taken@b.c"
	_, err = svc.UpdateProfile(ctx, principal, UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	fresh := "new@b.c"
	updated, err := svc.UpdateProfile(ctx, principal, UpdateProfileInput{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, "new@b.c", updated.Email)

	_, _, err = svc.Login(ctx, "new@b.c", "secret123")
	assert.NoError(t, err)
}

func TestUpdateRole(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.c", Password: "secret123", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.UpdateRole(ctx, technicianPrincipal(), user.ID.String(), model.RoleSuperAdmin)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	promoted, err := svc.UpdateRole(ctx, adminPrincipal(), user.ID.String(), model.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, promoted.Role)

	_, err = svc.UpdateRole(ctx, adminPrincipal(), user.ID.String(), model.Role("owner"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnsureSuperAdmin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cfg := config.BootstrapConfig{
		AdminEmail:    "admin@example.com",
		AdminPassword: "bootstrap123",
		AdminName:     "Admin",
	}

	require.NoError(t, svc.EnsureSuperAdmin(ctx, cfg))

	_, user, err := svc.Login(ctx, cfg.AdminEmail, cfg.AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, user.Role)

	// Idempotent on restart.
	require.NoError(t, svc.EnsureSuperAdmin(ctx, cfg))

	users, err := svc.ListUsers(ctx, adminPrincipal())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestEnsureSuperAdminBackfillsRole(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	existing, err := svc.Register(ctx, RegisterInput{
		Email:    "admin@example.com",
		Password: "secret123",
		FullName: "Admin",
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleTechnician, existing.Role)

	require.NoError(t, svc.EnsureSuperAdmin(ctx, config.BootstrapConfig{AdminEmail: "admin@example.com"}))

	_, user, err := svc.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, user.Role)
}

func TestEnsureSuperAdminNoConfig(t *testing.T) {
	svc := newAuthService(t)
	assert.NoError(t, svc.EnsureSuperAdmin(context.Background(), config.BootstrapConfig{}))
}
