package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"repairshop-service/internal/auth"
	"repairshop-service/internal/config"
	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.Manager
	log      zerolog.Logger
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
}

// Register creates an account with the default technician role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Email == "" || input.Password == "" || input.FullName == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		Role:         model.RoleTechnician,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the password and issues an access token carrying the
// resolved role. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, principal.UserID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Email       *string
	FullName    *string
	PhoneNumber *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, principal model.Principal, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(ctx, principal)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if *input.Email == "" {
			return nil, ErrInvalidInput
		}
		if _, err := s.userRepo.GetByEmail(ctx, *input.Email); err == nil {
			return nil, ErrConflict
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, ErrInvalidInput
		}
		user.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword re-verifies the current password first.
func (s *AuthService) ChangePassword(ctx context.Context, principal model.Principal, currentPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	user, err := s.GetProfile(ctx, principal)
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(user.PasswordHash, currentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	return s.userRepo.Update(ctx, user)
}

// UpdateRole lets a super admin change another user's role.
func (s *AuthService) UpdateRole(ctx context.Context, principal model.Principal, userID string, role model.Role) (*model.User, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	if role != model.RoleTechnician && role != model.RoleSuperAdmin {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListTechnicians(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.ListByRole(ctx, model.RoleTechnician)
}

func (s *AuthService) ListUsers(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.List(ctx)
}

// EnsureSuperAdmin makes sure the configured administrative account
// exists with the superAdmin role. Safe to call on every start: it
// creates the account when missing and backfills the role when the
// account exists without it.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	user, err := s.userRepo.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		if user.Role == model.RoleSuperAdmin {
			return nil
		}
		user.Role = model.RoleSuperAdmin
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
		s.log.Info().Str("email", cfg.AdminEmail).Msg("backfilled super admin role")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		FullName:     cfg.AdminName,
		PhoneNumber:  cfg.AdminPhone,
		Role:         model.RoleSuperAdmin,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	s.log.Info().Str("email", cfg.AdminEmail).Msg("created super admin account")
	return nil
}
