package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
)

// SettingsService manages the shared ticket taxonomy. Both roles read
// it (ticket forms need it), only super admins mutate it.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

func (s *SettingsService) Get(ctx context.Context, principal model.Principal) (*model.TicketSettings, error) {
	if !model.CanAccess(principal.Role, model.RoleSuperAdmin, model.RoleTechnician) {
		return nil, ErrPermissionDenied
	}

	deviceTypes, err := s.settingsRepo.ListDeviceTypes(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := s.settingsRepo.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	deviceModels, err := s.settingsRepo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.settingsRepo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	settings := &model.TicketSettings{
		DeviceTypes: make([]string, 0, len(deviceTypes)),
		Brands:      make([]string, 0, len(brands)),
		Models:      deviceModels,
		Tasks:       make([]string, 0, len(tasks)),
	}
	for _, dt := range deviceTypes {
		settings.DeviceTypes = append(settings.DeviceTypes, dt.Name)
	}
	for _, b := range brands {
		settings.Brands = append(settings.Brands, b.Name)
	}
	for _, t := range tasks {
		settings.Tasks = append(settings.Tasks, t.Name)
	}

	return settings, nil
}

func (s *SettingsService) AddDeviceType(ctx context.Context, principal model.Principal, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	if err := s.settingsRepo.CreateDeviceType(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *SettingsService) RemoveDeviceType(ctx context.Context, principal model.Principal, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	return s.settingsRepo.DeleteDeviceType(ctx, name)
}

func (s *SettingsService) RenameDeviceType(ctx context.Context, principal model.Principal, oldName, newName string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidInput
	}
	return s.settingsRepo.RenameDeviceType(ctx, oldName, newName)
}

func (s *SettingsService) AddBrand(ctx context.Context, principal model.Principal, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	if err := s.settingsRepo.CreateBrand(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

// RemoveBrand also drops the device models of that brand.
func (s *SettingsService) RemoveBrand(ctx context.Context, principal model.Principal, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	return s.settingsRepo.DeleteBrand(ctx, name)
}

// RenameBrand cascades to device models referencing the brand. Tickets
// recorded with the old brand string are intentionally left alone:
// they are a historical snapshot.
func (s *SettingsService) RenameBrand(ctx context.Context, principal model.Principal, oldName, newName string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidInput
	}
	return s.settingsRepo.RenameBrand(ctx, oldName, newName)
}

func (s *SettingsService) AddModel(ctx context.Context, principal model.Principal, name, brandID string) (*model.DeviceModel, error) {
	if err := s.requireAdmin(principal); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || brandID == "" {
		return nil, ErrInvalidInput
	}

	deviceModel := &model.DeviceModel{Name: name, BrandID: brandID}
	if err := s.settingsRepo.CreateModel(ctx, deviceModel); err != nil {
		return nil, err
	}
	return deviceModel, nil
}

func (s *SettingsService) RemoveModel(ctx context.Context, principal model.Principal, id string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	return s.settingsRepo.DeleteModel(ctx, id)
}

func (s *SettingsService) RenameModel(ctx context.Context, principal model.Principal, id, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	return s.settingsRepo.RenameModel(ctx, id, name)
}

func (s *SettingsService) AddTask(ctx context.Context, principal model.Principal, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	if err := s.settingsRepo.CreateTask(ctx, name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *SettingsService) RemoveTask(ctx context.Context, principal model.Principal, name string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	return s.settingsRepo.DeleteTask(ctx, name)
}

func (s *SettingsService) RenameTask(ctx context.Context, principal model.Principal, oldName, newName string) error {
	if err := s.requireAdmin(principal); err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrInvalidInput
	}
	return s.settingsRepo.RenameTask(ctx, oldName, newName)
}

func (s *SettingsService) requireAdmin(principal model.Principal) error {
	if !model.CanAccess(principal.Role, model.RoleSuperAdmin) {
		return ErrPermissionDenied
	}
	return nil
}
