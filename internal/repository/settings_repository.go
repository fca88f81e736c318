package repository

import (
	"context"

	"gorm.io/gorm"

	"repairshop-service/internal/model"
)

// SettingsRepository owns the shared ticket taxonomy: device types,
// brands, device models and task names.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) ListDeviceTypes(ctx context.Context) ([]model.DeviceType, error) {
	var types []model.DeviceType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *SettingsRepository) CreateDeviceType(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Create(&model.DeviceType{Name: name}).Error
}

func (r *SettingsRepository) DeleteDeviceType(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.DeviceType{}).Error
}

func (r *SettingsRepository) RenameDeviceType(ctx context.Context, oldName, newName string) error {
	return r.db.WithContext(ctx).Model(&model.DeviceType{}).
		Where("name = ?", oldName).
		Update("name", newName).Error
}

func (r *SettingsRepository) ListBrands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *SettingsRepository) CreateBrand(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Create(&model.Brand{Name: name}).Error
}

// DeleteBrand removes the brand and every device model that belongs to
// it in one transaction.
func (r *SettingsRepository) DeleteBrand(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", name).Delete(&model.Brand{}).Error; err != nil {
			return err
		}
		return tx.Where("brand_id = ?", name).Delete(&model.DeviceModel{}).Error
	})
}

// RenameBrand rewrites the brand row and the brand reference on its
// models. Tickets are left untouched: they keep the brand name at time
// of creation.
func (r *SettingsRepository) RenameBrand(ctx context.Context, oldName, newName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Brand{}).
			Where("name = ?", oldName).
			Update("name", newName).Error; err != nil {
			return err
		}
		return tx.Model(&model.DeviceModel{}).
			Where("brand_id = ?", oldName).
			Update("brand_id", newName).Error
	})
}

func (r *SettingsRepository) ListModels(ctx context.Context) ([]model.DeviceModel, error) {
	var models []model.DeviceModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *SettingsRepository) CreateModel(ctx context.Context, deviceModel *model.DeviceModel) error {
	return r.db.WithContext(ctx).Create(deviceModel).Error
}

func (r *SettingsRepository) DeleteModel(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DeviceModel{}).Error
}

func (r *SettingsRepository) RenameModel(ctx context.Context, id, name string) error {
	return r.db.WithContext(ctx).Model(&model.DeviceModel{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *SettingsRepository) ListTasks(ctx context.Context) ([]model.TaskType, error) {
	var tasks []model.TaskType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *SettingsRepository) CreateTask(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Create(&model.TaskType{Name: name}).Error
}

func (r *SettingsRepository) DeleteTask(ctx context.Context, name string) error {
	return r.db.WithContext(ctx).Where("name = ?", name).Delete(&model.TaskType{}).Error
}

func (r *SettingsRepository) RenameTask(ctx context.Context, oldName, newName string) error {
	return r.db.WithContext(ctx).Model(&model.TaskType{}).
		Where("name = ?", oldName).
		Update("name", newName).Error
}
