package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"repairshop-service/internal/model"
)

// ErrInsufficientStock is returned when a conditional stock decrement
// would drive stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

type ProductListFilter struct {
	Category *string
}

func (r *ProductRepository) List(ctx context.Context, filter ProductListFilter) ([]model.Product, error) {
	var products []model.Product
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{}).Error
}

// DecrementStock atomically reduces stock by quantity. The guard in the
// WHERE clause makes concurrent order fulfillment safe: the update
// matches no row when stock is too low, and the order fails instead of
// under-decrementing inventory.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock restores stock, used when a fulfilled order is
// cancelled or deleted.
func (r *ProductRepository) IncrementStock(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}
