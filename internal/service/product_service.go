package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"repairshop-service/internal/model"
	"repairshop-service/internal/repository"
	"repairshop-service/internal/utils"
)

type ProductService struct {
	productRepo  *repository.ProductRepository
	categoryRepo *repository.CategoryRepository
}

func NewProductService(productRepo *repository.ProductRepository, categoryRepo *repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateProductInput struct {
	Name        string
	Category    string
	Price       float64
	Stock       int
	SKU         string
	Description string
	ImageURL    string
}

func (s *ProductService) Create(ctx context.Context, principal model.Principal, input CreateProductInput) (*model.Product, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	if input.Name == "" || input.Category == "" {
		return nil, ErrInvalidInput
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, ErrInvalidInput
	}

	product := &model.Product{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		SKU:         utils.NormalizeSKU(input.SKU),
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	// New categories come into existence with the first product using them.
	if err := s.categoryRepo.EnsureExists(ctx, input.Category); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) Get(ctx context.Context, principal model.Principal, id string) (*model.Product, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, principal model.Principal, filter repository.ProductListFilter) ([]model.Product, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.productRepo.List(ctx, filter)
}

func (s *ProductService) ListCategories(ctx context.Context, principal model.Principal) ([]model.Category, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.categoryRepo.List(ctx)
}

type UpdateProductInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Stock       *int
	SKU         *string
	Description *string
	ImageURL    *string
}

func (s *ProductService) Update(ctx context.Context, principal model.Principal, id string, input UpdateProductInput) (*model.Product, error) {
	if !principal.IsSuperAdmin() {
		return nil, ErrPermissionDenied
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Category != nil {
		if *input.Category == "" {
			return nil, ErrInvalidInput
		}
		product.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidInput
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidInput
		}
		product.Stock = *input.Stock
	}
	if input.SKU != nil {
		product.SKU = utils.NormalizeSKU(*input.SKU)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if input.Category != nil {
		if err := s.categoryRepo.EnsureExists(ctx, *input.Category); err != nil {
			return nil, err
		}
	}

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, principal model.Principal, id string) error {
	if !principal.IsSuperAdmin() {
		return ErrPermissionDenied
	}

	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.productRepo.Delete(ctx, id)
}
