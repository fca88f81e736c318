package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairshop-service/internal/repository"
)

func newProductService(t *testing.T) *ProductService {
	db := newTestDB(t)
	return NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db))
}

func TestProductCreateAutoCreatesCategory(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	product, err := svc.Create(ctx, admin, CreateProductInput{
		Name:     "USB-C cable",
		Category: "accessories",
		Price:    7.5,
		Stock:    20,
		SKU:      "usb c-100",
	})
	require.NoError(t, err)
	assert.Equal(t, "USBC100", product.SKU)

	categories, err := svc.ListCategories(ctx, admin)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "accessories", categories[0].Name)

	// A second product in the same category does not duplicate it.
	_, err = svc.Create(ctx, admin, CreateProductInput{
		Name:     "Lightning cable",
		Category: "accessories",
		Price:    9,
	})
	require.NoError(t, err)

	categories, err = svc.ListCategories(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestProductListByCategory(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	_, err := svc.Create(ctx, admin, CreateProductInput{Name: "Cable", Category: "accessories", Price: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, CreateProductInput{Name: "Battery", Category: "parts", Price: 25})
	require.NoError(t, err)

	category := "parts"
	products, err := svc.List(ctx, admin, repository.ProductListFilter{Category: &category})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Battery", products[0].Name)
}

func TestProductValidation(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	_, err := svc.Create(ctx, admin, CreateProductInput{Name: "", Category: "parts", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, admin, CreateProductInput{Name: "X", Category: "parts", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, technicianPrincipal(), CreateProductInput{Name: "X", Category: "parts", Price: 1})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestProductUpdate(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()
	admin := adminPrincipal()

	product, err := svc.Create(ctx, admin, CreateProductInput{Name: "Cable", Category: "accessories", Price: 5, Stock: 3})
	require.NoError(t, err)

	price := 6.5
	stock := 10
	updated, err := svc.Update(ctx, admin, product.ID.String(), UpdateProductInput{Price: &price, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 6.5, updated.Price)
	assert.Equal(t, 10, updated.Stock)
}
