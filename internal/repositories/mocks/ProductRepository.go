package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	return productOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductRepository) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	return productOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductRepository) LockProducts(ctx context.Context, ids []string) ([]*models.Product, error) {
	args := m.Called(ctx, ids)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	args := m.Called(ctx, category)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductRepository) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	args := m.Called(ctx, query)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func productOrNil(v any) *models.Product {
	if v == nil {
		return nil
	}

	return v.(*models.Product)
}

func productsOrNil(v any) []*models.Product {
	if v == nil {
		return nil
	}

	return v.([]*models.Product)
}
