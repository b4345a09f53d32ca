package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	var product *models.Product
	if v := args.Get(0); v != nil {
		product = v.(*models.Product)
	}

	return product, args.Error(1)
}

func (m *ProductService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	args := m.Called(ctx, category)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	args := m.Called(ctx, query)
	return productsOrNil(args.Get(0)), args.Error(1)
}

func (m *ProductService) InvalidateProducts(ctx context.Context, ids ...string) {
	m.Called(ctx, ids)
}

func productsOrNil(v any) []*models.Product {
	if v == nil {
		return nil
	}

	return v.([]*models.Product)
}
