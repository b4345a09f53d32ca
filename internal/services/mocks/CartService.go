package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)
	return linesOrNil(args.Get(0)), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) ([]models.CartLine, error) {
	args := m.Called(ctx, userID, req)
	return linesOrNil(args.Get(0)), args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID, cartID uuid.UUID, quantity int) ([]models.CartLine, error) {
	args := m.Called(ctx, userID, cartID, quantity)
	return linesOrNil(args.Get(0)), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, cartID uuid.UUID) ([]models.CartLine, error) {
	args := m.Called(ctx, userID, cartID)
	return linesOrNil(args.Get(0)), args.Error(1)
}

func (m *CartService) Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResult, error) {
	args := m.Called(ctx, userID)

	var result *models.CheckoutResult
	if v := args.Get(0); v != nil {
		result = v.(*models.CheckoutResult)
	}

	return result, args.Error(1)
}

func linesOrNil(v any) []models.CartLine {
	if v == nil {
		return nil
	}

	return v.([]models.CartLine)
}
