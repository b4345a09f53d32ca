package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) FindItem(ctx context.Context, userID uuid.UUID, productID string) (*models.CartRow, error) {
	args := m.Called(ctx, userID, productID)
	return rowOrNil(args.Get(0)), args.Error(1)
}

func (m *CartRepository) FindItemByID(ctx context.Context, userID, id uuid.UUID) (*models.CartRow, error) {
	args := m.Called(ctx, userID, id)
	return rowOrNil(args.Get(0)), args.Error(1)
}

func (m *CartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	args := m.Called(ctx, userID)

	var lines []models.CartLine
	if v := args.Get(0); v != nil {
		lines = v.([]models.CartLine)
	}

	return lines, args.Error(1)
}

func (m *CartRepository) UpsertItem(ctx context.Context, row *models.CartRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *CartRepository) UpdateQuantity(ctx context.Context, userID, id uuid.UUID, qty int) error {
	args := m.Called(ctx, userID, id, qty)
	return args.Error(0)
}

func (m *CartRepository) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *CartRepository) DeleteItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CartRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func rowOrNil(v any) *models.CartRow {
	if v == nil {
		return nil
	}

	return v.(*models.CartRow)
}
