package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// Transactor records the call and, unless told to fail, runs fn against
// Stores directly.
type Transactor struct {
	mock.Mock
	Stores repository.Stores
}

func (m *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores repository.Stores) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(ctx, m.Stores)
}
