package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type userRepo struct {
	acc accessor
}

func (r *userRepo) CreateUser(_ context.Context, user *models.User) error {
	return r.acc.write(func(st *state) error {
		if _, taken := st.usersByEmail[user.Email]; taken {
			return repository.ErrDuplicateEmail
		}

		now := time.Now()
		user.ID = uuid.New()
		user.CreatedAt = now
		user.UpdatedAt = now

		st.users[user.ID] = *user
		st.usersByEmail[user.Email] = user.ID

		return nil
	})
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var id uuid.UUID

	err := r.acc.read(func(st *state) error {
		found, ok := st.usersByEmail[email]
		if !ok {
			return repository.ErrNotFound
		}

		id = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetUserByID(ctx, id)
}

func (r *userRepo) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	var found *models.User

	err := r.acc.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}

		found = &u

		return nil
	})

	return found, err
}

func (r *userRepo) CountUsers(_ context.Context) (int, error) {
	var total int

	err := r.acc.read(func(st *state) error {
		total = len(st.users)
		return nil
	})

	return total, err
}
