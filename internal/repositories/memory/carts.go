package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type cartRepo struct {
	acc accessor
}

func (r *cartRepo) FindItem(_ context.Context, userID uuid.UUID, productID string) (*models.CartRow, error) {
	var found *models.CartRow

	err := r.acc.read(func(st *state) error {
		id, ok := st.cartIndex[cartKey{userID: userID, productID: productID}]
		if !ok {
			return repository.ErrNotFound
		}

		row := st.cartRows[id]
		found = &row

		return nil
	})

	return found, err
}

func (r *cartRepo) FindItemByID(_ context.Context, userID, id uuid.UUID) (*models.CartRow, error) {
	var found *models.CartRow

	err := r.acc.read(func(st *state) error {
		row, ok := st.cartRows[id]
		if !ok || row.UserID != userID {
			return repository.ErrNotFound
		}

		found = &row

		return nil
	})

	return found, err
}

func (r *cartRepo) ListLines(_ context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	lines := []models.CartLine{}

	err := r.acc.read(func(st *state) error {
		var rows []models.CartRow
		for _, row := range st.cartRows {
			if row.UserID == userID {
				rows = append(rows, row)
			}
		}

		slices.SortFunc(rows, func(a, b models.CartRow) int {
			return cmp.Compare(st.cartSeq[a.ID], st.cartSeq[b.ID])
		})

		for _, row := range rows {
			product, ok := st.products[row.ProductID]
			if !ok {
				continue
			}

			lines = append(lines, models.NewCartLine(&row, &product))
		}

		return nil
	})

	return lines, err
}

func (r *cartRepo) UpsertItem(_ context.Context, row *models.CartRow) error {
	return r.acc.write(func(st *state) error {
		now := time.Now()
		key := cartKey{userID: row.UserID, productID: row.ProductID}

		if id, ok := st.cartIndex[key]; ok {
			existing := st.cartRows[id]
			existing.Quantity = row.Quantity
			existing.UpdatedAt = now
			st.cartRows[id] = existing
			*row = existing

			return nil
		}

		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		row.CreatedAt = now
		row.UpdatedAt = now

		st.nextSeq++
		st.cartRows[row.ID] = *row
		st.cartIndex[key] = row.ID
		st.cartSeq[row.ID] = st.nextSeq

		return nil
	})
}

func (r *cartRepo) UpdateQuantity(_ context.Context, userID, id uuid.UUID, qty int) error {
	return r.acc.write(func(st *state) error {
		row, ok := st.cartRows[id]
		if !ok || row.UserID != userID {
			return repository.ErrNotFound
		}

		row.Quantity = qty
		row.UpdatedAt = time.Now()
		st.cartRows[id] = row

		return nil
	})
}

func (r *cartRepo) DeleteItem(_ context.Context, userID, id uuid.UUID) error {
	return r.acc.write(func(st *state) error {
		row, ok := st.cartRows[id]
		if !ok || row.UserID != userID {
			return repository.ErrNotFound
		}

		st.deleteRow(row)

		return nil
	})
}

func (r *cartRepo) DeleteItems(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64

	err := r.acc.write(func(st *state) error {
		for _, id := range ids {
			if row, ok := st.cartRows[id]; ok && row.UserID == userID {
				st.deleteRow(row)
				deleted++
			}
		}

		return nil
	})

	return deleted, err
}

func (r *cartRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64

	err := r.acc.write(func(st *state) error {
		for _, row := range st.cartRows {
			if row.UserID == userID {
				st.deleteRow(row)
				deleted++
			}
		}

		return nil
	})

	return deleted, err
}

func (s *state) deleteRow(row models.CartRow) {
	delete(s.cartRows, row.ID)
	delete(s.cartIndex, cartKey{userID: row.UserID, productID: row.ProductID})
	delete(s.cartSeq, row.ID)
}
