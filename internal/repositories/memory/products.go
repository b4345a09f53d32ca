package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type productRepo struct {
	acc accessor
}

func (r *productRepo) CreateProduct(_ context.Context, product *models.Product) error {
	return r.acc.write(func(st *state) error {
		now := time.Now()
		product.CreatedAt = now
		product.UpdatedAt = now
		st.products[product.ID] = *product

		return nil
	})
}

func (r *productRepo) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	var found *models.Product

	err := r.acc.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return repository.ErrNotFound
		}

		found = &p

		return nil
	})

	return found, err
}

// The whole transaction already holds the writer lock.
func (r *productRepo) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	return r.GetProductByID(ctx, id)
}

func (r *productRepo) LockProducts(_ context.Context, ids []string) ([]*models.Product, error) {
	return r.filter(func(p *models.Product) bool { return slices.Contains(ids, p.ID) })
}

func (r *productRepo) DecrementStock(_ context.Context, id string, qty int) error {
	return r.acc.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok || p.Stock < qty {
			return repository.ErrStockConflict
		}

		p.Stock -= qty
		p.UpdatedAt = time.Now()
		st.products[id] = p

		return nil
	})
}

func (r *productRepo) ListProducts(_ context.Context) ([]*models.Product, error) {
	return r.filter(func(*models.Product) bool { return true })
}

func (r *productRepo) ListProductsByCategory(_ context.Context, category string) ([]*models.Product, error) {
	return r.filter(func(p *models.Product) bool { return p.Category == category })
}

func (r *productRepo) SearchProducts(_ context.Context, query string) ([]*models.Product, error) {
	q := strings.ToLower(query)

	return r.filter(func(p *models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q)
	})
}

func (r *productRepo) CountProducts(_ context.Context) (int, error) {
	var total int

	err := r.acc.read(func(st *state) error {
		total = len(st.products)
		return nil
	})

	return total, err
}

// filter returns matching products ordered by id.
func (r *productRepo) filter(keep func(p *models.Product) bool) ([]*models.Product, error) {
	products := []*models.Product{}

	err := r.acc.read(func(st *state) error {
		for _, p := range st.products {
			if keep(&p) {
				products = append(products, &p)
			}
		}

		return nil
	})

	slices.SortFunc(products, func(a, b *models.Product) int { return strings.Compare(a.ID, b.ID) })

	return products, err
}
