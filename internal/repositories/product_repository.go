package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// GetProductForUpdate reads the product and holds its row lock until the
	// surrounding transaction ends.
	GetProductForUpdate(ctx context.Context, id string) (*models.Product, error)
	// LockProducts locks every listed product in id order. Missing ids are
	// absent from the result.
	LockProducts(ctx context.Context, ids []string) ([]*models.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*models.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

type productRepository struct {
	DB Querier
}

func NewProductRepo(db Querier) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, name, description, price, category, image, rating, stock, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Category, &product.Image, &product.Rating, &product.Stock, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (id, name, description, price, category, image, rating, stock)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.ID, product.Name, product.Description, product.Price, product.Category, product.Image, product.Rating, product.Stock).Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return r.getProduct(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *productRepository) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	return r.getProduct(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *productRepository) getProduct(ctx context.Context, query, id string) (*models.Product, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) LockProducts(ctx context.Context, ids []string) ([]*models.Product, error) {
	// ordered locking keeps two checkouts over the same products from deadlocking
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	return r.listProducts(ctx, query, pq.Array(ids))
}

func (r *productRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`

	result, err := r.DB.ExecContext(dbCtx, query, qty, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrStockConflict
	}

	return nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return r.listProducts(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *productRepository) ListProductsByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return r.listProducts(ctx, `SELECT `+productColumns+` FROM products WHERE category = $1 ORDER BY id`, category)
}

func (r *productRepository) SearchProducts(ctx context.Context, query string) ([]*models.Product, error) {
	pattern := "%" + escapeLike(query) + "%"

	return r.listProducts(ctx, `SELECT `+productColumns+` FROM products WHERE name ILIKE $1 OR description ILIKE $1 ORDER BY id`, pattern)
}

func (r *productRepository) CountProducts(ctx context.Context) (int, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

func (r *productRepository) listProducts(ctx context.Context, query string, args ...any) ([]*models.Product, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	products := []*models.Product{}

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}

	return string(out)
}
