package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type CartRepository interface {
	FindItem(ctx context.Context, userID uuid.UUID, productID string) (*models.CartRow, error)
	FindItemByID(ctx context.Context, userID, id uuid.UUID) (*models.CartRow, error)
	// ListLines joins the user's rows with their products, oldest row first.
	ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	// UpsertItem writes row.Quantity as the new quantity for (UserID, ProductID).
	UpsertItem(ctx context.Context, row *models.CartRow) error
	UpdateQuantity(ctx context.Context, userID, id uuid.UUID, qty int) error
	DeleteItem(ctx context.Context, userID, id uuid.UUID) error
	// DeleteItems removes the listed rows of one user and reports how many went.
	DeleteItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type cartRepository struct {
	DB Querier
}

func NewCartRepo(db Querier) CartRepository {
	return &cartRepository{DB: db}
}

func (r *cartRepository) FindItem(ctx context.Context, userID uuid.UUID, productID string) (*models.CartRow, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1 AND product_id = $2
	`

	return r.findRow(ctx, query, userID, productID)
}

func (r *cartRepository) FindItemByID(ctx context.Context, userID, id uuid.UUID) (*models.CartRow, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE id = $1 AND user_id = $2
	`

	return r.findRow(ctx, query, id, userID)
}

func (r *cartRepository) findRow(ctx context.Context, query string, args ...any) (*models.CartRow, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	row := &models.CartRow{}

	err := r.DB.QueryRowContext(dbCtx, query, args...).Scan(&row.ID, &row.UserID, &row.ProductID, &row.Quantity, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return row, nil
}

func (r *cartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, ci.id, p.name, p.description, p.price, p.category, p.image, p.rating, p.stock, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.seq
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		var line models.CartLine

		err := rows.Scan(&line.ProductID, &line.CartID, &line.Name, &line.Description, &line.Price, &line.Category, &line.Image, &line.Rating, &line.Stock, &line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *cartRepository) UpsertItem(ctx context.Context, row *models.CartRow) error {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, row.ID, row.UserID, row.ProductID, row.Quantity).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, id uuid.UUID, qty int) error {
	query := `UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`

	return r.execOne(ctx, "update the cart item", query, qty, id, userID)
}

func (r *cartRepository) DeleteItem(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`

	return r.execOne(ctx, "delete the cart item", query, id, userID)
}

func (r *cartRepository) DeleteItems(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	rowIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		rowIDs = append(rowIDs, id.String())
	}

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`, userID, pq.Array(rowIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart items: %w", err)
	}

	return result.RowsAffected()
}

func (r *cartRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear the cart: %w", err)
	}

	return result.RowsAffected()
}

func (r *cartRepository) execOne(ctx context.Context, action, query string, args ...any) error {
	dbCtx, cancel := withQueryTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return ErrNotFound
	}

	return nil
}
