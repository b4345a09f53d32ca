package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Stores are the repositories bound to one transaction.
type Stores struct {
	Products ProductRepository
	Carts    CartRepository
}

type Transactor interface {
	// WithinTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. fn's error is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

type sqlTransactor struct {
	DB *sql.DB
}

func NewTransactor(db *sql.DB) Transactor {
	return &sqlTransactor{DB: db}
}

func (t *sqlTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) (err error) {

	tx, err := t.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	stores := Stores{
		Products: NewProductRepo(tx),
		Carts:    NewCartRepo(tx),
	}

	if err := fn(ctx, stores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
