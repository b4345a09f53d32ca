package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrStockConflict means a guarded stock decrement matched no row: the
	// product vanished or its stock dropped below the requested amount.
	ErrStockConflict = errors.New("stock changed concurrently")
)
