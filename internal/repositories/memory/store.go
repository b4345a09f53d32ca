// Package memory keeps the storefront's tables in process memory. Every write
// clones the current state, applies the change and publishes the clone, so
// readers never observe a half-applied transaction.
package memory

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type cartKey struct {
	userID    uuid.UUID
	productID string
}

type state struct {
	products     map[string]models.Product
	users        map[uuid.UUID]models.User
	usersByEmail map[string]uuid.UUID
	cartRows     map[uuid.UUID]models.CartRow
	cartIndex    map[cartKey]uuid.UUID
	cartSeq      map[uuid.UUID]int64
	nextSeq      int64
}

func newState() *state {
	return &state{
		products:     map[string]models.Product{},
		users:        map[uuid.UUID]models.User{},
		usersByEmail: map[string]uuid.UUID{},
		cartRows:     map[uuid.UUID]models.CartRow{},
		cartIndex:    map[cartKey]uuid.UUID{},
		cartSeq:      map[uuid.UUID]int64{},
	}
}

// Values are plain structs, so a shallow map copy is a full snapshot.
func (s *state) clone() *state {
	return &state{
		products:     maps.Clone(s.products),
		users:        maps.Clone(s.users),
		usersByEmail: maps.Clone(s.usersByEmail),
		cartRows:     maps.Clone(s.cartRows),
		cartIndex:    maps.Clone(s.cartIndex),
		cartSeq:      maps.Clone(s.cartSeq),
		nextSeq:      s.nextSeq,
	}
}

// accessor hands a repository the state it should read or change.
type accessor interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store is a single-writer, copy-on-write database.
type Store struct {
	writeMu sync.Mutex
	current atomic.Pointer[state]
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(newState())

	return s
}

// New returns the memory-backed repositories under the same shape the
// Postgres backend uses.
func New() *repository.Repository {
	s := NewStore()

	return &repository.Repository{
		User:    &userRepo{acc: s},
		Product: &productRepo{acc: s},
		Cart:    &cartRepo{acc: s},
		Tx:      s,
	}
}

func (s *Store) read(fn func(st *state) error) error {
	return fn(s.current.Load())
}

func (s *Store) write(fn func(st *state) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	staged := s.current.Load().clone()
	if err := fn(staged); err != nil {
		return err
	}

	s.current.Store(staged)

	return nil
}

// WithinTx runs fn against a private copy of the state and publishes it only
// if fn succeeds. Transactions run one at a time.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, stores repository.Stores) error) error {
	return s.write(func(st *state) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		tx := txAccessor{st: st}

		return fn(ctx, repository.Stores{
			Products: &productRepo{acc: tx},
			Carts:    &cartRepo{acc: tx},
		})
	})
}

// txAccessor works on a staged state owned by one running transaction.
type txAccessor struct {
	st *state
}

func (t txAccessor) read(fn func(st *state) error) error  { return fn(t.st) }
func (t txAccessor) write(fn func(st *state) error) error { return fn(t.st) }
