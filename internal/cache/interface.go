package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores JSON-encoded values. Get reports found=false on a miss and
// leaves value untouched.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AllProductsKey holds the full catalog. It sits outside the product:
// namespace so no product id can collide with it.
const AllProductsKey = "products:all"

func ProductKey(id string) string {
	return "product:" + id
}

// ProductKeys lists the entries a stock change to ids makes stale: each
// product and the catalog listing.
func ProductKeys(ids ...string) []string {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, AllProductsKey)

	for _, id := range ids {
		keys = append(keys, ProductKey(id))
	}

	return keys
}

// family is the metric label for a key: its namespace before the first colon.
func family(key string) string {
	if prefix, _, ok := strings.Cut(key, ":"); ok {
		return prefix
	}

	return key
}

type noopCache struct{}

// NewNoopCache never stores anything; every Get is a miss.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (noopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error              { return nil }
