package service

import (
	"context"
	stdErrors "errors"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/singleflight"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Product, error)
	Search(ctx context.Context, query string) ([]*models.Product, error)
	InvalidateProducts(ctx context.Context, ids ...string)
}

type productService struct {
	repo   repository.ProductRepository
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	policy *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, ttl time.Duration) ProductService {
	return &productService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {

	products, err := cached(ctx, s, cache.AllProductsKey, func(ctx context.Context) ([]*models.Product, error) {
		return s.repo.ListProducts(ctx)
	})
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {

	product, err := cached(ctx, s, cache.ProductKey(id), func(ctx context.Context) (*models.Product, error) {
		return s.repo.GetProductByID(ctx, id)
	})
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// ListByCategory treats models.AllCategories as no filter.
func (s *productService) ListByCategory(ctx context.Context, category string) ([]*models.Product, error) {

	if category == models.AllCategories {
		return s.ListProducts(ctx)
	}

	products, err := s.repo.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) Search(ctx context.Context, query string) ([]*models.Product, error) {

	query = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(query)))
	if query == "" {
		return []*models.Product{}, nil
	}

	products, err := s.repo.SearchProducts(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search products").WithError(err)
	}

	return products, nil
}

func (s *productService) InvalidateProducts(ctx context.Context, ids ...string) {

	if err := s.cache.Delete(ctx, cache.ProductKeys(ids...)...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate product cache", slog.String("error", err.Error()))
	}
}

// cached is cache-aside with singleflight: concurrent misses on one key share
// a single load. Cache failures degrade to a direct load.
func cached[T any](ctx context.Context, s *productService, key string, load func(context.Context) (T, error)) (T, error) {

	logger := middleware.LoggerFromContext(ctx)

	var value T

	found, err := s.cache.Get(ctx, key, &value)
	if err != nil {
		logger.Warn("Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if found {
		return value, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return loaded, err
		}

		if err := s.cache.Set(ctx, key, loaded, s.ttl); err != nil {
			logger.Warn("Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}

		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}
