package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
)

// mapCache stores JSON like the Redis cache does.
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	getErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, value any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getErr != nil {
		return false, c.getErr
	}

	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(data, value)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data

	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.entries, k)
	}
	c.deleted = append(c.deleted, keys...)

	return nil
}

var catalog = []*models.Product{
	{ID: "1", Name: "Smartwatch", Category: "Electronics", Price: decimal.RequireFromString("199.99"), Stock: 10},
	{ID: "2", Name: "Laptop Backpack", Category: "Accessories", Price: decimal.RequireFromString("49.99"), Stock: 20},
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss then hit", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		c := newMapCache()
		productService := service.NewProductService(mockRepo, c, time.Minute)
		mockRepo.On("ListProducts", mock.Anything).Return(catalog, nil).Once()

		// Act
		first, err1 := productService.ListProducts(ctx)
		second, err2 := productService.ListProducts(ctx)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Len(t, first, 2)
		require.Len(t, second, 2)
		assert.Equal(t, "Smartwatch", second[0].Name)
		assert.True(t, catalog[0].Price.Equal(second[0].Price))
		assert.Contains(t, c.entries, cache.AllProductsKey)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Cache failure falls back to the store", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		c := newMapCache()
		c.getErr = errors.New("redis down")
		productService := service.NewProductService(mockRepo, c, time.Minute)
		mockRepo.On("ListProducts", mock.Anything).Return(catalog, nil).Once()

		products, err := productService.ListProducts(ctx)

		require.NoError(t, err)
		assert.Len(t, products, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Database error", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, cache.NewNoopCache(), time.Minute)
		mockRepo.On("ListProducts", mock.Anything).Return(nil, errors.New("db failure")).Once()

		products, err := productService.ListProducts(ctx)

		assert.Nil(t, products)
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
	})

	t.Run("Redis backed", func(t *testing.T) {
		// Arrange
		client, redisMock := redismock.NewClientMock()
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Minute}), 5*time.Minute)

		data, err := json.Marshal(catalog)
		require.NoError(t, err)

		redisMock.ExpectGet(cache.AllProductsKey).RedisNil()
		mockRepo.On("ListProducts", mock.Anything).Return(catalog, nil).Once()
		redisMock.ExpectSet(cache.AllProductsKey, data, 5*time.Minute).SetVal("OK")

		// Act
		products, err := productService.ListProducts(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, catalog, products)
		assert.NoError(t, redisMock.ExpectationsWereMet())
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		c := newMapCache()
		productService := service.NewProductService(mockRepo, c, time.Minute)
		mockRepo.On("GetProductByID", mock.Anything, "1").Return(catalog[0], nil).Once()

		product, err := productService.GetProductByID(ctx, "1")

		require.NoError(t, err)
		assert.Equal(t, "Smartwatch", product.Name)
		assert.Contains(t, c.entries, "product:1")
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		c := newMapCache()
		productService := service.NewProductService(mockRepo, c, time.Minute)
		mockRepo.On("GetProductByID", mock.Anything, "99").Return(nil, repository.ErrNotFound).Once()

		product, err := productService.GetProductByID(ctx, "99")

		assert.Nil(t, product)
		requireAppError(t, err, appErrors.ErrCodeNotFound)
		assert.NotContains(t, c.entries, "product:99")
	})
}

func TestProductService_ListByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("All means every product", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, cache.NewNoopCache(), time.Minute)
		mockRepo.On("ListProducts", mock.Anything).Return(catalog, nil).Once()

		products, err := productService.ListByCategory(ctx, models.AllCategories)

		require.NoError(t, err)
		assert.Len(t, products, 2)
		mockRepo.AssertNotCalled(t, "ListProductsByCategory", mock.Anything, mock.Anything)
	})

	t.Run("Single category", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, cache.NewNoopCache(), time.Minute)
		mockRepo.On("ListProductsByCategory", mock.Anything, "Accessories").Return(catalog[1:], nil).Once()

		products, err := productService.ListByCategory(ctx, "Accessories")

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "2", products[0].ID)
	})
}

func TestProductService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("Markup is stripped before querying", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, cache.NewNoopCache(), time.Minute)
		mockRepo.On("SearchProducts", mock.Anything, "watch").Return(catalog[:1], nil).Once()

		products, err := productService.Search(ctx, "  <b>watch</b> ")

		require.NoError(t, err)
		assert.Len(t, products, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty after sanitising", func(t *testing.T) {
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo, cache.NewNoopCache(), time.Minute)

		products, err := productService.Search(ctx, "<script></script>")

		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
		mockRepo.AssertNotCalled(t, "SearchProducts", mock.Anything, mock.Anything)
	})
}

func TestProductService_InvalidateProducts(t *testing.T) {
	// Arrange
	c := newMapCache()
	productService := service.NewProductService(new(mocks.ProductRepository), c, time.Minute)
	require.NoError(t, c.Set(context.Background(), cache.AllProductsKey, catalog, 0))
	require.NoError(t, c.Set(context.Background(), "product:1", catalog[0], 0))
	require.NoError(t, c.Set(context.Background(), "product:2", catalog[1], 0))

	// Act
	productService.InvalidateProducts(context.Background(), "1")

	// Assert
	assert.ElementsMatch(t, []string{cache.AllProductsKey, "product:1"}, c.deleted)
	assert.Contains(t, c.entries, "product:2")
}
