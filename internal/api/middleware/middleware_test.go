package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/mocks"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLogging(t *testing.T) {
	t.Run("Generates a correlation id", func(t *testing.T) {
		var logged bool
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logged = middleware.LoggerFromContext(r.Context()) != nil
			w.WriteHeader(http.StatusTeapot)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.True(t, logged)
		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Keeps the caller's correlation id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rr := httptest.NewRecorder()

		middleware.Logging(okHandler()).ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
	})

	t.Run("Adds the trace id and logs failures as errors", func(t *testing.T) {
		var buf bytes.Buffer
		previous := slog.Default()
		slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
		t.Cleanup(func() { slog.SetDefault(previous) })

		traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}
		sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: trace.SpanID{1}, TraceFlags: trace.FlagsSampled})
		req := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", nil)
		req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))

		middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})).ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)
		assert.Contains(t, buf.String(), `"level":"ERROR","msg":"Request completed"`)
	})

	t.Run("Default logger outside a request", func(t *testing.T) {
		assert.NotNil(t, middleware.LoggerFromContext(context.Background()))
	})
}

func TestRateLimit(t *testing.T) {
	window := 15 * time.Minute

	t.Run("Allowed", func(t *testing.T) {
		limiter := new(mocks.RateLimiter)
		limiter.On("Allow", mock.Anything, "api_rate:192.0.2.1", int64(100), window).Return(true, time.Duration(0), nil).Once()

		rr := httptest.NewRecorder()
		middleware.RateLimit(limiter, 100, window)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		limiter.AssertExpectations(t)
	})

	t.Run("Limited", func(t *testing.T) {
		limiter := new(mocks.RateLimiter)
		limiter.On("Allow", mock.Anything, "api_rate:192.0.2.1", int64(100), window).Return(false, 42*time.Second, nil).Once()

		rr := httptest.NewRecorder()
		middleware.RateLimit(limiter, 100, window)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		require.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "42", rr.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"code":"TOO_MANY_REQUESTS","error":"Too many requests, please try again later."}`, rr.Body.String())
	})

	t.Run("Limiter failure lets the request through", func(t *testing.T) {
		limiter := new(mocks.RateLimiter)
		limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, time.Duration(0), errors.New("redis down")).Once()

		rr := httptest.NewRecorder()
		middleware.RateLimit(limiter, 100, window)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestCORS(t *testing.T) {
	t.Run("Any origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rr := httptest.NewRecorder()

		middleware.CORS([]string{"*"})(okHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight for a listed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		rr := httptest.NewRecorder()

		middleware.CORS([]string{"https://shop.example.com"})(okHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "https://shop.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Authorization, Content-Type", rr.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
	})

	t.Run("Unlisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()

		middleware.CORS([]string{"https://shop.example.com"})(okHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
