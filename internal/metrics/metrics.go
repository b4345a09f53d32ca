package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	cartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	checkoutItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_items_total",
			Help: "Units sold through checkout.",
		},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache reads by key family and result.",
		},
		[]string{"family", "result"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// Outcome labels an operation result: "success", the lower-cased AppError
// code, or "error".
func Outcome(err error) string {
	if err == nil {
		return "success"
	}

	if appErr, ok := appErrors.IsAppError(err); ok {
		return strings.ToLower(appErr.Code)
	}

	return "error"
}

func RecordCartOperation(operation string, err error) {
	cartOperationsTotal.WithLabelValues(operation, Outcome(err)).Inc()
}

func RecordCheckoutItems(units int) {
	checkoutItemsTotal.Add(float64(units))
}

func RecordCacheLookup(family string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	cacheLookupsTotal.WithLabelValues(family, result).Inc()
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Router resolves the route pattern of a request; *http.ServeMux satisfies it.
type Router interface {
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// Middleware labels requests by route pattern rather than raw path, so
// /api/cart/{cartId} is one series however many carts exist.
func Middleware(router Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			start := time.Now()
			httpRequestsInFlight.Inc()

			rw := newResponseWriter(w)

			pathPattern := "unmatched"
			if _, pattern := router.Handler(r); pattern != "" {
				pathPattern = pattern
			}

			defer func() {

				duration := time.Since(start)
				statusCodeStr := strconv.Itoa(rw.statusCode)

				httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
				httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
				httpRequestsInFlight.Dec()

			}()

			next.ServeHTTP(rw, r)

		})
	}
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
