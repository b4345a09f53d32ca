package main

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/aaravmahajanofficial/storefront/docs"
	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
)

type routerDeps struct {
	users    service.UserService
	products service.ProductService
	carts    service.CartService
	auth     *middleware.AuthMiddleware
	limiter  middleware.Limiter
	rate     config.RateConfig
	origins  []string
	// optional
	health http.Handler
}

func newRouter(d routerDeps) http.Handler {

	userHandler := handlers.NewUserHandler(d.users)
	productHandler := handlers.NewProductHandler(d.products)
	cartHandler := handlers.NewCartHandler(d.carts)

	limit := middleware.RateLimit(d.limiter, d.rate.APIMaxRequests, d.rate.APIWindow)

	mux := http.NewServeMux()

	api := func(pattern string, h http.Handler) {
		mux.Handle(pattern, limit(h))
	}
	protected := func(pattern string, h http.HandlerFunc) {
		api(pattern, d.auth.Authenticate(h))
	}

	api("POST /api/auth/register", userHandler.Register())
	api("POST /api/auth/login", userHandler.Login())
	protected("GET /api/auth/me", userHandler.Profile())

	api("GET /api/products", productHandler.ListProducts())
	api("GET /api/products/{id}", productHandler.GetProduct())
	api("GET /api/products/category/{category}", productHandler.ListByCategory())
	api("GET /api/products/search/{query}", productHandler.Search())

	protected("GET /api/cart", cartHandler.GetCart())
	protected("POST /api/cart", cartHandler.AddItem())
	protected("PUT /api/cart/{cartId}", cartHandler.UpdateQuantity())
	protected("DELETE /api/cart/{cartId}", cartHandler.RemoveItem())
	protected("POST /api/cart/checkout", cartHandler.Checkout())

	api("GET /api/health", handlers.Health())

	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	if d.health != nil {
		mux.Handle("GET /healthz", d.health)
	}

	// Middleware chaining, innermost first
	var handler http.Handler = mux
	handler = metrics.Middleware(mux)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(d.origins)(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	return handler
}
