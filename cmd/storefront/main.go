package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/repositories/memory"
	"github.com/aaravmahajanofficial/storefront/internal/seed"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/tracing"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
)

//	@title						Storefront API
//	@version					1.0
//	@description				Catalog, authentication and cart/checkout backend for the storefront.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	var repos *repository.Repository
	if cfg.Database.Driver == config.DriverMemory {
		repos = memory.New()
		slog.Warn("Using the in-memory store, data is lost on restart")
	} else {
		repos, err = repository.New(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup, optional
	var redisClient *redis.Client
	limiter := repository.NewNoopRateLimiter()
	productCache := cache.NewNoopCache()

	if !cfg.RedisConnect.Disabled {
		redisClient, err = repository.NewRedisClient(cfg)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}

		defer redisClient.Close()

		limiter = repository.NewRateLimiter(redisClient)
		productCache = cache.NewRedisCache(redisClient, &cfg.Cache)
	} else {
		slog.Warn("Redis disabled, rate limiting and caching are off")
	}

	if !cfg.Seed.Skip {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := seed.Run(seedCtx, repos.User, repos.Product)
		cancel()
		if err != nil {
			slog.Error("❌ Error seeding the database", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	userService := service.NewUserService(repos.User, limiter, cfg.RateConfig, cfg.Security)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.DefaultTTL)
	notificationService := service.NewNotificationService(repos.User, emailService)
	cartService := service.NewCartService(repos.Tx, repos.Cart, productService, notificationService)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := newRouter(routerDeps{
		users:    userService,
		products: productService,
		carts:    cartService,
		auth:     middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey), userService),
		limiter:  limiter,
		rate:     cfg.RateConfig,
		origins:  cfg.HTTPServer.AllowedOrigins,
		health:   healthHandler.Handler(),
	})

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("driver", cfg.Database.Driver))

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown failed", slog.String("error", err.Error()))
	}
}
