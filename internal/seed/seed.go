// Package seed fills an empty database with the demo catalog and accounts.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

const DemoPassword = "password123"

var demoUsers = []models.User{
	{Email: "user1@example.com", Name: "User One"},
	{Email: "user2@example.com", Name: "User Two"},
}

var catalog = []models.Product{
	{
		ID:          "1",
		Name:        "Quantum Headphones",
		Description: "High-fidelity audio with active noise cancellation and 40-hour battery life.",
		Price:       decimal.RequireFromString("299.99"),
		Category:    "Electronics",
		Image:       "https://picsum.photos/seed/hp1/600/600",
		Rating:      decimal.RequireFromString("4.8"),
		Stock:       15,
	},
	{
		ID:          "2",
		Name:        "Minimalist Watch",
		Description: "A sleek, titanium-cased timepiece with a scratch-resistant sapphire crystal.",
		Price:       decimal.RequireFromString("185.00"),
		Category:    "Accessories",
		Image:       "https://picsum.photos/seed/watch2/600/600",
		Rating:      decimal.RequireFromString("4.5"),
		Stock:       22,
	},
	{
		ID:          "3",
		Name:        "Smart Desk Lamp",
		Description: "Adjustable color temperature and brightness with built-in wireless charging.",
		Price:       decimal.RequireFromString("79.99"),
		Category:    "Home",
		Image:       "https://picsum.photos/seed/lamp3/600/600",
		Rating:      decimal.RequireFromString("4.2"),
		Stock:       45,
	},
	{
		ID:          "4",
		Name:        "Eco-Friendly Backpack",
		Description: "Made from 100% recycled ocean plastics. Water-resistant and modular design.",
		Price:       decimal.RequireFromString("120.00"),
		Category:    "Apparel",
		Image:       "https://picsum.photos/seed/bag4/600/600",
		Rating:      decimal.RequireFromString("4.9"),
		Stock:       10,
	},
	{
		ID:          "5",
		Name:        "Mechanical Keyboard",
		Description: "RGB backlit, hot-swappable switches, and ultra-low latency wireless connection.",
		Price:       decimal.RequireFromString("159.99"),
		Category:    "Electronics",
		Image:       "https://picsum.photos/seed/kb5/600/600",
		Rating:      decimal.RequireFromString("4.7"),
		Stock:       8,
	},
	{
		ID:          "6",
		Name:        "Linen Comfort Shirt",
		Description: "Breathable organic linen, perfect for summer days and casual evenings.",
		Price:       decimal.RequireFromString("55.00"),
		Category:    "Apparel",
		Image:       "https://picsum.photos/seed/shirt6/600/600",
		Rating:      decimal.RequireFromString("4.4"),
		Stock:       30,
	},
}

// Run inserts the demo users and products, each only into an empty table.
func Run(ctx context.Context, users repository.UserRepository, products repository.ProductRepository) error {

	userCount, err := users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}

		for _, u := range demoUsers {
			u.Password = string(hashed)
			if err := users.CreateUser(ctx, &u); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}

		slog.Info("Users seeded", slog.Int("count", len(demoUsers)))
	}

	productCount, err := products.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if productCount == 0 {
		for _, p := range catalog {
			if err := products.CreateProduct(ctx, &p); err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
			}
		}

		slog.Info("Products seeded", slog.Int("count", len(catalog)))
	}

	return nil
}
