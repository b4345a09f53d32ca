package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// CartService owns every cart mutation. Each call runs in one transaction
// and returns the cart as it stands after that transaction.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) ([]models.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, cartID uuid.UUID, quantity int) ([]models.CartLine, error)
	RemoveItem(ctx context.Context, userID, cartID uuid.UUID) ([]models.CartLine, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*models.CheckoutResult, error)
}

// CatalogInvalidator drops cached product data after stock changes.
type CatalogInvalidator interface {
	InvalidateProducts(ctx context.Context, ids ...string)
}

// OrderNotifier tells the buyer about a completed checkout. It must not fail
// the checkout, so it reports nothing back.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, userID uuid.UUID, result *models.CheckoutResult)
}

type cartService struct {
	tx       repository.Transactor
	carts    repository.CartRepository
	catalog  CatalogInvalidator
	notifier OrderNotifier
}

func NewCartService(tx repository.Transactor, carts repository.CartRepository, catalog CatalogInvalidator, notifier OrderNotifier) CartService {
	return &cartService{tx: tx, carts: carts, catalog: catalog, notifier: notifier}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {

	lines, err := s.carts.ListLines(ctx, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return lines, nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (lines []models.CartLine, err error) {

	defer func() { metrics.RecordCartOperation("add", err) }()

	quantity := req.RequestedQuantity()
	if quantity < 1 {
		return nil, errors.ValidationError("Quantity must be at least 1")
	}

	if req.ProductID == "" {
		return nil, errors.ValidationError("Product ID is required")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {

		product, err := st.Products.GetProductForUpdate(ctx, req.ProductID)
		if err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundError("Product not found")
			}
			return err
		}

		existing, err := st.Carts.FindItem(ctx, userID, product.ID)
		if err != nil && !stdErrors.Is(err, repository.ErrNotFound) {
			return err
		}

		row := &models.CartRow{UserID: userID, ProductID: product.ID, Quantity: quantity}
		if existing != nil {
			row.ID = existing.ID
			row.Quantity += existing.Quantity
		}

		if row.Quantity > product.Stock {
			return errors.InsufficientStockError(product.Name, product.Stock, row.Quantity)
		}

		if err := st.Carts.UpsertItem(ctx, row); err != nil {
			return err
		}

		lines, err = st.Carts.ListLines(ctx, userID)

		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "Failed to add item to cart", err)
	}

	return lines, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, cartID uuid.UUID, quantity int) (lines []models.CartLine, err error) {

	defer func() { metrics.RecordCartOperation("update", err) }()

	if quantity < 1 {
		return nil, errors.ValidationError("Quantity must be at least 1")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {

		row, err := st.Carts.FindItemByID(ctx, userID, cartID)
		if err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundError("Cart item not found")
			}
			return err
		}

		product, err := st.Products.GetProductForUpdate(ctx, row.ProductID)
		if err != nil {
			return err
		}

		if quantity > product.Stock {
			return errors.InsufficientStockError(product.Name, product.Stock, quantity)
		}

		if err := st.Carts.UpdateQuantity(ctx, userID, cartID, quantity); err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundError("Cart item not found")
			}
			return err
		}

		lines, err = st.Carts.ListLines(ctx, userID)

		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "Failed to update cart item", err)
	}

	return lines, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, cartID uuid.UUID) (lines []models.CartLine, err error) {

	defer func() { metrics.RecordCartOperation("remove", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {

		row, err := st.Carts.FindItemByID(ctx, userID, cartID)
		if err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundError("Cart item not found")
			}
			return err
		}

		// checkout reads the cart under the product locks
		if _, err := st.Products.GetProductForUpdate(ctx, row.ProductID); err != nil {
			return err
		}

		if err := st.Carts.DeleteItem(ctx, userID, cartID); err != nil {
			if stdErrors.Is(err, repository.ErrNotFound) {
				return errors.NotFoundError("Cart item not found")
			}
			return err
		}

		lines, err = st.Carts.ListLines(ctx, userID)

		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "Failed to remove cart item", err)
	}

	return lines, nil
}

func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID) (result *models.CheckoutResult, err error) {

	defer func() { metrics.RecordCartOperation("checkout", err) }()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st repository.Stores) error {

		lines, stock, err := lockCart(ctx, st, userID)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			return errors.EmptyCartError()
		}

		// validate everything before touching anything
		for _, line := range lines {
			p, ok := stock[line.ProductID]
			if !ok {
				return errors.NotFoundError("Product not found").WithDetail(line.Name)
			}

			if line.Quantity > p.Stock {
				return errors.InsufficientStockError(p.Name, p.Stock, line.Quantity)
			}
		}

		result = &models.CheckoutResult{
			Message:      models.CheckoutMessage,
			OrderSummary: make([]models.OrderLine, 0, len(lines)),
			Total:        decimal.Zero,
		}

		for _, line := range lines {
			p := stock[line.ProductID]

			if err := st.Products.DecrementStock(ctx, p.ID, line.Quantity); err != nil {
				return err
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			result.OrderSummary = append(result.OrderSummary, models.OrderLine{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  line.Quantity,
				Price:     p.Price,
				LineTotal: lineTotal,
			})
			result.Total = result.Total.Add(lineTotal)
		}

		rowIDs := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			rowIDs = append(rowIDs, line.CartID)
		}

		deleted, err := st.Carts.DeleteItems(ctx, userID, rowIDs)
		if err != nil {
			return err
		}

		if deleted != int64(len(rowIDs)) {
			return fmt.Errorf("cart changed during checkout: removed %d of %d rows", deleted, len(rowIDs))
		}

		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "Checkout failed", err)
	}

	ids := make([]string, 0, len(result.OrderSummary))
	units := 0
	for _, line := range result.OrderSummary {
		ids = append(ids, line.ProductID)
		units += line.Quantity
	}

	metrics.RecordCheckoutItems(units)

	if s.catalog != nil {
		s.catalog.InvalidateProducts(ctx, ids...)
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderPlaced(ctx, userID, result)
	}

	middleware.LoggerFromContext(ctx).Info("Checkout completed",
		slog.Int("lines", len(result.OrderSummary)),
		slog.String("total", result.Total.StringFixed(2)))

	return result, nil
}

// lockCart locks every product in the user's cart and returns the cart as
// read under those locks. Cart rows only change while their product is
// locked, so the returned lines stay valid until the transaction ends. Rows
// added for a product not yet locked trigger another round.
func lockCart(ctx context.Context, st repository.Stores, userID uuid.UUID) ([]models.CartLine, map[string]*models.Product, error) {

	stock := make(map[string]*models.Product)
	requested := make(map[string]bool)

	lines, err := st.Carts.ListLines(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	for {
		var missing []string
		for _, line := range lines {
			if !requested[line.ProductID] {
				requested[line.ProductID] = true
				missing = append(missing, line.ProductID)
			}
		}

		if len(missing) == 0 {
			return lines, stock, nil
		}

		locked, err := st.Products.LockProducts(ctx, missing)
		if err != nil {
			return nil, nil, err
		}

		for _, p := range locked {
			stock[p.ID] = p
		}

		if lines, err = st.Carts.ListLines(ctx, userID); err != nil {
			return nil, nil, err
		}
	}
}

// fail passes AppErrors through and turns store failures into a 500.
func (s *cartService) fail(ctx context.Context, message string, err error) error {
	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	middleware.LoggerFromContext(ctx).Error(message, slog.String("error", err.Error()))

	return errors.DatabaseError(message).WithError(err)
}
