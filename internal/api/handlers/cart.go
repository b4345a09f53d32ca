package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// currentUser reads the authenticated user, answering 401 when absent.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		logger.Warn("Unauthorized access attempt: missing user claims")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return uuid.Nil, logger, false
	}

	return claims.UserID, logger.With(slog.String("userID", claims.UserID.String())), true
}

// GetCart godoc
//	@Summary		Get the user's cart
//	@Description	Returns every cart line joined with its product, oldest first.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{array}		models.CartLine			"Current cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403	{object}	response.ErrorResponse	"Invalid token"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, logger, ok := currentUser(w, r)
		if !ok {
			return
		}

		lines, err := h.cartService.GetCart(r.Context(), userID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, lines)
	}
}

// AddItem godoc
//	@Summary		Add a product to the cart
//	@Description	Adds quantity (default 1) of a product, merging with an existing line. The resulting quantity may not exceed stock.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product and quantity"
//	@Success		200		{array}		models.CartLine			"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or insufficient stock"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, logger, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		lines, err := h.cartService.AddItem(r.Context(), userID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID), slog.Int("quantity", req.RequestedQuantity()))
		response.Success(w, http.StatusOK, lines)
	}
}

// UpdateQuantity godoc
//	@Summary		Set a cart line's quantity
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			cartId		path		string						true	"Cart line ID (UUID)"	Format(uuid)
//	@Param			quantity	body		models.UpdateQuantityRequest	true	"New quantity"
//	@Success		200			{array}		models.CartLine				"Updated cart"
//	@Failure		400			{object}	response.ErrorResponse		"Validation error or insufficient stock"
//	@Failure		401			{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404			{object}	response.ErrorResponse		"Cart item not found"
//	@Failure		500			{object}	response.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/{cartId} [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, logger, ok := currentUser(w, r)
		if !ok {
			return
		}

		cartID, err := utils.ParseID(r, "cartId")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		lines, err := h.cartService.UpdateQuantity(r.Context(), userID, cartID, req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart item", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, lines)
	}
}

// RemoveItem godoc
//	@Summary		Remove a line from the cart
//	@Tags			Cart
//	@Produce		json
//	@Param			cartId	path		string					true	"Cart line ID (UUID)"	Format(uuid)
//	@Success		200		{array}		models.CartLine			"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse	"Invalid cart id"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Cart item not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/{cartId} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, logger, ok := currentUser(w, r)
		if !ok {
			return
		}

		cartID, err := utils.ParseID(r, "cartId")
		if err != nil {
			logger.Warn("Invalid cart id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		lines, err := h.cartService.RemoveItem(r.Context(), userID, cartID)
		if err != nil {
			logger.Warn("Failed to remove cart item", slog.String("cartId", cartID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, lines)
	}
}

// Checkout godoc
//	@Summary		Buy everything in the cart
//	@Description	Validates stock for every line, decrements it and empties the cart in one transaction.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CheckoutResult	"Order summary"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart or insufficient stock"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/cart/checkout [post]
func (h *CartHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, logger, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := h.cartService.Checkout(r.Context(), userID)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
