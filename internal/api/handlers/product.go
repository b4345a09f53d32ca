package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts godoc
//	@Summary		List all products
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}		models.Product			"Every product, ordered by id"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.Product			"Product"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := r.PathValue("id")

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to get product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// ListByCategory godoc
//	@Summary		List products in a category
//	@Description	The category "All" returns every product.
//	@Tags			Products
//	@Produce		json
//	@Param			category	path		string					true	"Category name"
//	@Success		200			{array}		models.Product			"Matching products"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/category/{category} [get]
func (h *ProductHandler) ListByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		category := r.PathValue("category")

		products, err := h.productService.ListByCategory(r.Context(), category)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to list products by category", slog.String("category", category), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// Search godoc
//	@Summary		Search products
//	@Description	Case-insensitive substring match on name and description.
//	@Tags			Products
//	@Produce		json
//	@Param			query	path		string					true	"Search text"
//	@Success		200		{array}		models.Product			"Matching products"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/search/{query} [get]
func (h *ProductHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.Search(r.Context(), r.PathValue("query"))
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Product search failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
