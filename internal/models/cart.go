package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartRow is one (user, product, quantity) record. There is at most one row
// per (UserID, ProductID).
type CartRow struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartLine is a cart row joined with the live product it points at. A slice
// of lines, in row-creation order, is the cart snapshot returned after every
// cart mutation.
type CartLine struct {
	ProductID   string          `json:"id"`
	CartID      uuid.UUID       `json:"cartId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      decimal.Decimal `json:"rating"`
	Stock       int             `json:"stock"`
	Quantity    int             `json:"quantity"`
}

func NewCartLine(row *CartRow, product *Product) CartLine {
	return CartLine{
		ProductID:   product.ID,
		CartID:      row.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Image:       product.Image,
		Rating:      product.Rating,
		Stock:       product.Stock,
		Quantity:    row.Quantity,
	}
}

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

// RequestedQuantity defaults to one when the client omits the field.
func (r *AddItemRequest) RequestedQuantity() int {
	if r.Quantity == nil {
		return 1
	}

	return *r.Quantity
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
