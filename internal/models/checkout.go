package models

import "github.com/shopspring/decimal"

const CheckoutMessage = "¡Felicidades! Ya lo compraste."

type OrderLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"total"`
}

type CheckoutResult struct {
	Message      string          `json:"message"`
	OrderSummary []OrderLine     `json:"orderSummary"`
	Total        decimal.Decimal `json:"total"`
}
