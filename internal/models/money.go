package models

import "github.com/shopspring/decimal"

// Prices, ratings and totals travel as JSON numbers; the storefront client
// formats them with Number.toFixed.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
