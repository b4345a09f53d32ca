package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyIsEncodedAsNumber(t *testing.T) {
	// Arrange
	result := CheckoutResult{
		Message: CheckoutMessage,
		OrderSummary: []OrderLine{
			{ProductID: "3", Name: "Smart Desk Lamp", Quantity: 2, Price: decimal.RequireFromString("79.99"), LineTotal: decimal.RequireFromString("159.98")},
		},
		Total: decimal.RequireFromString("159.98"),
	}

	// Act
	data, err := json.Marshal(result)
	require.NoError(t, err)

	// Assert
	assert.JSONEq(t, `{
		"message": "¡Felicidades! Ya lo compraste.",
		"orderSummary": [{"productId":"3","name":"Smart Desk Lamp","quantity":2,"price":79.99,"total":159.98}],
		"total": 159.98
	}`, string(data))

	var decoded CheckoutResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, result.Total.Equal(decoded.Total))
}
