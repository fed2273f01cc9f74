package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹0.00", Money(decimal.Zero))
	assert.Equal(t, "₹100.00", Money(decimal.NewFromInt(100)))
	assert.Equal(t, "₹5410.00", Money(decimal.NewFromInt(5410)))
	// rounding happens here, not in pricing
	assert.Equal(t, "₹810.01", Money(decimal.RequireFromString("810.005")))
}

func TestMoneyWithCode(t *testing.T) {
	amt := decimal.RequireFromString("12.5")
	assert.Equal(t, "₹12.50", MoneyWithCode(amt, "INR"))
	assert.Equal(t, "₹12.50", MoneyWithCode(amt, ""))
	assert.Equal(t, "$12.50", MoneyWithCode(amt, "USD"))
	assert.Equal(t, "12.50 AUD", MoneyWithCode(amt, "AUD"))
}
