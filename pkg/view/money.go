package view

import "github.com/shopspring/decimal"

// Money renders an amount for display. Amounts are carried as decimals all
// the way from pricing; this is the only place they get rounded.
func Money(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// MoneyWithCode renders with an explicit currency code for the odd surface
// (invoices, exports) that should not rely on a glyph.
func MoneyWithCode(amount decimal.Decimal, code string) string {
	switch code {
	case "INR", "":
		return Money(amount)
	case "USD":
		return "$" + amount.StringFixed(2)
	case "EUR":
		return "€" + amount.StringFixed(2)
	default:
		return amount.StringFixed(2) + " " + code
	}
}
