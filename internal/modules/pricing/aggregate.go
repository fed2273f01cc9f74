// Package pricing computes the checkout totals shown to the customer and
// snapshotted onto orders and invoices. Amounts stay in decimal all the way
// through; rounding happens only at display time.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// GSTRate is the flat goods-and-services tax applied to the subtotal.
	GSTRate = decimal.RequireFromString("0.18")

	// FreeDeliveryThreshold: delivery is free when the subtotal is strictly
	// above this amount. A subtotal of exactly 5000 still pays delivery.
	FreeDeliveryThreshold = decimal.NewFromInt(5000)

	// DeliveryCharge is the flat fee below the free-delivery threshold.
	DeliveryCharge = decimal.NewFromInt(100)
)

var (
	ErrNegativePrice   = errors.New("pricing: negative price")
	ErrInvalidQuantity = errors.New("pricing: quantity must be positive")
)

// LineItem is one cart/order line. TotalPrice is computed upstream
// (unit price times quantity) and is only summed here.
type LineItem struct {
	UnitPrice  decimal.Decimal
	Quantity   int
	TotalPrice decimal.Decimal
}

// NewLineItem computes the line total from unit price and quantity,
// rejecting inputs that would propagate nonsense into the totals.
func NewLineItem(unitPrice decimal.Decimal, qty int) (LineItem, error) {
	if qty <= 0 {
		return LineItem{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if unitPrice.IsNegative() {
		return LineItem{}, fmt.Errorf("%w: %s", ErrNegativePrice, unitPrice)
	}
	return LineItem{
		UnitPrice:  unitPrice,
		Quantity:   qty,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}, nil
}

// Totals are the four checkout amounts. Total is always the exact sum of
// the other three; it is never re-derived from rounded display strings.
type Totals struct {
	Subtotal       decimal.Decimal
	GST            decimal.Decimal
	DeliveryCharge decimal.Decimal
	Total          decimal.Decimal
}

// Aggregate sums the line items into checkout totals:
//
//	subtotal = sum(total_price)
//	gst      = subtotal * 0.18
//	delivery = 0 if subtotal > 5000 else 100
//	total    = subtotal + gst + delivery
//
// An empty item list yields subtotal 0 and delivery 100 (0 is not > 5000).
// That an empty cart carries a delivery charge was inherited from the
// storefront's original policy and is kept as-is.
func Aggregate(items []LineItem) (Totals, error) {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.Quantity <= 0 {
			return Totals{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, it.Quantity)
		}
		if it.UnitPrice.IsNegative() || it.TotalPrice.IsNegative() {
			return Totals{}, fmt.Errorf("%w: unit=%s total=%s", ErrNegativePrice, it.UnitPrice, it.TotalPrice)
		}
		subtotal = subtotal.Add(it.TotalPrice)
	}

	gst := subtotal.Mul(GSTRate)

	delivery := DeliveryCharge
	if subtotal.GreaterThan(FreeDeliveryThreshold) {
		delivery = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		GST:            gst,
		DeliveryCharge: delivery,
		Total:          subtotal.Add(gst).Add(delivery),
	}, nil
}
