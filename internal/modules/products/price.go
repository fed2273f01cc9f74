package products

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoPrice = errors.New("products: variant has no price tier for quantity")

var hundred = decimal.NewFromInt(100)

// TierPrice picks the unit price for a quantity: the tier with the highest
// MinQty that the quantity reaches. Inactive tiers are skipped.
func TierPrice(prices []VariantPrice, qty int) (decimal.Decimal, bool) {
	best := -1
	var unit decimal.Decimal
	for _, p := range prices {
		if !p.Active || p.MinQty > qty {
			continue
		}
		if p.MinQty > best {
			best = p.MinQty
			unit = p.UnitPrice
		}
	}
	return unit, best >= 0
}

// ApplyDiscount reduces a unit price by a percent or flat discount.
// Never goes below zero.
func ApplyDiscount(unit decimal.Decimal, d Discount) decimal.Decimal {
	var out decimal.Decimal
	switch d.Kind {
	case DiscountPercent:
		out = unit.Sub(unit.Mul(d.Value).Div(hundred))
	case DiscountFlat:
		out = unit.Sub(d.Value)
	default:
		return unit
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// EffectiveUnitPrice resolves what one unit of a variant costs at the given
// quantity: tier lookup, then the product's active discount if any.
func (r *Repo) EffectiveUnitPrice(ctx context.Context, v Variant, qty int, at time.Time) (decimal.Decimal, error) {
	unit, ok := TierPrice(v.Prices, qty)
	if !ok {
		return decimal.Decimal{}, ErrNoPrice
	}
	d, found, err := r.ActiveDiscount(ctx, v.ProductID, at)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if found {
		unit = ApplyDiscount(unit, d)
	}
	return unit, nil
}
