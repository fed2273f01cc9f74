package products

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tiers() []VariantPrice {
	return []VariantPrice{
		{MinQty: 1, UnitPrice: dec("10.00"), Active: true},
		{MinQty: 100, UnitPrice: dec("8.50"), Active: true},
		{MinQty: 500, UnitPrice: dec("6.00"), Active: true},
		{MinQty: 250, UnitPrice: dec("1.00"), Active: false}, // disabled tier
	}
}

func TestTierPrice(t *testing.T) {
	cases := []struct {
		qty  int
		want string
	}{
		{1, "10.00"},
		{99, "10.00"},
		{100, "8.50"},
		{499, "8.50"},
		{500, "6.00"},
		{10000, "6.00"},
		{250, "8.50"}, // inactive tier skipped
	}
	for _, tc := range cases {
		got, ok := TierPrice(tiers(), tc.qty)
		require.True(t, ok, "qty %d", tc.qty)
		assert.True(t, got.Equal(dec(tc.want)), "qty %d: got %s want %s", tc.qty, got, tc.want)
	}
}

func TestTierPriceNoApplicableTier(t *testing.T) {
	prices := []VariantPrice{{MinQty: 50, UnitPrice: dec("5"), Active: true}}
	_, ok := TierPrice(prices, 10)
	assert.False(t, ok)

	_, ok = TierPrice(nil, 10)
	assert.False(t, ok)
}

func TestApplyDiscount(t *testing.T) {
	unit := dec("200")

	pct := Discount{Kind: DiscountPercent, Value: dec("15")}
	assert.True(t, ApplyDiscount(unit, pct).Equal(dec("170")))

	flat := Discount{Kind: DiscountFlat, Value: dec("30")}
	assert.True(t, ApplyDiscount(unit, flat).Equal(dec("170")))

	// flat discount larger than the price clamps at zero
	huge := Discount{Kind: DiscountFlat, Value: dec("1000")}
	assert.True(t, ApplyDiscount(unit, huge).IsZero())

	// unknown kind leaves the price alone
	odd := Discount{Kind: "bogus", Value: dec("50")}
	assert.True(t, ApplyDiscount(unit, odd).Equal(unit))
}

func TestDiscountWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	open := Discount{Active: true}
	assert.True(t, open.InWindow(now))

	assert.True(t, Discount{Active: true, StartsAt: &past, EndsAt: &future}.InWindow(now))
	assert.False(t, Discount{Active: true, StartsAt: &future}.InWindow(now))
	assert.False(t, Discount{Active: true, EndsAt: &past}.InWindow(now))
	assert.False(t, Discount{Active: false}.InWindow(now))
}
