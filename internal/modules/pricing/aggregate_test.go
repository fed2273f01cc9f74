package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(t *testing.T, unit string, qty int) LineItem {
	t.Helper()
	it, err := NewLineItem(decimal.RequireFromString(unit), qty)
	require.NoError(t, err)
	return it
}

func TestAggregateSingleItem(t *testing.T) {
	totals, err := Aggregate([]LineItem{item(t, "4500", 1)})
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(4500)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.GST.Equal(decimal.NewFromInt(810)), "gst %s", totals.GST)
	assert.True(t, totals.DeliveryCharge.Equal(decimal.NewFromInt(100)), "delivery %s", totals.DeliveryCharge)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(5410)), "total %s", totals.Total)
}

func TestAggregateFreeDelivery(t *testing.T) {
	totals, err := Aggregate([]LineItem{
		item(t, "3000", 1),
		item(t, "2600", 1),
	})
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(5600)))
	assert.True(t, totals.GST.Equal(decimal.NewFromInt(1008)))
	assert.True(t, totals.DeliveryCharge.IsZero())
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(6608)))
}

func TestAggregateThresholdStrictlyGreater(t *testing.T) {
	// exactly 5000 still pays delivery
	at, err := Aggregate([]LineItem{item(t, "5000", 1)})
	require.NoError(t, err)
	assert.True(t, at.DeliveryCharge.Equal(decimal.NewFromInt(100)))

	// one paisa over crosses it
	over, err := Aggregate([]LineItem{item(t, "5000.01", 1)})
	require.NoError(t, err)
	assert.True(t, over.DeliveryCharge.IsZero())
}

func TestAggregateEmpty(t *testing.T) {
	totals, err := Aggregate(nil)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.GST.IsZero())
	assert.True(t, totals.DeliveryCharge.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(100)))
}

func TestAggregateIdempotent(t *testing.T) {
	items := []LineItem{item(t, "249.50", 4), item(t, "18.75", 3)}

	first, err := Aggregate(items)
	require.NoError(t, err)
	second, err := Aggregate(items)
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.GST.Equal(second.GST))
	assert.True(t, first.DeliveryCharge.Equal(second.DeliveryCharge))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestTotalIsSumOfParts(t *testing.T) {
	items := []LineItem{item(t, "1234.56", 3), item(t, "0.01", 7)}
	totals, err := Aggregate(items)
	require.NoError(t, err)

	sum := totals.Subtotal.Add(totals.GST).Add(totals.DeliveryCharge)
	assert.True(t, totals.Total.Equal(sum))
	assert.False(t, totals.Total.IsNegative())
}

func TestNewLineItemComputesTotal(t *testing.T) {
	it := item(t, "12.50", 4)
	assert.True(t, it.TotalPrice.Equal(decimal.NewFromInt(50)))
}

func TestRejectsBadInput(t *testing.T) {
	_, err := NewLineItem(decimal.NewFromInt(10), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLineItem(decimal.NewFromInt(-1), 2)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = Aggregate([]LineItem{{
		UnitPrice:  decimal.NewFromInt(10),
		Quantity:   -2,
		TotalPrice: decimal.NewFromInt(-20),
	}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Aggregate([]LineItem{{
		UnitPrice:  decimal.NewFromInt(-10),
		Quantity:   2,
		TotalPrice: decimal.NewFromInt(-20),
	}})
	assert.ErrorIs(t, err, ErrNegativePrice)
}
