package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	totals := CalculateTotals([]Line{
		{Price: 10.00, Quantity: 2},
		{Price: 5.50, Quantity: 1},
	}, DefaultTaxRate, DefaultShipping)

	assert.Equal(t, 25.50, totals.Subtotal)
	assert.Equal(t, 2.55, totals.Tax)
	assert.Equal(t, 10.00, totals.Shipping)
	assert.Equal(t, 38.05, totals.Total)
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil, DefaultTaxRate, DefaultShipping)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Tax)
	assert.Equal(t, DefaultShipping, totals.Total)
}

func TestCalculateTotalsBankersRounding(t *testing.T) {
	// 1.25 * 0.10 = 0.125, which rounds half to even: 0.12.
	totals := CalculateTotals([]Line{{Price: 1.25, Quantity: 1}}, DefaultTaxRate, 0)
	assert.Equal(t, 0.12, totals.Tax)

	// 1.75 * 0.10 = 0.175 rounds up to 0.18.
	totals = CalculateTotals([]Line{{Price: 1.75, Quantity: 1}}, DefaultTaxRate, 0)
	assert.Equal(t, 0.18, totals.Tax)
}

func TestCalculateTotalsNegativeLinesPassThrough(t *testing.T) {
	// Negative amounts are not rejected; they simply reduce the subtotal.
	totals := CalculateTotals([]Line{
		{Price: 20.00, Quantity: 1},
		{Price: -5.00, Quantity: 1},
	}, DefaultTaxRate, DefaultShipping)

	assert.Equal(t, 15.00, totals.Subtotal)
	assert.Equal(t, 1.50, totals.Tax)
	assert.Equal(t, 26.50, totals.Total)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 21.00, LineTotal(10.50, 2))
	assert.Equal(t, 0.30, LineTotal(0.10, 3))
}
