package orders

import "github.com/shopspring/decimal"

// Default pricing parameters: 10% tax, flat shipping.
const (
	DefaultTaxRate  = 0.10
	DefaultShipping = 10.00
)

// Line is a price-at-time line item supplied by the caller. Prices are
// never re-read from the live catalog here.
type Line struct {
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// CalculateTotals prices an item sequence:
//
//	subtotal = Σ price*quantity
//	tax      = subtotal * taxRate
//	total    = subtotal + tax + shipping
//
// Each value is rounded to 2 decimal places half-to-even. An empty sequence
// yields subtotal = tax = 0 and total = shipping. Negative prices or
// quantities are not rejected; validation belongs to the caller.
func CalculateTotals(items []Line, taxRate, shipping float64) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(
			decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	rate := decimal.NewFromFloat(taxRate)
	ship := decimal.NewFromFloat(shipping).RoundBank(2)

	subtotal = subtotal.RoundBank(2)
	tax := subtotal.Mul(rate).RoundBank(2)
	total := subtotal.Add(tax).Add(ship).RoundBank(2)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: ship.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

// LineTotal is the snapshot total of a single line, rounded like the order
// totals.
func LineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		RoundBank(2).
		InexactFloat64()
}
