package order

import "github.com/shopspring/decimal"

// Flat placeholder rates. Tax engines and carrier pricing are out of scope.
var (
	TaxRate      = decimal.RequireFromString("0.10")
	ShippingFlat = decimal.RequireFromString("10.00")
)

// Totals is the price breakdown of an order at creation time.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives the order totals from its lines: subtotal is the sum
// of line subtotals, tax is 10% of that rounded to cents (half away from
// zero), shipping is the flat fee. Decimal throughout; repeated computation
// over the same lines always yields identical results.
func ComputeTotals(items []Item) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineSubtotal())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	total := subtotal.Add(tax).Add(ShippingFlat)
	return Totals{Subtotal: subtotal, Tax: tax, Shipping: ShippingFlat, Total: total}
}
