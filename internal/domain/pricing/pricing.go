// Package pricing computes order totals from cart lines. All arithmetic is
// exact decimal; rounding happens once, at the display/persistence boundary,
// via Quote.Rounded. Subtotal is never re-derived by dividing a stored total
// by the tax factor.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/bellavista/ordering/internal/domain/cart"
)

// TaxRate is the flat sales tax applied to every order.
var TaxRate = decimal.RequireFromString("0.08")

// Quote holds the monetary breakdown of a cart. Values are unrounded until
// Rounded is applied.
type Quote struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Calculate derives the subtotal, tax, and grand total for the given lines.
func Calculate(lines []cart.Line) Quote {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := subtotal.Mul(TaxRate)
	return Quote{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Rounded applies the display rule: subtotal and tax are each rounded
// half-up to two places, and the total is their sum. Summing the rounded
// components keeps the displayed figures internally consistent.
func (q Quote) Rounded() Quote {
	s := q.Subtotal.Round(2)
	t := q.Tax.Round(2)
	return Quote{Subtotal: s, Tax: t, Total: s.Add(t)}
}
