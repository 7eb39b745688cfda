package billing

import (
	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineAmount computes the amount of a billed-time line: hours × rate.
// Used by both services and repositories so the math lives in one place.
func LineAmount(hours, rate decimal.Decimal) decimal.Decimal {
	return hours.Mul(rate)
}

// ManualLineTotal computes a manual people line total: hours × rate.
// Always derived server-side, never trusted from caller input.
func ManualLineTotal(hours, rate decimal.Decimal) decimal.Decimal {
	return hours.Mul(rate)
}

// FeeTotal computes a flat fee total: quantity × unit price.
func FeeTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Subtotal composes the invoice subtotal from its three child collections.
func Subtotal(lines []domain.InvoiceLine, manualLines []domain.InvoiceManualLine, fees []domain.InvoiceFee) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount)
	}
	for _, ml := range manualLines {
		sum = sum.Add(ml.LineTotal)
	}
	for _, f := range fees {
		sum = sum.Add(f.FeeTotal)
	}
	return sum
}

// ComposeTotal derives the invoice total from subtotal and discount.
// The discount is clamped so the total never goes negative; the stored
// discount itself is left untouched.
func ComposeTotal(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
