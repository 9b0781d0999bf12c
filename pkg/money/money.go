// Package money holds the pure total-computation rules shared by the
// bill assembler, the receipt formatter and the share message builder.
package money

import "fmt"

// Line is the minimal shape the calculator needs from a billed item.
type Line interface {
	LineTotal() float64
}

// Subtotal sums price*quantity over all items. An empty sequence
// yields 0.
func Subtotal[T Line](items []T) float64 {
	var sum float64
	for _, item := range items {
		sum += item.LineTotal()
	}
	return sum
}

// Tax applies the percentage rate to the subtotal. When tax is
// disabled the result is always 0, regardless of the configured rate.
func Tax(subtotal, taxRate float64, enableTax bool) float64 {
	if !enableTax {
		return 0
	}
	return subtotal * taxRate / 100
}

// GrandTotal is subtotal + tax - discount, clamped at zero. A discount
// larger than the bill never produces a negative total.
func GrandTotal(subtotal, tax, discount float64) float64 {
	total := subtotal + tax - discount
	if total < 0 {
		return 0
	}
	return total
}

// Format renders an amount for display with the currency symbol and
// two decimal places. Formatting is presentation only; stored values
// keep full precision.
func Format(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
