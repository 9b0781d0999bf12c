package money

import (
	"math"
	"testing"
)

type line struct {
	price float64
	qty   float64
}

func (l line) LineTotal() float64 { return l.price * l.qty }

func TestSubtotal(t *testing.T) {
	tests := []struct {
		name  string
		items []line
		want  float64
	}{
		{
			name:  "empty sequence",
			items: nil,
			want:  0,
		},
		{
			name:  "single item",
			items: []line{{price: 100, qty: 1}},
			want:  100,
		},
		{
			name:  "multiple items with quantities",
			items: []line{{price: 100, qty: 2}, {price: 49.5, qty: 1}, {price: 10, qty: 0.5}},
			want:  254.5,
		},
		{
			name:  "zero-priced item",
			items: []line{{price: 0, qty: 3}},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subtotal(tt.items)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Subtotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTax(t *testing.T) {
	tests := []struct {
		name      string
		subtotal  float64
		rate      float64
		enableTax bool
		want      float64
	}{
		{name: "disabled tax ignores rate", subtotal: 100, rate: 18, enableTax: false, want: 0},
		{name: "enabled tax applies rate", subtotal: 100, rate: 10, enableTax: true, want: 10},
		{name: "fractional rate", subtotal: 200, rate: 2.5, enableTax: true, want: 5},
		{name: "zero subtotal", subtotal: 0, rate: 18, enableTax: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tax(tt.subtotal, tt.rate, tt.enableTax)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Tax() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrandTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		tax      float64
		discount float64
		want     float64
	}{
		{name: "no discount", subtotal: 100, tax: 10, discount: 0, want: 110},
		{name: "discount applied", subtotal: 100, tax: 10, discount: 20, want: 90},
		{name: "discount exceeding total clamps to zero", subtotal: 50, tax: 0, discount: 80, want: 0},
		{name: "discount equal to total", subtotal: 40, tax: 10, discount: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrandTotal(tt.subtotal, tt.tax, tt.discount)
			if got != tt.want {
				t.Errorf("GrandTotal() = %v, want %v", got, tt.want)
			}
			if got < 0 {
				t.Errorf("GrandTotal() = %v, must never be negative", got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format("₹", 90); got != "₹90.00" {
		t.Errorf("Format() = %q, want %q", got, "₹90.00")
	}
	if got := Format("$", 12.345); got != "$12.35" {
		t.Errorf("Format() = %q, want %q", got, "$12.35")
	}
}
