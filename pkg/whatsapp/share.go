// Package whatsapp builds wa.me share links carrying a pre-filled bill
// summary. Opening the link is left to the shell; this package only
// produces the URL.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// Recipient selects whose number the share link targets.
type Recipient string

const (
	RecipientCustomer Recipient = "customer"
	RecipientOwner    Recipient = "owner"
)

// MessageInput carries everything the share message needs. Amounts are
// pre-formatted strings so the message matches the receipt exactly.
type MessageInput struct {
	SalonName      string
	BillNumber     string
	Date           string
	CustomerName   string
	CurrencySymbol string
	Items          []MessageItem
	Subtotal       float64
	TaxRate        float64
	TaxAmount      float64
	Discount       float64
	GrandTotal     float64
	InstagramLink  string
	ReviewLink     string
}

// MessageItem is one itemized line in the share message.
type MessageItem struct {
	Name      string
	Quantity  float64
	LineTotal float64
}

// BuildMessage renders the plain-text bill summary before encoding.
func BuildMessage(in MessageInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧾 *%s* Bill\n", in.SalonName)
	fmt.Fprintf(&b, "Bill No: %s\n", in.BillNumber)
	fmt.Fprintf(&b, "Date: %s\n", in.Date)
	if in.CustomerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", in.CustomerName)
	}
	b.WriteString("\n*Services:*\n")

	for _, item := range in.Items {
		fmt.Fprintf(&b, "- %s (x%s): %s%.2f\n", item.Name, formatQty(item.Quantity), in.CurrencySymbol, item.LineTotal)
	}

	b.WriteString("\n----------------\n")
	fmt.Fprintf(&b, "Subtotal: %s%.2f\n", in.CurrencySymbol, in.Subtotal)
	if in.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -%s%.2f\n", in.CurrencySymbol, in.Discount)
	}
	if in.TaxAmount > 0 {
		fmt.Fprintf(&b, "Tax (%s%%): %s%.2f\n", formatQty(in.TaxRate), in.CurrencySymbol, in.TaxAmount)
	}
	fmt.Fprintf(&b, "*Total Amount: %s%.2f*\n\n", in.CurrencySymbol, in.GrandTotal)

	if in.InstagramLink != "" {
		fmt.Fprintf(&b, "📸 *Follow us on Instagram:* %s\n", in.InstagramLink)
	}
	if in.ReviewLink != "" {
		fmt.Fprintf(&b, "⭐ *Rate us on Google:* %s\n", in.ReviewLink)
	}

	b.WriteString("\nThank you for visiting! ✨")
	return b.String()
}

// ShareURL builds the wa.me link for the given number. The number is
// reduced to digits; an empty result is an error since the link would
// open a broken chat.
func ShareURL(number string, in MessageInput) (string, error) {
	digits := cleanNumber(number)
	if digits == "" {
		return "", fmt.Errorf("whatsapp: no number provided for recipient")
	}
	// QueryEscape uses '+' for spaces; wa.me expects percent encoding.
	text := strings.ReplaceAll(url.QueryEscape(BuildMessage(in)), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text, nil
}

// cleanNumber strips every non-digit character.
func cleanNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatQty prints whole quantities without a decimal point and keeps
// up to two places otherwise.
func formatQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", q), "0"), ".")
}
