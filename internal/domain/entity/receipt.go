package entity

// ReceiptHeader holds the salon header printed at the top of a receipt.
type ReceiptHeader struct {
	SalonName string `json:"salon_name"`
	Address   string `json:"address,omitempty"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// ReceiptItem is a single line on a printed receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Receipt is a value object describing a printable bill. It is composed
// from a Bill and the current settings at print time; it is never
// persisted.
type Receipt struct {
	Header           ReceiptHeader `json:"header"`
	BillNumber       string        `json:"bill_number"`
	Date             string        `json:"date"`
	PaymentMethod    string        `json:"payment_method,omitempty"`
	Items            []ReceiptItem `json:"items"`
	CurrencySymbol   string        `json:"currency_symbol"`
	Subtotal         float64       `json:"subtotal"`
	Tax              float64       `json:"tax"`
	Discount         float64       `json:"discount"`
	GrandTotal       float64       `json:"grand_total"`
	GoogleReviewLink string        `json:"google_review_link,omitempty"`
	InstagramLink    string        `json:"instagram_link,omitempty"`
}
