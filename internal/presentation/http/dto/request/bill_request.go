package request

// ServiceRowRequest is one raw service line from the billing form.
type ServiceRowRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// CreateBillRequest carries the billing form fields.
type CreateBillRequest struct {
	CustomerName     string              `json:"customer_name"`
	CustomerWhatsApp string              `json:"customer_whatsapp"`
	Date             string              `json:"date"`
	Time             string              `json:"time"`
	Services         []ServiceRowRequest `json:"services"`
	Discount         float64             `json:"discount"`
	DiscountReason   string              `json:"discount_reason"`
	PaymentMethod    string              `json:"payment_method"`
}
