package entity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/enum"
)

// ServiceItem is a single billed line within a bill.
// Items are mutable while the bill is being assembled; rows with an
// empty name are dropped at finalization.
type ServiceItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// LineTotal returns price * quantity for this item.
func (s ServiceItem) LineTotal() float64 {
	return s.Price * s.Quantity
}

// Bill is a finalized transaction record. It is never mutated after
// creation; history entries are removed only by a full purge (manual
// clear or day-rollover archive).
type Bill struct {
	ID               string             `json:"id"`
	BillNumber       string             `json:"billNumber"`
	CustomerName     string             `json:"customerName"`
	CustomerWhatsApp string             `json:"customerWhatsApp"`
	Date             time.Time          `json:"date"`
	Services         []ServiceItem      `json:"services"`
	Subtotal         float64            `json:"subtotal"`
	TaxAmount        float64            `json:"taxAmount"`
	Discount         float64            `json:"discount"`
	DiscountReason   string             `json:"discountReason,omitempty"`
	GrandTotal       float64            `json:"grandTotal"`
	PaymentMethod    enum.PaymentMethod `json:"paymentMethod"`
	OfferImageBase64 string             `json:"offerImageBase64,omitempty"`
}

// NewBillID derives a bill ID from the creation instant. Millisecond
// precision matches the IDs already present in stored histories.
func NewBillID(now time.Time) string {
	return fmt.Sprintf("%d", now.UnixMilli())
}

// NewBillNumber generates a display bill number. It is advisory only
// and not guaranteed unique across devices.
func NewBillNumber() string {
	return fmt.Sprintf("BILL-%06d", rand.Intn(100000))
}
