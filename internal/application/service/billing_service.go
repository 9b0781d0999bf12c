package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/enum"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
	"github.com/glowdesk/salonpos-api/pkg/apperror"
	"github.com/glowdesk/salonpos-api/pkg/money"
	"github.com/glowdesk/salonpos-api/pkg/pagination"
	"github.com/glowdesk/salonpos-api/pkg/whatsapp"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	displayLayout  = "2006-01-02 15:04"
	remotePushWait = 15 * time.Second
)

// BillingService assembles bills, persists them and hands them to the
// best-effort collaborators (remote replica, archive sink, share
// links).
type BillingService struct {
	store   repository.Store
	remote  repository.RemoteBills // nil when sync is disabled
	archive repository.ArchiveSink
	now     func() time.Time
}

// NewBillingService creates a new billing service. remote may be nil.
func NewBillingService(store repository.Store, remote repository.RemoteBills, archive repository.ArchiveSink) *BillingService {
	return &BillingService{
		store:   store,
		remote:  remote,
		archive: archive,
		now:     time.Now,
	}
}

// ServiceItemInput is one raw service row from the billing form.
type ServiceItemInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// CreateBillInput carries the raw form fields for a new bill.
type CreateBillInput struct {
	CustomerName     string             `json:"customer_name"`
	CustomerWhatsApp string             `json:"customer_whatsapp"`
	Date             string             `json:"date"` // "2006-01-02", empty = today
	Time             string             `json:"time"` // "15:04", empty = now
	Services         []ServiceItemInput `json:"services"`
	Discount         float64            `json:"discount"`
	DiscountReason   string             `json:"discount_reason"`
	PaymentMethod    string             `json:"payment_method"`
}

// BuildBill assembles a fully populated bill from form input and a
// settings snapshot. It is pure: persistence is a separate call.
func (s *BillingService) BuildBill(input CreateBillInput, settings entity.SalonSettings) (entity.Bill, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "Please enter customer name"})
	}

	// Blank rows are dropped; whatever survives is the bill.
	services := make([]entity.ServiceItem, 0, len(input.Services))
	for _, row := range input.Services {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		item := entity.ServiceItem{
			ID:       uuid.New().String(),
			Name:     name,
			Price:    row.Price,
			Quantity: row.Quantity,
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		// Auto-fill from the service menu when the row carries no price.
		if item.Price == 0 {
			for _, ps := range settings.PredefinedServices {
				if ps.Name == name {
					item.Price = ps.Price
					break
				}
			}
		}
		services = append(services, item)
	}
	if len(services) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "services", Message: "Please add at least one service"})
	}
	if len(fieldErrors) > 0 {
		return entity.Bill{}, apperror.NewValidationError(fieldErrors)
	}

	date, err := s.combineDateTime(input.Date, input.Time)
	if err != nil {
		return entity.Bill{}, apperror.NewBadRequestError(err.Error())
	}

	subtotal := money.Subtotal(services)
	tax := money.Tax(subtotal, settings.TaxRate, settings.EnableTax)
	grandTotal := money.GrandTotal(subtotal, tax, input.Discount)

	now := s.now()
	return entity.Bill{
		ID:               entity.NewBillID(now),
		BillNumber:       entity.NewBillNumber(),
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerWhatsApp: input.CustomerWhatsApp,
		Date:             date,
		Services:         services,
		Subtotal:         subtotal,
		TaxAmount:        tax,
		Discount:         input.Discount,
		DiscountReason:   input.DiscountReason,
		GrandTotal:       grandTotal,
		PaymentMethod:    enum.ParsePaymentMethod(input.PaymentMethod),
		OfferImageBase64: settings.GlobalOfferImage,
	}, nil
}

// CreateBill assembles and persists a bill, then pushes it to the
// remote replica as a detached task. Local persistence is the source
// of truth; the push result is only logged.
func (s *BillingService) CreateBill(input CreateBillInput) (entity.Bill, error) {
	settings := s.store.LoadSettings()
	bill, err := s.BuildBill(input, settings)
	if err != nil {
		return entity.Bill{}, err
	}
	if err := s.store.AddBill(bill); err != nil {
		return entity.Bill{}, err
	}

	if s.remote != nil {
		go func(bill entity.Bill) {
			ctx, cancel := context.WithTimeout(context.Background(), remotePushWait)
			defer cancel()
			if err := s.remote.SaveBill(ctx, bill); err != nil {
				log.Printf("Remote sync failed, bill %s saved locally: %v", bill.ID, err)
			}
		}(bill)
	}

	return bill, nil
}

// ListBills returns one page of history, most recent first.
func (s *BillingService) ListBills(params *pagination.PaginationParams) *pagination.PaginatedResult[entity.Bill] {
	return pagination.Slice(s.store.LoadBills(), params)
}

// GetBill looks a bill up by id.
func (s *BillingService) GetBill(id string) (entity.Bill, error) {
	for _, bill := range s.store.LoadBills() {
		if bill.ID == id {
			return bill, nil
		}
	}
	return entity.Bill{}, apperror.NewNotFoundError("Bill")
}

// ClearHistory irreversibly empties the stored history.
func (s *BillingService) ClearHistory() error {
	return s.store.ClearHistory()
}

// ExportHistory writes the current history to the archive sink and
// returns the filename used.
func (s *BillingService) ExportHistory() (string, error) {
	bills := s.store.LoadBills()
	if len(bills) == 0 {
		return "", apperror.NewBadRequestError("No bills to export")
	}
	filename := fmt.Sprintf("billing_history_%s.xlsx", s.now().Format(dateLayout))
	if err := s.archive.Export(ArchiveRows(bills), filename); err != nil {
		return "", err
	}
	return filename, nil
}

// ExportPath reports where an exported filename lives on disk.
func (s *BillingService) ExportPath(filename string) string {
	return s.archive.Path(filename)
}

// ShareLink builds the wa.me URL for a stored bill and records that a
// share flow is in progress.
func (s *BillingService) ShareLink(billID string, recipient whatsapp.Recipient) (string, error) {
	bill, err := s.GetBill(billID)
	if err != nil {
		return "", err
	}
	settings := s.store.LoadSettings()

	number := bill.CustomerWhatsApp
	if recipient == whatsapp.RecipientOwner {
		number = settings.OwnerWhatsApp
	}

	items := make([]whatsapp.MessageItem, len(bill.Services))
	for i, item := range bill.Services {
		items[i] = whatsapp.MessageItem{Name: item.Name, Quantity: item.Quantity, LineTotal: item.LineTotal()}
	}

	url, err := whatsapp.ShareURL(number, whatsapp.MessageInput{
		SalonName:      settings.SalonName,
		BillNumber:     bill.BillNumber,
		Date:           bill.Date.Format(displayLayout),
		CustomerName:   bill.CustomerName,
		CurrencySymbol: settings.CurrencySymbol,
		Items:          items,
		Subtotal:       bill.Subtotal,
		TaxRate:        settings.TaxRate,
		TaxAmount:      bill.TaxAmount,
		Discount:       bill.Discount,
		GrandTotal:     bill.GrandTotal,
		InstagramLink:  settings.InstagramLink,
		ReviewLink:     settings.GoogleReviewLink,
	})
	if err != nil {
		return "", apperror.NewBadRequestError("No WhatsApp number provided for this recipient")
	}

	if err := s.store.SetMarker(repository.KeySharePending, "1"); err != nil {
		log.Printf("Failed to persist share-pending marker: %v", err)
	}
	return url, nil
}

// CompleteShare clears the share-pending marker once the shell returns
// from the share flow.
func (s *BillingService) CompleteShare() error {
	return s.store.SetMarker(repository.KeySharePending, "")
}

// combineDateTime merges the separate date and time form inputs into
// one timestamp, defaulting each part to now.
func (s *BillingService) combineDateTime(dateStr, timeStr string) (time.Time, error) {
	now := s.now()
	if dateStr == "" {
		dateStr = now.Format(dateLayout)
	}
	if timeStr == "" {
		timeStr = now.Format(timeLayout)
	}
	t, err := time.ParseInLocation(dateLayout+"T"+timeLayout, dateStr+"T"+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid bill date/time %q %q", dateStr, timeStr)
	}
	return t, nil
}

// ArchiveRows flattens bills into the archive-export row shape, one
// row per bill with services collapsed to "name (qty)" summaries.
func ArchiveRows(bills []entity.Bill) []repository.ArchiveRow {
	rows := make([]repository.ArchiveRow, len(bills))
	for i, bill := range bills {
		summaries := make([]string, len(bill.Services))
		for j, item := range bill.Services {
			summaries[j] = fmt.Sprintf("%s (%s)", item.Name, trimQty(item.Quantity))
		}
		rows[i] = repository.ArchiveRow{
			BillNumber:    bill.BillNumber,
			Date:          bill.Date.Format(displayLayout),
			CustomerName:  bill.CustomerName,
			Phone:         bill.CustomerWhatsApp,
			Services:      strings.Join(summaries, "; "),
			Subtotal:      bill.Subtotal,
			Tax:           bill.TaxAmount,
			Discount:      bill.Discount,
			GrandTotal:    bill.GrandTotal,
			PaymentMethod: bill.PaymentMethod.String(),
		}
	}
	return rows
}

func trimQty(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", q), "0"), ".")
}
