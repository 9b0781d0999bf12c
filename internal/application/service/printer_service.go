package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/pkg/printer"
)

// PrinterService formats receipts and drives the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	billing     *BillingService
	settings    *SettingsService
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, billing *BillingService, settings *SettingsService, printerType string) *PrinterService {
	return &PrinterService{
		printer:     p,
		billing:     billing,
		settings:    settings,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// BuildReceipt composes the printable receipt from a stored bill and
// the settings in force at print time.
func (s *PrinterService) BuildReceipt(bill entity.Bill, settings entity.SalonSettings) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			SalonName: settings.SalonName,
			Address:   settings.Address,
			GSTNumber: settings.GSTNumber,
		},
		BillNumber:       bill.BillNumber,
		Date:             bill.Date.Format(displayLayout),
		PaymentMethod:    bill.PaymentMethod.String(),
		CurrencySymbol:   settings.CurrencySymbol,
		Subtotal:         bill.Subtotal,
		Tax:              bill.TaxAmount,
		Discount:         bill.Discount,
		GrandTotal:       bill.GrandTotal,
		GoogleReviewLink: settings.GoogleReviewLink,
		InstagramLink:    settings.InstagramLink,
	}
	for _, item := range bill.Services {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		})
	}
	return receipt
}

// PrintBill looks a bill up, formats its receipt and sends it to the
// printer. The receipt is returned either way so the handler can show
// it when printing is disabled.
func (s *PrinterService) PrintBill(billID string) (*entity.Receipt, error) {
	bill, err := s.billing.GetBill(billID)
	if err != nil {
		return nil, err
	}

	receipt := s.BuildReceipt(bill, s.settings.Snapshot())
	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (bill %s): %v", billID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// TestPrint sends a fixed test receipt to the printer.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	settings := s.settings.Snapshot()
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			SalonName: settings.SalonName,
			Address:   settings.Address,
		},
		BillNumber:     "TEST-001",
		Date:           time.Now().Format(displayLayout),
		CurrencySymbol: settings.CurrencySymbol,
		Items: []entity.ReceiptItem{
			{Name: "Test Service 1", Quantity: 1, LineTotal: 100},
			{Name: "Test Service 2", Quantity: 2, LineTotal: 50},
		},
		Subtotal:   150,
		GrandTotal: 150,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes. The layout is
// fixed for 58mm paper so printed copies stay consistent across
// devices.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.SalonName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.GSTNumber != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill No:", r.BillNumber).
		KeyValue("Date:", r.Date)
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.SetAlign(printer.AlignCenter).
		Text("CUSTOMER COPY").
		SetAlign(printer.AlignLeft).
		Separator('-')

	// Items
	doc.ColumnHeader()
	doc.Separator('-')
	for _, item := range r.Items {
		doc.ColumnLine(item.Name, trimQty(item.Quantity), fmt.Sprintf("%.2f", item.LineTotal))
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal", fmt.Sprintf("%s%.2f", r.CurrencySymbol, r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount", fmt.Sprintf("-%s%.2f", r.CurrencySymbol, r.Discount))
	}
	if r.Tax > 0 {
		doc.KeyValue("Tax", fmt.Sprintf("%s%.2f", r.CurrencySymbol, r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL", fmt.Sprintf("%s%.2f", r.CurrencySymbol, r.GrandTotal)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter)
	if r.GoogleReviewLink != "" {
		doc.Text("Rate us:").
			Text(stripScheme(r.GoogleReviewLink))
	}
	if handle := instagramHandle(r.InstagramLink); handle != "" {
		doc.TextF("Follow us @%s", handle)
	}
	doc.LineFeed().
		Text("Thank You 🙏").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}

// stripScheme drops the URL scheme so links fit on narrow paper.
func stripScheme(link string) string {
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	return link
}

// instagramHandle extracts the profile handle from an Instagram URL or
// returns a bare handle unchanged.
func instagramHandle(link string) string {
	link = strings.TrimPrefix(strings.TrimSpace(link), "@")
	if link == "" {
		return ""
	}
	link = stripScheme(link)
	link = strings.TrimSuffix(link, "/")
	if idx := strings.LastIndex(link, "/"); idx >= 0 {
		link = link[idx+1:]
	}
	return link
}
