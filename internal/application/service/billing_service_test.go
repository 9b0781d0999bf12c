package service

import (
	"strings"
	"testing"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/pkg/apperror"
	"github.com/glowdesk/salonpos-api/pkg/whatsapp"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBuildBill(t *testing.T) {
	base := time.Date(2025, 3, 14, 11, 30, 0, 0, time.Local)
	settings := entity.DefaultSettings()
	settings.TaxRate = 10
	settings.EnableTax = true
	settings.PredefinedServices = []entity.PredefinedService{
		{ID: "svc-1", Name: "Haircut", Price: 250},
	}

	tests := []struct {
		name     string
		input    CreateBillInput
		wantErr  bool
		validate func(t *testing.T, bill entity.Bill)
	}{
		{
			name: "totals follow tax and discount",
			input: CreateBillInput{
				CustomerName: "Asha",
				Services: []ServiceItemInput{
					{Name: "Haircut", Price: 200, Quantity: 2},
					{Name: "Shave", Price: 100, Quantity: 1},
				},
				Discount: 50,
			},
			validate: func(t *testing.T, bill entity.Bill) {
				if bill.Subtotal != 500 {
					t.Errorf("Subtotal = %v, want 500", bill.Subtotal)
				}
				if bill.TaxAmount != 50 {
					t.Errorf("TaxAmount = %v, want 50", bill.TaxAmount)
				}
				if bill.GrandTotal != 500 {
					t.Errorf("GrandTotal = %v, want 500", bill.GrandTotal)
				}
			},
		},
		{
			name: "blank rows dropped, zero price auto-filled from menu",
			input: CreateBillInput{
				CustomerName: "Asha",
				Services: []ServiceItemInput{
					{Name: "  ", Price: 100, Quantity: 1},
					{Name: "Haircut", Quantity: 1},
				},
			},
			validate: func(t *testing.T, bill entity.Bill) {
				if len(bill.Services) != 1 {
					t.Fatalf("len(Services) = %d, want 1", len(bill.Services))
				}
				if bill.Services[0].Price != 250 {
					t.Errorf("auto-filled price = %v, want 250", bill.Services[0].Price)
				}
			},
		},
		{
			name: "non-positive quantity becomes one",
			input: CreateBillInput{
				CustomerName: "Asha",
				Services:     []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: -3}},
			},
			validate: func(t *testing.T, bill entity.Bill) {
				if bill.Services[0].Quantity != 1 {
					t.Errorf("Quantity = %v, want 1", bill.Services[0].Quantity)
				}
			},
		},
		{
			name: "discount larger than total clamps at zero",
			input: CreateBillInput{
				CustomerName: "Asha",
				Services:     []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
				Discount:     500,
			},
			validate: func(t *testing.T, bill entity.Bill) {
				if bill.GrandTotal != 0 {
					t.Errorf("GrandTotal = %v, want 0", bill.GrandTotal)
				}
			},
		},
		{
			name: "missing customer name rejected",
			input: CreateBillInput{
				Services: []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
			},
			wantErr: true,
		},
		{
			name:    "no service rows rejected",
			input:   CreateBillInput{CustomerName: "Asha"},
			wantErr: true,
		},
		{
			name: "explicit date and time used verbatim",
			input: CreateBillInput{
				CustomerName: "Asha",
				Date:         "2025-03-01",
				Time:         "09:15",
				Services:     []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
			},
			validate: func(t *testing.T, bill entity.Bill) {
				want := time.Date(2025, 3, 1, 9, 15, 0, 0, time.Local)
				if !bill.Date.Equal(want) {
					t.Errorf("Date = %v, want %v", bill.Date, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBillingService(newFakeStore(), nil, &fakeSink{})
			svc.now = fixedClock(base)

			bill, err := svc.BuildBill(tt.input, settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if apperror.GetAppError(err) == nil {
					t.Errorf("expected AppError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildBill: %v", err)
			}
			if bill.ID == "" || bill.BillNumber == "" {
				t.Error("bill id and number must be assigned")
			}
			if !strings.HasPrefix(bill.BillNumber, "BILL-") {
				t.Errorf("BillNumber = %q, want BILL- prefix", bill.BillNumber)
			}
			if tt.validate != nil {
				tt.validate(t, bill)
			}
		})
	}
}

func TestCreateBillPersistsLocallyAndPushesRemote(t *testing.T) {
	store := newFakeStore()
	remote := newFakeRemote()
	svc := NewBillingService(store, remote, &fakeSink{})

	bill, err := svc.CreateBill(CreateBillInput{
		CustomerName: "Asha",
		Services:     []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	stored := store.LoadBills()
	if len(stored) != 1 || stored[0].ID != bill.ID {
		t.Fatalf("bill not persisted locally: %+v", stored)
	}

	select {
	case <-remote.saved:
	case <-time.After(3 * time.Second):
		t.Fatal("remote push never happened")
	}
	remote.mu.Lock()
	defer remote.mu.Unlock()
	if len(remote.savedBills) != 1 || remote.savedBills[0].ID != bill.ID {
		t.Fatalf("remote saved %+v", remote.savedBills)
	}
}

func TestGetBill(t *testing.T) {
	store := newFakeStore()
	svc := NewBillingService(store, nil, &fakeSink{})

	created, err := svc.CreateBill(CreateBillInput{
		CustomerName: "Asha",
		Services:     []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	got, err := svc.GetBill(created.ID)
	if err != nil {
		t.Fatalf("GetBill: %v", err)
	}
	if got.BillNumber != created.BillNumber {
		t.Errorf("BillNumber = %q, want %q", got.BillNumber, created.BillNumber)
	}

	if _, err := svc.GetBill("missing"); err == nil {
		t.Error("expected not-found error for unknown id")
	}
}

func TestExportHistory(t *testing.T) {
	store := newFakeStore()
	sink := &fakeSink{}
	svc := NewBillingService(store, nil, sink)
	svc.now = fixedClock(time.Date(2025, 3, 14, 18, 0, 0, 0, time.Local))

	if _, err := svc.ExportHistory(); err == nil {
		t.Fatal("expected error exporting empty history")
	}

	if _, err := svc.CreateBill(CreateBillInput{
		CustomerName: "Asha",
		Services:     []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
	}); err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	filename, err := svc.ExportHistory()
	if err != nil {
		t.Fatalf("ExportHistory: %v", err)
	}
	if filename != "billing_history_2025-03-14.xlsx" {
		t.Errorf("filename = %q", filename)
	}
	if len(sink.exports) != 1 || sink.rowCounts[0] != 1 {
		t.Errorf("sink exports = %v rows = %v", sink.exports, sink.rowCounts)
	}
}

func TestShareLink(t *testing.T) {
	store := newFakeStore()
	store.settings.OwnerWhatsApp = "+91 99999 11111"
	svc := NewBillingService(store, nil, &fakeSink{})

	bill, err := svc.CreateBill(CreateBillInput{
		CustomerName:     "Asha",
		CustomerWhatsApp: "+91 88888 22222",
		Services:         []ServiceItemInput{{Name: "Shave", Price: 100, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	url, err := svc.ShareLink(bill.ID, whatsapp.RecipientCustomer)
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	if !strings.HasPrefix(url, "https://wa.me/918888822222?text=") {
		t.Errorf("customer url = %q", url)
	}
	if store.GetMarker("share_pending") != "1" {
		t.Error("share-pending marker not set")
	}

	url, err = svc.ShareLink(bill.ID, whatsapp.RecipientOwner)
	if err != nil {
		t.Fatalf("ShareLink owner: %v", err)
	}
	if !strings.HasPrefix(url, "https://wa.me/919999911111?text=") {
		t.Errorf("owner url = %q", url)
	}

	if err := svc.CompleteShare(); err != nil {
		t.Fatalf("CompleteShare: %v", err)
	}
	if store.GetMarker("share_pending") != "" {
		t.Error("share-pending marker not cleared")
	}
}
