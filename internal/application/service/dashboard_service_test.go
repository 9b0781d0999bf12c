package service

import (
	"testing"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/enum"
)

func TestGetDashboardStats(t *testing.T) {
	store := newFakeStore()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	bills := []entity.Bill{
		{
			ID: "b1", Date: day.Add(10 * time.Hour), GrandTotal: 300, Discount: 20,
			PaymentMethod: enum.PaymentCash,
			Services:      []entity.ServiceItem{{Name: "Haircut", Price: 150, Quantity: 2}},
		},
		{
			ID: "b2", Date: day.Add(10*time.Hour + 30*time.Minute), GrandTotal: 500,
			PaymentMethod: enum.PaymentUPI,
			Services:      []entity.ServiceItem{{Name: "Facial", Price: 500, Quantity: 1}},
		},
		// Previous day, left over before rollover ran; must be excluded.
		{
			ID: "b3", Date: day.Add(-2 * time.Hour), GrandTotal: 900,
			PaymentMethod: enum.PaymentCash,
			Services:      []entity.ServiceItem{{Name: "Facial", Price: 900, Quantity: 1}},
		},
	}
	if err := store.ReplaceBills(bills); err != nil {
		t.Fatal(err)
	}

	svc := NewDashboardService(store)
	svc.now = fixedClock(day.Add(18 * time.Hour))

	stats := svc.GetDashboardStats()

	if stats.TodayBills != 2 {
		t.Errorf("TodayBills = %d, want 2", stats.TodayBills)
	}
	if stats.TodayRevenue != 800 {
		t.Errorf("TodayRevenue = %v, want 800", stats.TodayRevenue)
	}
	if stats.TodayDiscount != 20 {
		t.Errorf("TodayDiscount = %v, want 20", stats.TodayDiscount)
	}
	if stats.AverageBill != 400 {
		t.Errorf("AverageBill = %v, want 400", stats.AverageBill)
	}
	if stats.PaymentSplit["cash"] != 1 || stats.PaymentSplit["upi"] != 1 {
		t.Errorf("PaymentSplit = %v", stats.PaymentSplit)
	}
	if len(stats.TopServices) != 2 || stats.TopServices[0].Name != "Facial" {
		t.Errorf("TopServices = %+v, want Facial first by revenue", stats.TopServices)
	}
	if len(stats.HourlySalesData) != 1 {
		t.Fatalf("HourlySalesData = %+v, want one populated hour", stats.HourlySalesData)
	}
	if stats.HourlySalesData[0].Hour != "10:00" || stats.HourlySalesData[0].Bills != 2 {
		t.Errorf("hour point = %+v", stats.HourlySalesData[0])
	}
	if len(stats.DailySalesData) != 2 {
		t.Fatalf("DailySalesData = %+v, want two days of the month", stats.DailySalesData)
	}
	if stats.DailySalesData[0].Date != "2025-03-13" || stats.DailySalesData[0].Revenue != 900 {
		t.Errorf("first day point = %+v", stats.DailySalesData[0])
	}
	if stats.DailySalesData[1].Date != "2025-03-14" || stats.DailySalesData[1].Bills != 2 {
		t.Errorf("second day point = %+v", stats.DailySalesData[1])
	}
}

func TestGetDashboardStatsEmpty(t *testing.T) {
	svc := NewDashboardService(newFakeStore())

	stats := svc.GetDashboardStats()
	if stats.TodayBills != 0 || stats.TodayRevenue != 0 || stats.AverageBill != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
	if stats.TopServices == nil || stats.HourlySalesData == nil || stats.DailySalesData == nil {
		t.Error("slices must be empty, not nil, for JSON shape stability")
	}
}

func TestRecentBills(t *testing.T) {
	store := newFakeStore()
	for i, id := range []string{"b1", "b2", "b3"} {
		if err := store.AddBill(billOn(id, time.Now().Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	svc := NewDashboardService(store)

	recent := svc.RecentBills(2)
	if len(recent) != 2 || recent[0].ID != "b3" {
		t.Errorf("recent = %+v, want newest two", recent)
	}
	if got := svc.RecentBills(10); len(got) != 3 {
		t.Errorf("oversized n must return all, got %d", len(got))
	}
}
