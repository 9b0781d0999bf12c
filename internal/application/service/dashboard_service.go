package service

import (
	"sort"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	store repository.Store
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store repository.Store) *DashboardService {
	return &DashboardService{store: store, now: time.Now}
}

// DashboardStats represents dashboard statistics. Rollover purges
// history daily, so bills from earlier days only appear while the
// archiver has not yet run.
type DashboardStats struct {
	TodayBills      int64             `json:"today_bills"`
	TodayRevenue    float64           `json:"today_revenue"`
	TodayDiscount   float64           `json:"today_discount"`
	AverageBill     float64           `json:"average_bill"`
	PaymentSplit    map[string]int64  `json:"payment_split"`
	TopServices     []ServiceRevenue  `json:"top_services"`
	HourlySalesData []HourlySalePoint `json:"hourly_sales_data"`
	DailySalesData  []DailySalePoint  `json:"daily_sales_data"`
}

// ServiceRevenue represents revenue attributed to one service name.
type ServiceRevenue struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// HourlySalePoint represents one hour of the current day.
type HourlySalePoint struct {
	Hour    string  `json:"hour"`
	Bills   int64   `json:"bills"`
	Revenue float64 `json:"revenue"`
}

// DailySalePoint represents one day of the current month.
type DailySalePoint struct {
	Date    string  `json:"date"`
	Bills   int64   `json:"bills"`
	Revenue float64 `json:"revenue"`
}

// GetDashboardStats summarizes today's billing activity.
func (s *DashboardService) GetDashboardStats() *DashboardStats {
	bills := s.store.LoadBills()
	stats := &DashboardStats{
		PaymentSplit:    make(map[string]int64),
		TopServices:     []ServiceRevenue{},
		HourlySalesData: make([]HourlySalePoint, 0, 24),
		DailySalesData:  []DailySalePoint{},
	}

	now := s.now()
	today := now.Format(dateLayout)
	month := now.Format("2006-01")
	byService := make(map[string]*ServiceRevenue)
	hourRevenue := make(map[int]float64)
	hourBills := make(map[int]int64)
	dayRevenue := make(map[string]float64)
	dayBills := make(map[string]int64)

	for _, bill := range bills {
		day := bill.Date.Format(dateLayout)
		if bill.Date.Format("2006-01") == month {
			dayRevenue[day] += bill.GrandTotal
			dayBills[day]++
		}
		if day != today {
			continue
		}
		stats.TodayBills++
		stats.TodayRevenue += bill.GrandTotal
		stats.TodayDiscount += bill.Discount
		stats.PaymentSplit[bill.PaymentMethod.String()]++

		hour := bill.Date.Hour()
		hourRevenue[hour] += bill.GrandTotal
		hourBills[hour]++

		for _, item := range bill.Services {
			sr, ok := byService[item.Name]
			if !ok {
				sr = &ServiceRevenue{Name: item.Name}
				byService[item.Name] = sr
			}
			sr.Count++
			sr.Revenue += item.LineTotal()
		}
	}

	if stats.TodayBills > 0 {
		stats.AverageBill = stats.TodayRevenue / float64(stats.TodayBills)
	}

	for _, sr := range byService {
		stats.TopServices = append(stats.TopServices, *sr)
	}
	sort.Slice(stats.TopServices, func(i, j int) bool {
		return stats.TopServices[i].Revenue > stats.TopServices[j].Revenue
	})
	if len(stats.TopServices) > 5 {
		stats.TopServices = stats.TopServices[:5]
	}

	for hour := 0; hour < 24; hour++ {
		if hourBills[hour] == 0 {
			continue
		}
		stats.HourlySalesData = append(stats.HourlySalesData, HourlySalePoint{
			Hour:    time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:00"),
			Bills:   hourBills[hour],
			Revenue: hourRevenue[hour],
		})
	}

	days := make([]string, 0, len(dayBills))
	for day := range dayBills {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		stats.DailySalesData = append(stats.DailySalesData, DailySalePoint{
			Date:    day,
			Bills:   dayBills[day],
			Revenue: dayRevenue[day],
		})
	}

	return stats
}

// RecentBills returns the n most recent bills.
func (s *DashboardService) RecentBills(n int) []entity.Bill {
	bills := s.store.LoadBills()
	if n <= 0 || n > len(bills) {
		n = len(bills)
	}
	return bills[:n]
}
