package service

import (
	"fmt"
	"sort"
	"time"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

const (
	topProductsLimit     = 5
	stalePendingAfter    = 48 * time.Hour
	revenueDropThreshold = -20.0

	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

func (s *reportService) buildDashboard(snap snapshot, w reportWindow, now time.Time) model.DashboardReport {
	current := ordersIn(snap.orders, w.Range)
	previous := ordersIn(snap.orders, w.Range.Previous())

	revenue, revenueOrders := revenueOf(current)
	prevRevenue, _ := revenueOf(previous)

	kpis := model.DashboardKPIs{
		TotalRevenue:    revenue,
		TotalOrders:     len(current),
		AvgOrderValue:   averageOf(revenue, revenueOrders),
		TotalCustomers:  len(snap.users),
		NewCustomers:    newCustomers(snap.users, w.Range),
		ActiveCustomers: uniqueCustomers(current),
		RevenueGrowth:   analytics.Growth(revenue, prevRevenue),
		OrderGrowth:     analytics.Growth(float64(len(current)), float64(len(previous))),
	}

	points := trend(current, w)
	history := make([]float64, len(points))
	for i, p := range points {
		history[i] = p.Revenue
	}

	segmentation := analytics.Segment(snap.users, snap.orders, now, s.opts.Segments)

	return model.DashboardReport{
		Period:       w.Period,
		Range:        w.Range,
		Granularity:  string(w.Granularity),
		KPIs:         kpis,
		Trend:        points,
		Segmentation: segmentation.Segments,
		Forecast:     analytics.Project(s.forecaster, history),
		TopProducts:  topProducts(current, catalogueByID(snap.products), topProductsLimit),
		Regions:      regions(current),
		Alerts:       s.alerts(snap, kpis.RevenueGrowth, prevRevenue, now),
		GeneratedAt:  now,
	}
}

func newCustomers(users []model.User, rng model.DateRange) int {
	n := 0
	for _, u := range users {
		if rng.Contains(u.CreatedAt) {
			n++
		}
	}
	return n
}

// topProducts ranks products by line-item revenue, then by id.
func topProducts(orders []model.Order, catalogue map[string]model.Product, limit int) []model.ProductSales {
	sales := productSales(orders, catalogue)
	out := make([]model.ProductSales, 0, len(sales))
	for _, ps := range sales {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// regions summarises revenue by shipping region. Orders without an address
// are grouped under "unknown".
func regions(orders []model.Order) []model.RegionSummary {
	type acc struct {
		orders  int
		revenue []float64
	}
	groups := make(map[string]*acc)
	var all []float64
	for _, o := range orders {
		if !o.IsRevenue() {
			continue
		}
		key := o.Region()
		if key == "" {
			key = unknownKey
		}
		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
		}
		a.orders++
		a.revenue = append(a.revenue, o.Total)
		all = append(all, o.Total)
	}
	total := analytics.Money(all...)

	out := make([]model.RegionSummary, 0, len(groups))
	for key, a := range groups {
		rev := analytics.Money(a.revenue...)
		out = append(out, model.RegionSummary{
			Region:     key,
			Orders:     a.orders,
			Revenue:    rev,
			Percentage: analytics.Percent(rev, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Region < out[j].Region
	})
	return out
}

func (s *reportService) alerts(snap snapshot, revenueGrowth, prevRevenue float64, now time.Time) []model.Alert {
	alerts := []model.Alert{}

	var outOfStock, lowStock int
	for _, p := range snap.products {
		switch p.StockStatus(s.opts.LowStockThreshold) {
		case "out_of_stock":
			outOfStock++
		case "low_stock":
			lowStock++
		}
	}
	if outOfStock > 0 {
		alerts = append(alerts, model.Alert{
			Type:     "out_of_stock",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("%d products are out of stock", outOfStock),
			Count:    outOfStock,
		})
	}
	if lowStock > 0 {
		alerts = append(alerts, model.Alert{
			Type:     "low_stock",
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%d products have %d or fewer units left", lowStock, s.opts.LowStockThreshold),
			Count:    lowStock,
		})
	}

	stale := 0
	for _, o := range snap.orders {
		if o.Status == model.OrderPending && now.Sub(o.CreatedAt) > stalePendingAfter {
			stale++
		}
	}
	if stale > 0 {
		alerts = append(alerts, model.Alert{
			Type:     "stale_pending_orders",
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%d orders have been pending for more than 48 hours", stale),
			Count:    stale,
		})
	}

	if prevRevenue > 0 && revenueGrowth < revenueDropThreshold {
		alerts = append(alerts, model.Alert{
			Type:     "revenue_drop",
			Severity: SeverityHigh,
			Message:  fmt.Sprintf("revenue is down %.1f%% against the previous period", -revenueGrowth),
		})
	}
	return alerts
}
