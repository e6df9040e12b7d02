package service

import (
	"sort"
	"time"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

func buildOrderAnalytics(snap snapshot, w reportWindow, now time.Time) model.OrderAnalyticsReport {
	current := ordersIn(snap.orders, w.Range)
	revenue, revenueOrders := revenueOf(current)

	items := 0
	for _, o := range current {
		if o.IsRevenue() {
			items += o.ItemCount()
		}
	}

	return model.OrderAnalyticsReport{
		Range:   w.Range,
		GroupBy: string(w.Granularity),
		Totals: model.OrderTotals{
			Orders:          len(current),
			Revenue:         revenue,
			AvgOrderValue:   averageOf(revenue, revenueOrders),
			UniqueCustomers: uniqueCustomers(current),
			ItemsSold:       items,
		},
		Series:             trend(current, w),
		StatusDistribution: statusDistribution(current),
		PaymentMethods:     distribution(current, func(o model.Order) string { return o.PaymentMethod }),
		ShippingMethods:    distribution(current, func(o model.Order) string { return o.ShippingMethod }),
		Hourly:             hourly(current),
		GeneratedAt:        now,
	}
}

// statusDistribution lists every known status, including those with no
// orders, followed by any unrecognised statuses in alphabetical order.
func statusDistribution(orders []model.Order) []model.Distribution {
	byStatus := make(map[string][]model.Order)
	for _, o := range orders {
		byStatus[string(o.Status)] = append(byStatus[string(o.Status)], o)
	}

	out := make([]model.Distribution, 0, len(model.OrderStatuses))
	row := func(key string) model.Distribution {
		group := byStatus[key]
		rev, _ := revenueOf(group)
		return model.Distribution{
			Key:        key,
			Count:      len(group),
			Revenue:    rev,
			Percentage: analytics.Percent(float64(len(group)), float64(len(orders))),
		}
	}
	known := make(map[string]bool, len(model.OrderStatuses))
	for _, st := range model.OrderStatuses {
		known[string(st)] = true
		out = append(out, row(string(st)))
	}

	var extra []string
	for key := range byStatus {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		out = append(out, row(key))
	}
	return out
}

// hourly is a 24-slot histogram by UTC hour of day.
func hourly(orders []model.Order) []model.HourlySlot {
	revenue := make([][]float64, 24)
	slots := make([]model.HourlySlot, 24)
	for h := range slots {
		slots[h].Hour = h
	}
	for _, o := range orders {
		h := o.CreatedAt.UTC().Hour()
		slots[h].Orders++
		if o.IsRevenue() {
			revenue[h] = append(revenue[h], o.Total)
		}
	}
	for h := range slots {
		slots[h].Revenue = analytics.Money(revenue[h]...)
	}
	return slots
}
