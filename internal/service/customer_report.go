package service

import (
	"sort"
	"time"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

const topCustomersLimit = 10

// buildCustomerAnalytics also returns the segmentation so exports can reuse
// the per-customer profiles.
func (s *reportService) buildCustomerAnalytics(snap snapshot, now time.Time) (model.CustomerAnalyticsReport, analytics.Segmentation) {
	seg := analytics.Segment(snap.users, snap.orders, now, s.opts.Segments)

	var buyers []model.CustomerProfile
	for _, p := range seg.Profiles {
		if p.OrderCount > 0 {
			buyers = append(buyers, p)
		}
	}

	active := 0
	for _, u := range snap.users {
		if u.Active {
			active++
		}
	}

	spends := make([]float64, len(buyers))
	churned, repeat := 0, 0
	for i, p := range buyers {
		spends[i] = p.Spend
		if now.Sub(*p.LastOrderAt) > s.opts.ChurnWindow {
			churned++
		}
		if p.OrderCount > 1 {
			repeat++
		}
	}
	total := analytics.Money(spends...)

	top := append([]model.CustomerProfile{}, buyers...)
	sort.Slice(top, func(i, j int) bool {
		if top[i].Spend != top[j].Spend {
			return top[i].Spend > top[j].Spend
		}
		return top[i].UserID < top[j].UserID
	})
	if len(top) > topCustomersLimit {
		top = top[:topCustomersLimit]
	}

	report := model.CustomerAnalyticsReport{
		TotalCustomers:      len(snap.users),
		CustomersWithOrders: len(buyers),
		ActiveCustomers:     active,
		LifetimeValue: model.LifetimeValue{
			Average:      averageOf(total, len(buyers)),
			Median:       analytics.Round(analytics.Median(spends), 2),
			Total:        total,
			TopCustomers: top,
		},
		ChurnRate:          analytics.Percent(float64(churned), float64(len(buyers))),
		ChurnWindowDays:    int(s.opts.ChurnWindow / (24 * time.Hour)),
		RepeatPurchaseRate: analytics.Percent(float64(repeat), float64(len(buyers))),
		Segmentation:       seg.Segments,
		Cohorts:            analytics.Cohorts(snap.users, snap.orders),
		GeneratedAt:        now,
	}
	return report, seg
}
