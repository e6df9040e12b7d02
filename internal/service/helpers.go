package service

import (
	"sort"
	"time"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

const unknownKey = "unknown"

var trendReducers = analytics.MustReducers(
	"revenue=sum(revenue)",
	"orders=count",
	"customers=uniqueCount(userId)",
	"avgOrderValue=average(revenue)",
)

func orderTime(o model.Order) time.Time {
	return o.CreatedAt
}

// ordersIn returns the orders placed inside rng.
func ordersIn(orders []model.Order, rng model.DateRange) []model.Order {
	out := make([]model.Order, 0)
	for _, o := range orders {
		if rng.Contains(o.CreatedAt) {
			out = append(out, o)
		}
	}
	return out
}

// revenueOf sums the totals of revenue-bearing orders and counts them.
func revenueOf(orders []model.Order) (float64, int) {
	totals := make([]float64, 0, len(orders))
	for _, o := range orders {
		if o.IsRevenue() {
			totals = append(totals, o.Total)
		}
	}
	return analytics.Money(totals...), len(totals)
}

func averageOf(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return analytics.Round(total/float64(n), 2)
}

// trend buckets orders over the window. Every bucket of the range is
// present even when it holds no orders.
func trend(orders []model.Order, w reportWindow) []model.TrendPoint {
	buckets := analytics.Buckets(w.Granularity, w.Range.Start, w.Range.End, true)
	groups := analytics.Partition(buckets, orders, orderTime)
	aggregated := analytics.Aggregate(buckets, groups, trendReducers)

	points := make([]model.TrendPoint, 0, len(aggregated))
	for _, b := range aggregated {
		points = append(points, model.TrendPoint{
			Label:         b.Label,
			Start:         b.Start,
			End:           b.End,
			Revenue:       analytics.Round(b.Values["revenue"], 2),
			Orders:        int(b.Values["orders"]),
			Customers:     int(b.Values["customers"]),
			AvgOrderValue: analytics.Round(b.Values["avgOrderValue"], 2),
		})
	}
	return points
}

func uniqueCustomers(orders []model.Order) int {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		seen[o.UserID] = struct{}{}
	}
	return len(seen)
}

// distribution groups orders by key. Count shares are of all orders given;
// revenue only includes revenue-bearing orders. Rows are ordered by count,
// then key.
func distribution(orders []model.Order, key func(model.Order) string) []model.Distribution {
	type acc struct {
		count   int
		revenue []float64
	}
	groups := make(map[string]*acc)
	for _, o := range orders {
		k := key(o)
		if k == "" {
			k = unknownKey
		}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.count++
		if o.IsRevenue() {
			a.revenue = append(a.revenue, o.Total)
		}
	}

	out := make([]model.Distribution, 0, len(groups))
	for k, a := range groups {
		out = append(out, model.Distribution{
			Key:        k,
			Count:      a.count,
			Revenue:    analytics.Money(a.revenue...),
			Percentage: analytics.Percent(float64(a.count), float64(len(orders))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// productSales attributes line-item revenue of revenue-bearing orders to
// products. Catalogue names win over names stored on the line item.
func productSales(orders []model.Order, catalogue map[string]model.Product) map[string]*model.ProductSales {
	type acc struct {
		sales    *model.ProductSales
		subtotal []float64
	}
	accs := make(map[string]*acc)
	for _, o := range orders {
		if !o.IsRevenue() {
			continue
		}
		for _, li := range o.Items {
			a, ok := accs[li.ProductID]
			if !ok {
				ps := &model.ProductSales{ProductID: li.ProductID, Name: li.Name}
				if p, found := catalogue[li.ProductID]; found {
					ps.Name, ps.Category = p.Name, p.Category
				}
				a = &acc{sales: ps}
				accs[li.ProductID] = a
			}
			a.sales.UnitsSold += li.Quantity
			a.subtotal = append(a.subtotal, li.Subtotal())
		}
	}

	out := make(map[string]*model.ProductSales, len(accs))
	for id, a := range accs {
		a.sales.Revenue = analytics.Money(a.subtotal...)
		out[id] = a.sales
	}
	return out
}

func catalogueByID(products []model.Product) map[string]model.Product {
	m := make(map[string]model.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
