package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"marketplace-analytics/internal/export"
	"marketplace-analytics/internal/model"
)

// Export report types.
const (
	ExportDashboard = "dashboard"
	ExportProducts  = "products"
	ExportOrders    = "orders"
	ExportCustomers = "customers"
)

// ExportReport renders the tabular view of a report. Type defaults to
// dashboard and format to json.
func (s *reportService) ExportReport(ctx context.Context, q model.ExportQuery) (string, []byte, error) {
	start := time.Now()
	now := s.now().UTC()

	q.ReportQuery = normalizeQuery(q.ReportQuery)
	q.Type = strings.ToLower(strings.TrimSpace(q.Type))
	q.Format = strings.ToLower(strings.TrimSpace(q.Format))
	if q.Type == "" {
		q.Type = ExportDashboard
	}
	if q.Format == "" {
		q.Format = export.FormatJSON
	}
	if err := validateQuery(q); err != nil {
		return "", nil, err
	}
	w, err := resolveWindow(q.ReportQuery, now)
	if err != nil {
		return "", nil, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return "", nil, err
	}

	var rows []export.Row
	switch q.Type {
	case ExportDashboard:
		rows = trendRows(s.buildDashboard(snap, w, now).Trend)
	case ExportProducts:
		rows = productRows(s.buildProductAnalytics(snap, now).Products)
	case ExportOrders:
		rows = orderRows(ordersIn(snap.orders, w.Range))
	case ExportCustomers:
		_, seg := s.buildCustomerAnalytics(snap, now)
		rows = customerRows(seg.Profiles)
	}

	contentType, body, err := export.Render(q.Type, q.Format, now, rows)
	if err != nil {
		return "", nil, err
	}
	s.logGenerated("export:"+q.Type, start)
	return contentType, body, nil
}

func trendRows(points []model.TrendPoint) []export.Row {
	rows := make([]export.Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, export.Row{
			{Name: "label", Value: p.Label},
			{Name: "start", Value: formatTime(p.Start)},
			{Name: "end", Value: formatTime(p.End)},
			{Name: "revenue", Value: p.Revenue},
			{Name: "orders", Value: p.Orders},
			{Name: "customers", Value: p.Customers},
			{Name: "avgOrderValue", Value: p.AvgOrderValue},
		})
	}
	return rows
}

func productRows(products []model.ProductPerformance) []export.Row {
	rows := make([]export.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, export.Row{
			{Name: "productId", Value: p.ProductID},
			{Name: "name", Value: p.Name},
			{Name: "category", Value: p.Category},
			{Name: "price", Value: p.Price},
			{Name: "effectivePrice", Value: p.EffectivePrice},
			{Name: "stock", Value: p.Stock},
			{Name: "stockStatus", Value: p.StockStatus},
			{Name: "salesCount", Value: p.SalesCount},
			{Name: "rating", Value: p.Rating},
			{Name: "unitsSold", Value: p.UnitsSold},
			{Name: "revenue", Value: p.Revenue},
		})
	}
	return rows
}

func orderRows(orders []model.Order) []export.Row {
	sorted := append([]model.Order{}, orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	rows := make([]export.Row, 0, len(sorted))
	for _, o := range sorted {
		rows = append(rows, export.Row{
			{Name: "orderId", Value: o.ID},
			{Name: "userId", Value: o.UserID},
			{Name: "status", Value: string(o.Status)},
			{Name: "total", Value: o.Total},
			{Name: "items", Value: o.ItemCount()},
			{Name: "paymentMethod", Value: o.PaymentMethod},
			{Name: "shippingMethod", Value: o.ShippingMethod},
			{Name: "region", Value: o.Region()},
			{Name: "createdAt", Value: formatTime(o.CreatedAt)},
		})
	}
	return rows
}

func customerRows(profiles []model.CustomerProfile) []export.Row {
	rows := make([]export.Row, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, export.Row{
			{Name: "userId", Value: p.UserID},
			{Name: "name", Value: p.Name},
			{Name: "email", Value: p.Email},
			{Name: "joinedAt", Value: formatTime(p.JoinedAt)},
			{Name: "orderCount", Value: p.OrderCount},
			{Name: "lifetimeValue", Value: p.Spend},
			{Name: "spendTier", Value: p.SpendTier},
			{Name: "recencyTag", Value: p.RecencyTag},
			{Name: "lastOrderAt", Value: formatTimePtr(p.LastOrderAt)},
		})
	}
	return rows
}
