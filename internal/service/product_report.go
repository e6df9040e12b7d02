package service

import (
	"sort"
	"time"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
)

func (s *reportService) buildProductAnalytics(snap snapshot, now time.Time) model.ProductAnalyticsReport {
	sales := productSales(snap.orders, catalogueByID(snap.products))

	rows := make([]model.ProductPerformance, 0, len(snap.products))
	var (
		outOfStock, lowStock int
		stockValue           []float64
		prices, ratings      []float64
		salesCounts          []float64
	)
	type categoryAcc struct {
		summary model.CategorySummary
		revenue []float64
		ratings []float64
	}
	categories := make(map[string]*categoryAcc)

	for _, p := range snap.products {
		status := p.StockStatus(s.opts.LowStockThreshold)
		switch status {
		case "out_of_stock":
			outOfStock++
		case "low_stock":
			lowStock++
		}
		if p.Stock > 0 {
			stockValue = append(stockValue, p.EffectivePrice()*float64(p.Stock))
		}

		row := model.ProductPerformance{
			ProductID:      p.ID,
			Name:           p.Name,
			Category:       p.Category,
			Price:          p.Price,
			EffectivePrice: p.EffectivePrice(),
			Stock:          p.Stock,
			StockStatus:    status,
			SalesCount:     p.SalesCount,
			Rating:         p.Rating,
		}
		if ps, ok := sales[p.ID]; ok {
			row.UnitsSold = ps.UnitsSold
			row.Revenue = ps.Revenue
		}
		rows = append(rows, row)

		prices = append(prices, p.Price)
		ratings = append(ratings, p.Rating)
		salesCounts = append(salesCounts, float64(p.SalesCount))

		key := p.Category
		if key == "" {
			key = unknownKey
		}
		c, ok := categories[key]
		if !ok {
			c = &categoryAcc{summary: model.CategorySummary{Category: key}}
			categories[key] = c
		}
		c.summary.Products++
		c.summary.UnitsSold += row.UnitsSold
		c.revenue = append(c.revenue, row.Revenue)
		c.ratings = append(c.ratings, p.Rating)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].ProductID < rows[j].ProductID
	})

	summaries := make([]model.CategorySummary, 0, len(categories))
	for _, c := range categories {
		c.summary.Revenue = analytics.Money(c.revenue...)
		var sum float64
		for _, r := range c.ratings {
			sum += r
		}
		c.summary.AverageRating = averageOf(sum, len(c.ratings))
		summaries = append(summaries, c.summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].Category < summaries[j].Category
	})

	return model.ProductAnalyticsReport{
		TotalProducts:  len(snap.products),
		OutOfStock:     outOfStock,
		LowStock:       lowStock,
		InventoryValue: analytics.Money(stockValue...),
		Products:       rows,
		Categories:     summaries,
		Correlations: []model.Correlation{
			{X: "price", Y: "rating", Coefficient: analytics.Pearson(prices, ratings)},
			{X: "price", Y: "salesCount", Coefficient: analytics.Pearson(prices, salesCounts)},
			{X: "rating", Y: "salesCount", Coefficient: analytics.Pearson(ratings, salesCounts)},
		},
		GeneratedAt: now,
	}
}
