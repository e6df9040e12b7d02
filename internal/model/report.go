package model

import "time"

// DateRange is a half-open reporting window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration is the length of the window, zero when inverted.
func (r DateRange) Duration() time.Duration {
	if r.End.Before(r.Start) {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Previous returns the window of equal length immediately before r.
func (r DateRange) Previous() DateRange {
	d := r.Duration()
	return DateRange{Start: r.Start.Add(-d), End: r.Start}
}

// Contains reports whether t falls inside [Start, End).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// TrendPoint is one bucket of a revenue/order time series.
type TrendPoint struct {
	Label         string    `json:"label"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Revenue       float64   `json:"revenue"`
	Orders        int       `json:"orders"`
	Customers     int       `json:"customers"`
	AvgOrderValue float64   `json:"avgOrderValue"`
}

// DashboardKPIs are the headline numbers of the admin dashboard.
type DashboardKPIs struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalOrders     int     `json:"totalOrders"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	TotalCustomers  int     `json:"totalCustomers"`
	NewCustomers    int     `json:"newCustomers"`
	ActiveCustomers int     `json:"activeCustomers"`
	RevenueGrowth   float64 `json:"revenueGrowth"`
	OrderGrowth     float64 `json:"orderGrowth"`
}

// ProductSales is revenue attributed to one product from order line items.
type ProductSales struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// RegionSummary is revenue grouped by shipping region.
type RegionSummary struct {
	Region     string  `json:"region"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// Alert is an operational warning surfaced on the dashboard.
type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Count    int    `json:"count"`
}

// DashboardReport is the admin dashboard payload.
type DashboardReport struct {
	Period       string          `json:"period"`
	Range        DateRange       `json:"range"`
	Granularity  string          `json:"granularity"`
	KPIs         DashboardKPIs   `json:"kpis"`
	Trend        []TrendPoint    `json:"trend"`
	Segmentation []Segment       `json:"segmentation"`
	Forecast     ForecastSeries  `json:"forecast"`
	TopProducts  []ProductSales  `json:"topProducts"`
	Regions      []RegionSummary `json:"regions"`
	Alerts       []Alert         `json:"alerts"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

// Distribution is a count and revenue share for one category value.
type Distribution struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// HourlySlot aggregates orders by hour of day.
type HourlySlot struct {
	Hour    int     `json:"hour"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// OrderTotals summarises the orders of a window.
type OrderTotals struct {
	Orders          int     `json:"orders"`
	Revenue         float64 `json:"revenue"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	ItemsSold       int     `json:"itemsSold"`
}

// OrderAnalyticsReport is the order analytics payload.
type OrderAnalyticsReport struct {
	Range              DateRange      `json:"range"`
	GroupBy            string         `json:"groupBy"`
	Totals             OrderTotals    `json:"totals"`
	Series             []TrendPoint   `json:"series"`
	StatusDistribution []Distribution `json:"statusDistribution"`
	PaymentMethods     []Distribution `json:"paymentMethods"`
	ShippingMethods    []Distribution `json:"shippingMethods"`
	Hourly             []HourlySlot   `json:"hourly"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

// LifetimeValue summarises customer spend.
type LifetimeValue struct {
	Average      float64           `json:"average"`
	Median       float64           `json:"median"`
	Total        float64           `json:"total"`
	TopCustomers []CustomerProfile `json:"topCustomers"`
}

// CustomerAnalyticsReport is the customer analytics payload.
type CustomerAnalyticsReport struct {
	TotalCustomers      int           `json:"totalCustomers"`
	CustomersWithOrders int           `json:"customersWithOrders"`
	ActiveCustomers     int           `json:"activeCustomers"`
	LifetimeValue       LifetimeValue `json:"lifetimeValue"`
	ChurnRate           float64       `json:"churnRate"`
	ChurnWindowDays     int           `json:"churnWindowDays"`
	RepeatPurchaseRate  float64       `json:"repeatPurchaseRate"`
	Segmentation        []Segment     `json:"segmentation"`
	Cohorts             []CohortRow   `json:"cohorts"`
	GeneratedAt         time.Time     `json:"generatedAt"`
}

// ProductPerformance is the per-product row of the product analytics report.
type ProductPerformance struct {
	ProductID      string  `json:"productId"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          float64 `json:"price"`
	EffectivePrice float64 `json:"effectivePrice"`
	Stock          int     `json:"stock"`
	StockStatus    string  `json:"stockStatus"`
	SalesCount     int     `json:"salesCount"`
	Rating         float64 `json:"rating"`
	UnitsSold      int     `json:"unitsSold"`
	Revenue        float64 `json:"revenue"`
}

// CategorySummary aggregates products of one category.
type CategorySummary struct {
	Category      string  `json:"category"`
	Products      int     `json:"products"`
	UnitsSold     int     `json:"unitsSold"`
	Revenue       float64 `json:"revenue"`
	AverageRating float64 `json:"averageRating"`
}

// Correlation is a Pearson coefficient between two product attributes.
type Correlation struct {
	X           string  `json:"x"`
	Y           string  `json:"y"`
	Coefficient float64 `json:"coefficient"`
}

// ProductAnalyticsReport is the product analytics payload.
type ProductAnalyticsReport struct {
	TotalProducts  int                  `json:"totalProducts"`
	OutOfStock     int                  `json:"outOfStock"`
	LowStock       int                  `json:"lowStock"`
	InventoryValue float64              `json:"inventoryValue"`
	Products       []ProductPerformance `json:"products"`
	Categories     []CategorySummary    `json:"categories"`
	Correlations   []Correlation        `json:"correlations"`
	GeneratedAt    time.Time            `json:"generatedAt"`
}
