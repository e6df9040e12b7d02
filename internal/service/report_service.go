package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/repository"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ReportService assembles analytics reports from a fresh data snapshot.
type ReportService interface {
	GetDashboardReport(ctx context.Context, q model.ReportQuery) (model.DashboardReport, error)
	GetOrderAnalytics(ctx context.Context, q model.ReportQuery) (model.OrderAnalyticsReport, error)
	GetCustomerAnalytics(ctx context.Context) (model.CustomerAnalyticsReport, error)
	GetProductAnalytics(ctx context.Context) (model.ProductAnalyticsReport, error)
	// ExportReport renders a report as JSON or CSV and returns its content type.
	ExportReport(ctx context.Context, q model.ExportQuery) (string, []byte, error)
}

// Options tunes report thresholds.
type Options struct {
	LowStockThreshold int
	ChurnWindow       time.Duration
	// FetchTimeout bounds the snapshot fetch; zero means no timeout.
	FetchTimeout time.Duration
	Segments     analytics.SegmentOptions
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		LowStockThreshold: 10,
		ChurnWindow:       90 * 24 * time.Hour,
		FetchTimeout:      10 * time.Second,
		Segments:          analytics.DefaultSegmentOptions(),
	}
}

// reportService holds no per-request state; every call recomputes from the
// data source.
type reportService struct {
	source     repository.DataSource
	forecaster analytics.Forecaster
	log        logrus.FieldLogger
	now        func() time.Time
	opts       Options
}

// NewReportService constructs a reportService.
func NewReportService(source repository.DataSource, forecaster analytics.Forecaster, log logrus.FieldLogger, opts Options) ReportService {
	if forecaster == nil {
		forecaster = analytics.TrendForecaster{}
	}
	return &reportService{
		source:     source,
		forecaster: forecaster,
		log:        log,
		now:        time.Now,
		opts:       opts,
	}
}

// snapshot is the in-memory copy of the store a report is computed from.
type snapshot struct {
	users    []model.User
	products []model.Product
	orders   []model.Order
}

// loadSnapshot fetches the three collections concurrently. Fetch errors are
// returned unmodified.
func (s *reportService) loadSnapshot(ctx context.Context) (snapshot, error) {
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}

	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.source.ListUsers(gctx)
		snap.users = analytics.UniqueUsers(users)
		return err
	})
	g.Go(func() error {
		products, err := s.source.ListProducts(gctx)
		snap.products = products
		return err
	})
	g.Go(func() error {
		orders, err := s.source.ListOrders(gctx)
		snap.orders = orders
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Error("fetch snapshot")
		return snapshot{}, err
	}

	s.log.WithFields(logrus.Fields{
		"users":    len(snap.users),
		"products": len(snap.products),
		"orders":   len(snap.orders),
	}).Debug("snapshot loaded")
	return snap, nil
}

func (s *reportService) logGenerated(report string, start time.Time) {
	s.log.WithFields(logrus.Fields{
		"report":     report,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("report generated")
}

// GetDashboardReport builds the dashboard for a period or explicit range.
func (s *reportService) GetDashboardReport(ctx context.Context, q model.ReportQuery) (model.DashboardReport, error) {
	start := time.Now()
	now := s.now().UTC()

	q = normalizeQuery(q)
	if err := validateQuery(q); err != nil {
		return model.DashboardReport{}, err
	}
	w, err := resolveWindow(q, now)
	if err != nil {
		return model.DashboardReport{}, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return model.DashboardReport{}, err
	}

	report := s.buildDashboard(snap, w, now)
	s.logGenerated("dashboard", start)
	return report, nil
}

// GetOrderAnalytics builds the order report. groupBy defaults to day.
func (s *reportService) GetOrderAnalytics(ctx context.Context, q model.ReportQuery) (model.OrderAnalyticsReport, error) {
	start := time.Now()
	now := s.now().UTC()

	q = normalizeQuery(q)
	if err := validateQuery(q); err != nil {
		return model.OrderAnalyticsReport{}, err
	}
	w, err := resolveWindow(q, now)
	if err != nil {
		return model.OrderAnalyticsReport{}, err
	}
	w.Granularity = analytics.Day
	if q.GroupBy != "" {
		g, err := analytics.ParseGranularity(q.GroupBy)
		if err != nil {
			return model.OrderAnalyticsReport{}, &ValidationError{Message: err.Error()}
		}
		w.Granularity = g
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return model.OrderAnalyticsReport{}, err
	}

	report := buildOrderAnalytics(snap, w, now)
	s.logGenerated("orders", start)
	return report, nil
}

// GetCustomerAnalytics builds the customer report over all customers.
func (s *reportService) GetCustomerAnalytics(ctx context.Context) (model.CustomerAnalyticsReport, error) {
	start := time.Now()
	now := s.now().UTC()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return model.CustomerAnalyticsReport{}, err
	}

	report, _ := s.buildCustomerAnalytics(snap, now)
	s.logGenerated("customers", start)
	return report, nil
}

// GetProductAnalytics builds the catalogue performance report.
func (s *reportService) GetProductAnalytics(ctx context.Context) (model.ProductAnalyticsReport, error) {
	start := time.Now()
	now := s.now().UTC()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return model.ProductAnalyticsReport{}, err
	}

	report := s.buildProductAnalytics(snap, now)
	s.logGenerated("products", start)
	return report, nil
}
