package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/service"
)

type Service struct {
	mock.Mock
}

// Interface compliance check
var _ service.ReportService = &Service{}

func (m *Service) GetDashboardReport(ctx context.Context, q model.ReportQuery) (model.DashboardReport, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(model.DashboardReport), args.Error(1)
}

func (m *Service) GetOrderAnalytics(ctx context.Context, q model.ReportQuery) (model.OrderAnalyticsReport, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(model.OrderAnalyticsReport), args.Error(1)
}

func (m *Service) GetCustomerAnalytics(ctx context.Context) (model.CustomerAnalyticsReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.CustomerAnalyticsReport), args.Error(1)
}

func (m *Service) GetProductAnalytics(ctx context.Context) (model.ProductAnalyticsReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ProductAnalyticsReport), args.Error(1)
}

func (m *Service) ExportReport(ctx context.Context, q model.ExportQuery) (string, []byte, error) {
	args := m.Called(ctx, q)
	var body []byte
	if v := args.Get(1); v != nil {
		body = v.([]byte)
	}
	return args.String(0), body, args.Error(2)
}
