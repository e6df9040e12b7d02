package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-analytics/internal/controller"
	"marketplace-analytics/internal/model"
	mockservice "marketplace-analytics/internal/testdata/mockservice"
)

func TestRegister(t *testing.T) {
	svc := &mockservice.Service{}
	svc.On("GetDashboardReport", mock.Anything, mock.Anything).Return(model.DashboardReport{}, nil)
	svc.On("GetOrderAnalytics", mock.Anything, mock.Anything).Return(model.OrderAnalyticsReport{}, nil)
	svc.On("GetCustomerAnalytics", mock.Anything).Return(model.CustomerAnalyticsReport{}, nil)
	svc.On("GetProductAnalytics", mock.Anything).Return(model.ProductAnalyticsReport{}, nil)
	svc.On("ExportReport", mock.Anything, mock.Anything).Return("application/json", []byte("{}"), nil)

	log, _ := test.NewNullLogger()
	app := fiber.New()
	Register(app, controller.NewReportController(svc, log))

	for _, path := range []string{
		"/health",
		"/api/admin/analytics/dashboard",
		"/api/admin/analytics/orders",
		"/api/admin/analytics/customers",
		"/api/admin/analytics/products",
		"/api/admin/analytics/export",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/admin/analytics/dashboard", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
