package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-analytics/internal/config"
	"marketplace-analytics/internal/controller"
	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/service"
	mockservice "marketplace-analytics/internal/testdata/mockservice"
)

func newTestServer(t *testing.T) (*Server, *mockservice.Service, *test.Hook) {
	t.Helper()
	svc := &mockservice.Service{}
	log, hook := test.NewNullLogger()
	cfg := &config.Config{CORSOrigins: "https://admin.example.com"}
	return NewServer(cfg, log, controller.NewReportController(svc, log)), svc, hook
}

func TestServer_RequestIDAndAccessLog(t *testing.T) {
	srv, _, hook := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rid := resp.Header.Get(fiber.HeaderXRequestID)
	require.Len(t, rid, 36)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, rid, entry.Data["request_id"])
	require.Equal(t, "/health", entry.Data["path"])
}

func TestServer_ValidationErrorIsJSON(t *testing.T) {
	srv, svc, hook := newTestServer(t)
	svc.On("GetOrderAnalytics", mock.Anything, model.ReportQuery{GroupBy: "minute"}).
		Return(model.OrderAnalyticsReport{}, &service.ValidationError{Message: "groupBy must be one of: hour, day, week, month, quarter"})

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/admin/analytics/orders?groupBy=minute", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))

	entry := hook.LastEntry()
	require.Equal(t, logrus.WarnLevel, entry.Level)
	require.Equal(t, http.StatusBadRequest, entry.Data["status"])
}

func TestServer_RecoversFromPanics(t *testing.T) {
	srv, svc, _ := newTestServer(t)
	svc.On("GetCustomerAnalytics", mock.Anything).Run(func(mock.Arguments) {
		panic("boom")
	})

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/admin/analytics/customers", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServer_CORS(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://admin.example.com")
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "https://admin.example.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
