package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/service"
	mockservice "marketplace-analytics/internal/testdata/mockservice"
)

type ControllerTestSuite struct {
	suite.Suite
	app     *fiber.App
	service *mockservice.Service
	logs    *test.Hook
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}

func (s *ControllerTestSuite) SetupTest() {
	s.service = &mockservice.Service{}
	log, hook := test.NewNullLogger()
	s.logs = hook

	ctrl := NewReportController(s.service, log)
	s.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	s.app.Get("/dashboard", ctrl.GetDashboard)
	s.app.Get("/orders", ctrl.GetOrderAnalytics)
	s.app.Get("/customers", ctrl.GetCustomerAnalytics)
	s.app.Get("/products", ctrl.GetProductAnalytics)
	s.app.Get("/export", ctrl.Export)
}

func (s *ControllerTestSuite) TearDownTest() {
	s.service.AssertExpectations(s.T())
}

func (s *ControllerTestSuite) get(target string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(s.T(), err)
	return resp
}

func (s *ControllerTestSuite) errorBody(resp *http.Response) string {
	var body map[string]string
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	return body["error"]
}

func (s *ControllerTestSuite) TestGetDashboard_Success() {
	query := model.ReportQuery{Period: "week"}
	expected := model.DashboardReport{Period: "week", KPIs: model.DashboardKPIs{TotalRevenue: 120.5, TotalOrders: 3}}
	s.service.On("GetDashboardReport", mock.Anything, query).Return(expected, nil)

	resp := s.get("/dashboard?period=%20week%20")

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	var got model.DashboardReport
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(s.T(), expected.KPIs, got.KPIs)
}

func (s *ControllerTestSuite) TestGetDashboard_ValidationError() {
	s.service.On("GetDashboardReport", mock.Anything, model.ReportQuery{Period: "decade"}).
		Return(model.DashboardReport{}, &service.ValidationError{Message: "period must be one of: today, week, month, quarter, year"})

	resp := s.get("/dashboard?period=decade")

	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	require.Equal(s.T(), "period must be one of: today, week, month, quarter, year", s.errorBody(resp))
	require.Empty(s.T(), s.logs.AllEntries())
}

func (s *ControllerTestSuite) TestGetDashboard_FetchErrorIsHidden() {
	s.service.On("GetDashboardReport", mock.Anything, model.ReportQuery{}).
		Return(model.DashboardReport{}, context.DeadlineExceeded)

	resp := s.get("/dashboard")

	require.Equal(s.T(), http.StatusInternalServerError, resp.StatusCode)
	require.Equal(s.T(), "failed to build dashboard", s.errorBody(resp))
	require.Len(s.T(), s.logs.AllEntries(), 1)
	require.Equal(s.T(), logrus.ErrorLevel, s.logs.LastEntry().Level)
	require.Equal(s.T(), context.DeadlineExceeded, s.logs.LastEntry().Data[logrus.ErrorKey])
}

func (s *ControllerTestSuite) TestGetOrderAnalytics_PassesRangeAndGroupBy() {
	query := model.ReportQuery{StartDate: "2025-01-01", EndDate: "2025-01-31", GroupBy: "week"}
	s.service.On("GetOrderAnalytics", mock.Anything, query).
		Return(model.OrderAnalyticsReport{GroupBy: "week"}, nil)

	resp := s.get("/orders?startDate=2025-01-01&endDate=2025-01-31&groupBy=week")

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
}

func (s *ControllerTestSuite) TestGetCustomerAnalytics() {
	s.service.On("GetCustomerAnalytics", mock.Anything).
		Return(model.CustomerAnalyticsReport{TotalCustomers: 4, ChurnRate: 25}, nil)

	resp := s.get("/customers")

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	var got model.CustomerAnalyticsReport
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(s.T(), 4, got.TotalCustomers)
	require.Equal(s.T(), 25.0, got.ChurnRate)
}

func (s *ControllerTestSuite) TestGetProductAnalytics_Error() {
	s.service.On("GetProductAnalytics", mock.Anything).
		Return(model.ProductAnalyticsReport{}, io.ErrUnexpectedEOF)

	resp := s.get("/products")

	require.Equal(s.T(), http.StatusInternalServerError, resp.StatusCode)
	require.Equal(s.T(), "failed to build product analytics", s.errorBody(resp))
}

func (s *ControllerTestSuite) TestExport_CSVAttachment() {
	query := model.ExportQuery{ReportQuery: model.ReportQuery{Period: "month"}, Type: "products", Format: "csv"}
	body := []byte("productId,name\np1,Mug\n")
	s.service.On("ExportReport", mock.Anything, query).Return("text/csv; charset=utf-8", body, nil)

	resp := s.get("/export?type=products&format=csv&period=month")

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.Equal(s.T(), "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	require.Equal(s.T(), `attachment; filename="products-report.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))
	got, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), body, got)
}

func (s *ControllerTestSuite) TestExport_Defaults() {
	query := model.ExportQuery{Type: "dashboard", Format: "json"}
	s.service.On("ExportReport", mock.Anything, query).Return("application/json", []byte(`{"rows":[]}`), nil)

	resp := s.get("/export")

	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.Equal(s.T(), "application/json", resp.Header.Get(fiber.HeaderContentType))
	require.Equal(s.T(), `attachment; filename="dashboard-report.json"`, resp.Header.Get(fiber.HeaderContentDisposition))
}

func (s *ControllerTestSuite) TestExport_InvalidFormat() {
	query := model.ExportQuery{Type: "orders", Format: "xml"}
	s.service.On("ExportReport", mock.Anything, query).
		Return("", nil, &service.ValidationError{Message: "format must be one of: json, csv"})

	resp := s.get("/export?type=orders&format=xml")

	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	require.Equal(s.T(), "format must be one of: json, csv", s.errorBody(resp))
}

func TestErrorHandler_PlainErrorIsGeneric(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return io.EOF })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "internal server error", body["error"])
}
