package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"marketplace-analytics/internal/export"
	"marketplace-analytics/internal/logger"
	"marketplace-analytics/internal/model"
	"marketplace-analytics/internal/service"
)

type ReportController interface {
	GetDashboard(c *fiber.Ctx) error
	GetOrderAnalytics(c *fiber.Ctx) error
	GetCustomerAnalytics(c *fiber.Ctx) error
	GetProductAnalytics(c *fiber.Ctx) error
	Export(c *fiber.Ctx) error
}

// reportController exposes HTTP handlers for the admin analytics endpoints.
type reportController struct {
	reportService service.ReportService
	log           logrus.FieldLogger
}

// NewReportController builds a ReportController.
func NewReportController(svc service.ReportService, log logrus.FieldLogger) ReportController {
	return &reportController{reportService: svc, log: log}
}

// GetDashboard returns KPIs, trend, segmentation, forecast and alerts.
func (h *reportController) GetDashboard(c *fiber.Ctx) error {
	resp, err := h.reportService.GetDashboardReport(c.UserContext(), reportQuery(c))
	if err != nil {
		return h.fail(c, err, "failed to build dashboard")
	}
	return c.JSON(resp)
}

// GetOrderAnalytics returns order totals, series and distributions.
func (h *reportController) GetOrderAnalytics(c *fiber.Ctx) error {
	resp, err := h.reportService.GetOrderAnalytics(c.UserContext(), reportQuery(c))
	if err != nil {
		return h.fail(c, err, "failed to build order analytics")
	}
	return c.JSON(resp)
}

func (h *reportController) GetCustomerAnalytics(c *fiber.Ctx) error {
	resp, err := h.reportService.GetCustomerAnalytics(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to build customer analytics")
	}
	return c.JSON(resp)
}

func (h *reportController) GetProductAnalytics(c *fiber.Ctx) error {
	resp, err := h.reportService.GetProductAnalytics(c.UserContext())
	if err != nil {
		return h.fail(c, err, "failed to build product analytics")
	}
	return c.JSON(resp)
}

// Export streams a report as a JSON or CSV attachment.
func (h *reportController) Export(c *fiber.Ctx) error {
	q := model.ExportQuery{
		ReportQuery: reportQuery(c),
		Type:        utils.Trim(c.Query("type", service.ExportDashboard), ' '),
		Format:      utils.Trim(c.Query("format", export.FormatJSON), ' '),
	}

	contentType, body, err := h.reportService.ExportReport(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err, "failed to export report")
	}

	ext := export.FormatJSON
	if strings.HasPrefix(contentType, "text/csv") {
		ext = export.FormatCSV
	}
	c.Attachment(strings.ToLower(q.Type) + "-report." + ext)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

// fail maps service errors to HTTP errors. Validation failures are reported
// verbatim; anything else is logged and hidden behind msg.
func (h *reportController) fail(c *fiber.Ctx, err error, msg string) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return fiber.NewError(fiber.StatusBadRequest, vErr.Error())
	}

	h.log.WithError(err).WithFields(logrus.Fields{
		"path":       c.Path(),
		"request_id": logger.RequestID(c),
	}).Error(msg)
	return fiber.NewError(fiber.StatusInternalServerError, msg)
}

func reportQuery(c *fiber.Ctx) model.ReportQuery {
	return model.ReportQuery{
		Period:    utils.Trim(c.Query("period"), ' '),
		StartDate: utils.Trim(c.Query("startDate"), ' '),
		EndDate:   utils.Trim(c.Query("endDate"), ' '),
		GroupBy:   utils.Trim(c.Query("groupBy"), ' '),
	}
}

// ErrorHandler renders errors as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	msg := err.Error()
	if code == fiber.StatusInternalServerError && fe == nil {
		msg = "internal server error"
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
