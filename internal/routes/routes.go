package routes

import (
	"github.com/gofiber/fiber/v2"

	"marketplace-analytics/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, reportController controller.ReportController) {
	analytics := app.Group("/api/admin/analytics")
	analytics.Get("/dashboard", reportController.GetDashboard)
	analytics.Get("/orders", reportController.GetOrderAnalytics)
	analytics.Get("/customers", reportController.GetCustomerAnalytics)
	analytics.Get("/products", reportController.GetProductAnalytics)
	analytics.Get("/export", reportController.Export)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
