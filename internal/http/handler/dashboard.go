package handler

import (
	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/http/middleware"
	"realtyapi/internal/service"
)

// GetDashboardKPIs returns the caller's headline figures.
//
// @Summary Dashboard KPIs
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardKPIs
// @Failure 401 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/v1/dashboard/kpis [get]
func GetDashboardKPIs(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kpis, err := svc.GetKPIs(c.UserContext(), middleware.OwnerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(kpis)
	}
}

// GetSalesChart returns sold value per month for the last six months.
//
// @Summary Sales chart
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SalesChart
// @Failure 401 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/v1/dashboard/sales-chart [get]
func GetSalesChart(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		chart, err := svc.GetSalesChart(c.UserContext(), middleware.OwnerID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(chart)
	}
}
