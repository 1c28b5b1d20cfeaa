package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.GetStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.dashboardService.GetOverview(c.Context(), middleware.GetAppContext(c).Now())
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	now := middleware.GetAppContext(c).Now()
	r, from, to, err := windowQuery(c, now)
	if err != nil {
		return err
	}

	a, err := h.dashboardService.GetAnalytics(c.Context(), r, now, from, to)
	if err != nil {
		return err
	}
	return c.JSON(a)
}

func (h *DashboardHandler) GetProjects(c *fiber.Ctx) error {
	return c.JSON(h.dashboardService.GetProjectFinancials(c.Context()))
}
