package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/dashboard"
	"nexus-dashboard/internal/service/workspace"
)

type GoalHandler struct {
	ws               *workspace.Workspace
	dashboardService dashboard.Service
}

func NewGoalHandler(ws *workspace.Workspace, dashboardService dashboard.Service) *GoalHandler {
	return &GoalHandler{ws: ws, dashboardService: dashboardService}
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.ws.Goals())
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	goal, err := h.ws.CreateGoal(c.Context(), middleware.GetAppContext(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	if err := h.ws.DeleteGoal(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Active returns progress toward the goal covering today, or null.
func (h *GoalHandler) Active(c *fiber.Ctx) error {
	return c.JSON(h.dashboardService.GetGoalProgress(c.Context(), middleware.GetAppContext(c).Now()))
}
