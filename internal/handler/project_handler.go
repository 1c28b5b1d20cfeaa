package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/analytics"
	"nexus-dashboard/internal/service/workspace"
)

type ProjectHandler struct {
	ws *workspace.Workspace
}

func NewProjectHandler(ws *workspace.Workspace) *ProjectHandler {
	return &ProjectHandler{ws: ws}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.ws.Projects())
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.ws.Project(c.Params("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"project":    project,
		"financials": analytics.Financials(project),
	})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	project, err := h.ws.CreateProject(c.Context(), middleware.GetAppContext(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	project, err := h.ws.UpdateProject(c.Context(), c.Params("projectId"), input)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	if err := h.ws.DeleteProject(c.Context(), c.Params("projectId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
