package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/workspace"
)

type UserHandler struct {
	ws *workspace.Workspace
}

func NewUserHandler(ws *workspace.Workspace) *UserHandler {
	return &UserHandler{ws: ws}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	return c.JSON(publicUsers(h.ws.Users()))
}

func (h *UserHandler) ListWorkers(c *fiber.Ctx) error {
	return c.JSON(publicUsers(h.ws.Workers()))
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.ws.CreateUser(c.Context(), middleware.GetAppContext(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(publicUser(*user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == middleware.GetCurrentUserID(c) {
		return middleware.BadRequest("You cannot delete your own account")
	}
	if err := h.ws.DeleteUser(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetStatus lets workers set their own availability; admins may set anyone's.
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != middleware.GetCurrentUserID(c) && !middleware.IsAdmin(c) {
		return middleware.Forbidden("Insufficient permissions for this operation")
	}

	var input struct {
		WorkerStatus domain.WorkerStatus `json:"workerStatus"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.ws.SetWorkerStatus(c.Context(), id, input.WorkerStatus)
	if err != nil {
		return err
	}
	return c.JSON(publicUser(*user))
}
