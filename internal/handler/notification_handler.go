package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/workspace"
)

type NotificationHandler struct {
	ws *workspace.Workspace
}

func NewNotificationHandler(ws *workspace.Workspace) *NotificationHandler {
	return &NotificationHandler{ws: ws}
}

// List returns the notifications addressed to the current user, or all of them for admins.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	all := h.ws.Notifications()
	if middleware.IsAdmin(c) {
		return c.JSON(all)
	}

	userID := middleware.GetCurrentUserID(c)
	mine := []domain.GlobalNotification{}
	for i := range all {
		if all[i].IsFor(userID) {
			mine = append(mine, all[i])
		}
	}
	return c.JSON(mine)
}

func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var input domain.SendNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	n, err := h.ws.SendNotification(c.Context(), middleware.GetAppContext(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	if err := h.ws.MarkNotificationRead(c.Context(), middleware.GetAppContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
