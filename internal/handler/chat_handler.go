package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/workspace"
)

type ChatHandler struct {
	ws *workspace.Workspace
}

func NewChatHandler(ws *workspace.Workspace) *ChatHandler {
	return &ChatHandler{ws: ws}
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.ws.SendMessage(c.Context(), middleware.GetAppContext(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ChatHandler) Conversation(c *fiber.Ctx) error {
	return c.JSON(h.ws.Conversation(middleware.GetCurrentUserID(c), c.Params("userId")))
}

func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	n, err := h.ws.MarkConversationRead(c.Context(), middleware.GetCurrentUserID(c), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"updated": n})
}

func (h *ChatHandler) UnreadCounts(c *fiber.Ctx) error {
	return c.JSON(h.ws.UnreadCounts(middleware.GetCurrentUserID(c)))
}
