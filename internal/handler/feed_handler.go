package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/feed"
	"nexus-dashboard/internal/service/workspace"
)

type FeedHandler struct {
	ws *workspace.Workspace
}

func NewFeedHandler(ws *workspace.Workspace) *FeedHandler {
	return &FeedHandler{ws: ws}
}

func (h *FeedHandler) List(c *fiber.Ctx) error {
	entries := h.ws.Feed(middleware.GetAppContext(c))
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *FeedHandler) MarkRead(c *fiber.Ctx) error {
	var ref feed.Ref
	if err := c.BodyParser(&ref); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.ws.MarkFeedRead(c.Context(), middleware.GetAppContext(c), ref); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
