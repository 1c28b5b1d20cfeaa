package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/workspace"
)

type SettingsHandler struct {
	ws *workspace.Workspace
}

func NewSettingsHandler(ws *workspace.Workspace) *SettingsHandler {
	return &SettingsHandler{ws: ws}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"language": h.ws.Language()})
}

func (h *SettingsHandler) SetLanguage(c *fiber.Ctx) error {
	var input struct {
		Language string `json:"language"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	lang, err := h.ws.SetLanguage(c.Context(), input.Language)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"language": lang})
}
