package handler

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/media"
	"nexus-dashboard/internal/service/persistence"
	"nexus-dashboard/internal/service/workspace"
)

const maxImportSize = 50 * 1024 * 1024

type BackupHandler struct {
	ws           *workspace.Workspace
	mediaService media.Service
}

func NewBackupHandler(ws *workspace.Workspace, mediaService media.Service) *BackupHandler {
	return &BackupHandler{ws: ws, mediaService: mediaService}
}

// Export downloads the full workspace as a JSON attachment.
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	data, err := persistence.EncodeBackup(h.ws.Export())
	if err != nil {
		return err
	}

	filename := persistence.BackupFilename(middleware.GetAppContext(c).Now())
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Import accepts the document either as the raw request body or as a multipart "file" field.
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	data, err := importBody(c)
	if err != nil {
		return err
	}

	payload, err := persistence.DecodeImport(data)
	if err != nil {
		return middleware.BadRequest(err.Error())
	}

	if err := h.ws.Import(c.Context(), payload); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"legacy":              payload.Legacy,
		"projects":            payload.HasProjects,
		"users":               payload.HasUsers,
		"globalNotifications": payload.HasGlobalNotifications,
		"chatMessages":        payload.HasChatMessages,
		"goals":               payload.HasGoals,
	})
}

// Archive writes the current backup to object storage.
func (h *BackupHandler) Archive(c *fiber.Ctx) error {
	data, err := persistence.EncodeBackup(h.ws.Export())
	if err != nil {
		return err
	}

	key, err := h.mediaService.UploadBackup(c.Context(), persistence.BackupFilename(middleware.GetAppContext(c).Now()), data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

func importBody(c *fiber.Ctx) ([]byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		body := c.Body()
		if len(body) == 0 {
			return nil, middleware.BadRequest("Import file is required")
		}
		return append([]byte(nil), body...), nil
	}
	if file.Size > maxImportSize {
		return nil, middleware.BadRequest("Import file must be less than 50MB")
	}

	f, err := file.Open()
	if err != nil {
		return nil, middleware.BadRequest("Failed to read file")
	}
	defer f.Close()

	return io.ReadAll(f)
}
