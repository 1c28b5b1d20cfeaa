package handler

import (
	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/media"
	"nexus-dashboard/internal/service/reconcile"
	"nexus-dashboard/internal/service/workspace"
)

const maxAttachmentSize = 25 * 1024 * 1024

type ClientHandler struct {
	ws           *workspace.Workspace
	mediaService media.Service
}

func NewClientHandler(ws *workspace.Workspace, mediaService media.Service) *ClientHandler {
	return &ClientHandler{ws: ws, mediaService: mediaService}
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	sale, err := h.ws.Client(c.Params("projectId"), c.Params("clientId"))
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var input domain.SaleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sale, err := h.ws.CreateClient(c.Context(), middleware.GetAppContext(c), c.Params("projectId"), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var input domain.SaleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sale, err := h.ws.UpdateClient(c.Context(), middleware.GetAppContext(c), c.Params("projectId"), c.Params("clientId"), input)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.ws.DeleteClient(c.Context(), c.Params("projectId"), c.Params("clientId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ClientHandler) TogglePaid(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return middleware.BadRequest("Invalid item index")
	}

	sale, err := h.ws.ToggleItemPaid(c.Context(), c.Params("projectId"), c.Params("clientId"), index)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

func (h *ClientHandler) UpdateItemStatus(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return middleware.BadRequest("Invalid item index")
	}

	var input struct {
		Status        domain.ItemStatus `json:"status"`
		RejectionNote string            `json:"rejectionNote"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sale, err := h.ws.UpdateItemStatus(c.Context(), middleware.GetAppContext(c), c.Params("projectId"), c.Params("clientId"), reconcile.ItemStatusChange{
		Index:         index,
		Status:        input.Status,
		RejectionNote: input.RejectionNote,
	})
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

func (h *ClientHandler) Assign(c *fiber.Ctx) error {
	var input struct {
		WorkerIDs        []string `json:"assignedWorkerIds"`
		TeamInstructions string   `json:"teamInstructions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sale, err := h.ws.AssignWorkers(c.Context(), middleware.GetAppContext(c), c.Params("projectId"), c.Params("clientId"), input.WorkerIDs, input.TeamInstructions)
	if err != nil {
		return err
	}
	return c.JSON(sale)
}

func (h *ClientHandler) AddReminder(c *fiber.Ctx) error {
	var input domain.CreateReminderInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	reminder, err := h.ws.AddReminder(c.Context(), c.Params("projectId"), c.Params("clientId"), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(reminder)
}

func (h *ClientHandler) CompleteReminder(c *fiber.Ctx) error {
	err := h.ws.CompleteReminder(c.Context(), c.Params("projectId"), c.Params("clientId"), c.Params("reminderId"))
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadAttachment stores a multipart file and attaches it to the item. Set deliverable=true to
// add it to the item's deliverables instead.
func (h *ClientHandler) UploadAttachment(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return middleware.BadRequest("Invalid item index")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if file.Size > maxAttachmentSize {
		return middleware.BadRequest("File size must be less than 25MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	att, err := h.mediaService.UploadAttachment(c.Context(), file.Filename, mimeType, file.Size, fileReader)
	if err != nil {
		return err
	}

	deliverable := c.FormValue("deliverable") == "true"
	sale, err := h.ws.AddAttachment(c.Context(), middleware.GetAppContext(c), c.Params("projectId"), c.Params("clientId"), index, *att, deliverable)
	if err != nil {
		_ = h.mediaService.DeleteAttachment(c.Context(), att.Data)
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *ClientHandler) AttachmentURL(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return middleware.BadRequest("key is required")
	}
	if !media.IsAttachmentKey(key) {
		return middleware.Forbidden("Only attachment objects can be shared")
	}
	if err := h.ws.AuthorizeAttachment(middleware.GetAppContext(c), key); err != nil {
		return err
	}

	url, err := h.mediaService.AttachmentURL(c.Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"url": url})
}

// MyTasks lists the clients assigned to the current user.
func (h *ClientHandler) MyTasks(c *fiber.Ctx) error {
	type task struct {
		ProjectID   string       `json:"projectId"`
		ProjectName string       `json:"projectName"`
		Client      *domain.Sale `json:"client"`
	}

	assigned := h.ws.AssignedTo(middleware.GetCurrentUserID(c))
	tasks := make([]task, 0, len(assigned))
	for _, pc := range assigned {
		tasks = append(tasks, task{ProjectID: pc.ProjectID, ProjectName: pc.ProjectName, Client: pc.Sale})
	}
	return c.JSON(tasks)
}
