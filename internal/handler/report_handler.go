package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"nexus-dashboard/internal/middleware"
	"nexus-dashboard/internal/service/analytics"
	"nexus-dashboard/internal/service/report"
	"nexus-dashboard/internal/service/workspace"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	ws *workspace.Workspace
}

func NewReportHandler(ws *workspace.Workspace) *ReportHandler {
	return &ReportHandler{ws: ws}
}

func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	rows, err := h.rows(c)
	if err != nil {
		return err
	}
	data, err := report.CSV(rows)
	if err != nil {
		return err
	}
	return sendFile(c, data, "text/csv; charset=utf-8", report.Filename(middleware.GetAppContext(c).Now(), "csv"))
}

func (h *ReportHandler) XLSX(c *fiber.Ctx) error {
	rows, err := h.rows(c)
	if err != nil {
		return err
	}
	data, err := report.XLSX(rows)
	if err != nil {
		return err
	}
	return sendFile(c, data, mimeXLSX, report.Filename(middleware.GetAppContext(c).Now(), "xlsx"))
}

func (h *ReportHandler) rows(c *fiber.Ctx) ([]report.Row, error) {
	ac := middleware.GetAppContext(c)
	now := ac.Now()
	r, from, to, err := windowQuery(c, now)
	if err != nil {
		return nil, err
	}
	window, err := analytics.Resolve(r, now, from, to)
	if err != nil {
		return nil, middleware.BadRequest(err.Error())
	}
	return report.Rows(h.ws.Projects(), window, ac.Locale), nil
}

func sendFile(c *fiber.Ctx, data []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
