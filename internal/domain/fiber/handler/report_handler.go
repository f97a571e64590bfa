package handler

import (
	"bytes"

	"github.com/fadilmartias/freelance-ledger/internal/export"
	"github.com/fadilmartias/freelance-ledger/internal/middleware"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	table := router.Group("/tasks/table")
	table.Get("/", h.Table)
	table.Post("/sort/:field", h.Sort)
	table.Post("/page/:page", h.Page)

	router.Get("/charts/:dimension", h.Chart)
	router.Get("/charts/:dimension/html", h.ChartHTML)

	router.Get("/export/csv", middleware.ExportLimiter(), h.ExportCSV)
	router.Get("/export/xlsx", middleware.ExportLimiter(), h.ExportExcel)
}

func (h *ReportHandler) Table(c *fiber.Ctx) error {
	rows, pagination, sort, err := h.uc.Table()
	if err != nil {
		return fail(c, "failed to render task table", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get task table",
		Data:       rows,
		Pagination: pagination,
		Meta:       fiber.Map{"sort": sort},
	})
}

// Sort toggles the direction when the field is already the sort key and
// starts ascending otherwise.
func (h *ReportHandler) Sort(c *fiber.Ctx) error {
	if _, err := h.uc.SortBy(c.Params("field")); err != nil {
		return fail(c, "failed to sort task table", err)
	}
	return h.Table(c)
}

func (h *ReportHandler) Page(c *fiber.Ctx) error {
	page, err := c.ParamsInt("page")
	if err != nil {
		return badRequest(c, "page must be a number", err)
	}
	h.uc.SetPage(page)
	return h.Table(c)
}

func (h *ReportHandler) Chart(c *fiber.Ctx) error {
	chart, err := h.uc.Chart(c.Params("dimension"))
	if err != nil {
		return fail(c, "failed to build chart", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get chart",
		Data:    chart,
	})
}

// ChartHTML renders the chart as a standalone page. ?type=pie switches from
// the default bar chart.
func (h *ReportHandler) ChartHTML(c *fiber.Ctx) error {
	chart, err := h.uc.Chart(c.Params("dimension"))
	if err != nil {
		return fail(c, "failed to build chart", err)
	}
	var buf bytes.Buffer
	if err := export.RenderChart(&buf, chart, c.Query("type", export.ChartBar)); err != nil {
		return badRequest(c, err.Error(), err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	name, body, err := h.uc.CSV()
	if err != nil {
		return fail(c, "failed to export csv", err)
	}
	return download(c, name, mimeCSV, body)
}

func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	name, body, err := h.uc.Excel()
	if err != nil {
		return fail(c, "failed to export excel", err)
	}
	return download(c, name, mimeXLSX, body)
}
