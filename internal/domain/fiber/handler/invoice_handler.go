package handler

import (
	"errors"
	"strconv"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/middleware"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
)

// HeaderPageCount carries the page count of the previewed invoice PDF.
const HeaderPageCount = "X-Page-Count"

type InvoiceHandler struct {
	uc *usecase.InvoiceUsecase
}

func NewInvoiceHandler(uc *usecase.InvoiceUsecase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	invoices := router.Group("/invoices")
	invoices.Post("/", h.Generate)
	invoices.Get("/current", h.Current)
	invoices.Post("/pdf", middleware.ExportLimiter(), h.PDF)
	invoices.Post("/preview", middleware.ExportLimiter(), h.Preview)
}

func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	req, err := parseInvoiceRequest(c)
	if err != nil {
		return badRequest(c, "invalid invoice request", err)
	}
	invoice, err := h.uc.Generate(c.UserContext(), req)
	if err != nil {
		return invoiceError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Invoice generated",
		Data:    invoice,
	})
}

// Current returns the last successfully generated invoice.
func (h *InvoiceHandler) Current(c *fiber.Ctx) error {
	invoice := h.uc.Current()
	if invoice == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "no invoice generated yet",
			Error:   "no invoice generated yet",
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get invoice",
		Data:    invoice,
	})
}

func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	req, err := parseInvoiceRequest(c)
	if err != nil {
		return badRequest(c, "invalid invoice request", err)
	}
	name, body, err := h.uc.PDF(c.UserContext(), req)
	if err != nil {
		return invoiceError(c, err)
	}
	return download(c, name, "application/pdf", body)
}

func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	req, err := parseInvoiceRequest(c)
	if err != nil {
		return badRequest(c, "invalid invoice request", err)
	}
	png, pages, err := h.uc.Preview(c.UserContext(), req)
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set(HeaderPageCount, strconv.Itoa(pages))
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func parseInvoiceRequest(c *fiber.Ctx) (dto.InvoiceRequest, error) {
	var req dto.InvoiceRequest
	err := c.BodyParser(&req)
	return req, err
}

// invoiceError reports an empty selection as a notice instead of a failure.
func invoiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrNoInvoiceTasks) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
			Error:   err.Error(),
			Details: fiber.Map{"notice": true},
		})
	}
	return fail(c, "failed to generate invoice", err)
}
