package handler

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
)

// fail maps usecase errors to a status code and writes the error envelope.
// message describes the operation that failed.
func fail(c *fiber.Ctx, message string, err error) error {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: formErr.Message,
			Error:   formErr.Message,
			Details: formErr.Errors,
		})
	}

	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateFreelancer):
		code = fiber.StatusConflict
	case errors.Is(err, usecase.ErrNoInvoiceTasks):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrIncompleteSelection),
		errors.Is(err, usecase.ErrUnknownSortField),
		errors.Is(err, usecase.ErrUnknownDimension):
		code = fiber.StatusBadRequest
	}

	msg := message
	if code != fiber.StatusInternalServerError {
		msg = err.Error()
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: msg,
		Error:   fmt.Sprintf("%s: %v", message, err),
	}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
		Error:   message,
	}, err)
}

// download sends body as an attachment.
func download(c *fiber.Ctx, filename, contentType string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
