package handler

import (
	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
)

type RateCardHandler struct {
	uc *usecase.RateCardUsecase
}

func NewRateCardHandler(uc *usecase.RateCardUsecase) *RateCardHandler {
	return &RateCardHandler{uc: uc}
}

func (h *RateCardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/rate-card", h.Get)
	router.Put("/rate-card", h.Save)
}

func (h *RateCardHandler) Get(c *fiber.Ctx) error {
	rates, err := h.uc.Fetch(c.UserContext())
	if err != nil {
		return fail(c, "failed to fetch rate card", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get rate card",
		Data:    rates,
	})
}

func (h *RateCardHandler) Save(c *fiber.Ctx) error {
	var data dto.RateCardData
	if err := c.BodyParser(&data); err != nil {
		return badRequest(c, "invalid rate card payload", err)
	}
	rates, err := h.uc.Save(c.UserContext(), data)
	if err != nil {
		return fail(c, "failed to save rate card", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Rate card saved",
		Data:    rates,
	})
}
