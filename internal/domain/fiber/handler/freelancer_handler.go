package handler

import (
	"errors"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
)

type FreelancerHandler struct {
	uc *usecase.FreelancerUsecase
}

func NewFreelancerHandler(uc *usecase.FreelancerUsecase) *FreelancerHandler {
	return &FreelancerHandler{uc: uc}
}

func (h *FreelancerHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/languages", h.Languages)

	freelancers := router.Group("/freelancers")
	freelancers.Get("/", h.List)
	freelancers.Post("/", h.Create)
	freelancers.Patch("/:id", h.Update)
	freelancers.Delete("/:id", h.Delete)
	freelancers.Post("/:id/languages", h.AddLanguage)
}

// List returns every freelancer ordered by name, narrowed by ?search= when
// given.
func (h *FreelancerHandler) List(c *fiber.Ctx) error {
	freelancers, err := h.uc.Fetch(c.UserContext())
	if err != nil {
		return fail(c, "failed to fetch freelancers", err)
	}
	found := usecase.Search(freelancers, c.Query("search"))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get freelancers",
		Data:    found,
		Meta:    fiber.Map{"total": len(found)},
	})
}

func (h *FreelancerHandler) Create(c *fiber.Ctx) error {
	var input dto.FreelancerInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid freelancer payload", err)
	}
	f, err := h.uc.Add(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, usecase.ErrDuplicateFreelancer) {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: err.Error(),
				Error:   err.Error(),
				Details: f,
			})
		}
		return fail(c, "failed to add freelancer", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Freelancer added",
		Data:    f,
	})
}

func (h *FreelancerHandler) Update(c *fiber.Ctx) error {
	var patch dto.FreelancerPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid freelancer payload", err)
	}
	f, err := h.uc.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return fail(c, "failed to update freelancer", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Freelancer updated",
		Data:    f,
	})
}

func (h *FreelancerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "failed to delete freelancer", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Freelancer deleted",
	})
}

func (h *FreelancerHandler) AddLanguage(c *fiber.Ctx) error {
	var input dto.LanguageInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid language payload", err)
	}
	lang, f, err := h.uc.AddLanguage(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return fail(c, "failed to add language", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Language added",
		Data:    fiber.Map{"language": lang, "freelancer": f},
	})
}

// Languages is the selectable language list: the built-in catalog merged
// with every language registered on a freelancer.
func (h *FreelancerHandler) Languages(c *fiber.Ctx) error {
	freelancers, err := h.uc.Fetch(c.UserContext())
	if err != nil {
		return fail(c, "failed to fetch languages", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get languages",
		Data:    usecase.Languages(freelancers),
	})
}
