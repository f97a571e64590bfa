package handler

import (
	"strings"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	uc   *usecase.TaskUsecase
	form *usecase.TaskFormUsecase
}

func NewTaskHandler(uc *usecase.TaskUsecase, form *usecase.TaskFormUsecase) *TaskHandler {
	return &TaskHandler{uc: uc, form: form}
}

func (h *TaskHandler) RegisterRoutes(router fiber.Router) {
	tasks := router.Group("/tasks")
	tasks.Get("/", h.List)
	tasks.Post("/", h.Create)
	tasks.Get("/cache", h.CacheState)
	tasks.Get("/options/:field", h.Options)
	tasks.Post("/derive", h.Derive)
	tasks.Patch("/:id", h.Update)
	tasks.Delete("/:id", h.Delete)
}

// List re-queries the data service with the filter taken from the query
// string and returns the refreshed list.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	filter := ParseTaskFilter(c)
	if err := util.ValidateStruct(filter.DateRange); err != nil {
		return fail(c, "invalid date range", err)
	}
	tasks, err := h.uc.Fetch(c.UserContext(), filter)
	if err != nil {
		return fail(c, "failed to fetch tasks", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get tasks",
		Data:    tasks,
		Meta:    fiber.Map{"total": len(tasks), "filter": filter},
	})
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var input dto.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "invalid task payload", err)
	}
	task, err := h.uc.Add(c.UserContext(), input)
	if err != nil {
		return fail(c, "failed to add task", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Task added",
		Data:    task,
	})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var patch dto.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "invalid task payload", err)
	}
	task, err := h.uc.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return fail(c, "failed to update task", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Task updated",
		Data:    task,
	})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, "failed to delete task", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Task deleted",
	})
}

func (h *TaskHandler) CacheState(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get cached tasks",
		Data:    h.uc.Cache().State(),
	})
}

// Options lists the distinct values of one cached column for the filter
// drop-downs.
func (h *TaskHandler) Options(c *fiber.Ctx) error {
	values, err := h.uc.UniqueValues(c.Params("field"))
	if err != nil {
		return badRequest(c, err.Error(), err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get options",
		Data:    values,
	})
}

func (h *TaskHandler) Derive(c *fiber.Ctx) error {
	var draft dto.TaskDraft
	if err := c.BodyParser(&draft); err != nil {
		return badRequest(c, "invalid task draft", err)
	}
	derived, err := h.form.Derive(c.UserContext(), draft)
	if err != nil {
		return fail(c, "failed to derive task fields", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success derive task fields",
		Data:    derived,
	})
}

// ParseTaskFilter reads the filter from the query string. Set dimensions may
// be repeated (?language=Hindi&language=Tamil) or comma separated.
func ParseTaskFilter(c *fiber.Ctx) dto.TaskFilter {
	return dto.TaskFilter{
		DateRange: dto.DateRange{
			Start: c.Query("start"),
			End:   c.Query("end"),
		},
		FreelancerNames: queryValues(c, "freelancer_name"),
		Languages:       queryValues(c, "language"),
		Models:          queryValues(c, "model"),
		FreelancerTypes: queryValues(c, "freelancer_type"),
		Statuses:        queryValues(c, "task_status"),
		Search:          strings.TrimSpace(c.Query("search")),
	}
}

func queryValues(c *fiber.Ctx, key string) []string {
	var values []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}
