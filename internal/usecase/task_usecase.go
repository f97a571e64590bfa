package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/google/uuid"
)

type TaskUsecase struct {
	taskRepo *repository.TaskRepository
	cache    *TaskCache
}

func NewTaskUsecase(taskRepo *repository.TaskRepository, cache *TaskCache) *TaskUsecase {
	return &TaskUsecase{taskRepo: taskRepo, cache: cache}
}

func (uc *TaskUsecase) Cache() *TaskCache {
	return uc.cache
}

// Fetch queries the data service with the filter and replaces the cached
// list. On failure the cache keeps its previous rows.
func (uc *TaskUsecase) Fetch(ctx context.Context, filter dto.TaskFilter) ([]model.Task, error) {
	uc.cache.setLoading(true)
	defer uc.cache.setLoading(false)

	tasks, err := uc.taskRepo.FindTasks(ctx, BuildTaskQuery(filter))
	if err != nil {
		uc.cache.setError(err.Error())
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	uc.cache.replace(tasks, filter)
	return tasks, nil
}

func (uc *TaskUsecase) Add(ctx context.Context, input dto.TaskInput) (*model.Task, error) {
	if err := validateTaskInput(&input); err != nil {
		return nil, err
	}

	task := model.Task{
		TaskGroup:       optional(input.TaskGroup),
		TaskDescription: strings.TrimSpace(input.TaskDescription),
		Model:           input.Model,
		Language:        input.Language,
		FreelancerName:  input.FreelancerName,
		FreelancerType:  input.FreelancerType,
		PayRatePerDay:   input.PayRatePerDay,
		TotalTimeTaken:  input.TotalTimeTaken,
		StartDate:       input.StartDate,
		CompletionDate:  input.CompletionDate,
		TaskStatus:      optional(input.TaskStatus),
	}
	if input.FreelancerID != "" {
		id := uuid.MustParse(input.FreelancerID)
		task.FreelancerID = &id
	}
	if err := uc.taskRepo.CreateTask(ctx, &task); err != nil {
		uc.cache.setError(err.Error())
		return nil, fmt.Errorf("add task: %w", err)
	}
	log.Printf("task %s added for %s", task.ID, task.FreelancerName)
	uc.cache.prepend(task)
	return &task, nil
}

func (uc *TaskUsecase) Update(ctx context.Context, id string, patch dto.TaskPatch) (*model.Task, error) {
	if err := util.ValidateStruct(patch); err != nil {
		return nil, err
	}
	if err := uc.resolveSchedule(ctx, id, &patch); err != nil {
		return nil, err
	}

	fields := patchFields(patch)
	if len(fields) == 0 {
		return nil, util.NewFormError("nothing to update", map[string]string{})
	}
	task, err := uc.taskRepo.UpdateTask(ctx, id, fields)
	if err != nil {
		uc.cache.setError(err.Error())
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	uc.cache.replaceOne(*task)
	return task, nil
}

// resolveSchedule merges the schedule fields of patch with the stored row.
// A changed start date or duration recomputes the completion date unless
// the patch sets one, and the merged dates must keep completion >= start.
func (uc *TaskUsecase) resolveSchedule(ctx context.Context, id string, patch *dto.TaskPatch) error {
	if patch.StartDate == nil && patch.TotalTimeTaken == nil && patch.CompletionDate == nil {
		return nil
	}
	stored, err := uc.taskRepo.FindTaskByID(ctx, id)
	if err != nil {
		uc.cache.setError(err.Error())
		return fmt.Errorf("update task %s: %w", id, err)
	}
	start, days := stored.StartDate, stored.TotalTimeTaken
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.TotalTimeTaken != nil {
		days = *patch.TotalTimeTaken
	}
	if patch.CompletionDate == nil && (patch.StartDate != nil || patch.TotalTimeTaken != nil) {
		completion, err := util.CompletionDate(start, days)
		if err != nil {
			return util.AddFieldError(nil, "completion_date", err.Error())
		}
		patch.CompletionDate = &completion
	}
	if *patch.CompletionDate < start {
		return util.AddFieldError(nil, "completion_date", "completion date must be after or equal to start date")
	}
	return nil
}

func (uc *TaskUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.taskRepo.DeleteTask(ctx, id); err != nil {
		uc.cache.setError(err.Error())
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	uc.cache.remove(id)
	return nil
}

// UniqueValues lists the distinct non-empty values of a cached column, used
// to build filter option lists.
func (uc *TaskUsecase) UniqueValues(field string) ([]string, error) {
	get, ok := taskStringFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSortField, field)
	}
	seen := map[string]struct{}{}
	var values []string
	for _, t := range uc.cache.Tasks() {
		v := get(t)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

// validateTaskInput derives a missing completion date and checks it does not
// precede the start date.
func validateTaskInput(input *dto.TaskInput) error {
	err := util.ValidateStruct(input)
	if input.CompletionDate == "" && input.StartDate != "" && input.TotalTimeTaken > 0 {
		if completion, cerr := util.CompletionDate(input.StartDate, input.TotalTimeTaken); cerr == nil {
			input.CompletionDate = completion
			return err
		}
	}
	if input.CompletionDate != "" && input.StartDate != "" && input.CompletionDate < input.StartDate {
		err = util.AddFieldError(err, "completion_date", "completion date must be after or equal to start date")
	}
	if input.CompletionDate == "" {
		err = util.AddFieldError(err, "completion_date", "completion date is required")
	}
	return err
}

func patchFields(p dto.TaskPatch) map[string]any {
	fields := map[string]any{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setString("task_description", p.TaskDescription)
	setString("model", p.Model)
	setString("language", p.Language)
	setString("freelancer_name", p.FreelancerName)
	setString("freelancer_type", p.FreelancerType)
	setString("start_date", p.StartDate)
	setString("completion_date", p.CompletionDate)
	if p.TaskGroup != nil {
		fields["task_group"] = optional(*p.TaskGroup)
	}
	if p.TaskStatus != nil {
		fields["task_status"] = optional(*p.TaskStatus)
	}
	if p.FreelancerID != nil {
		fields["freelancer_id"] = optional(*p.FreelancerID)
	}
	if p.PayRatePerDay != nil {
		fields["pay_rate_per_day"] = *p.PayRatePerDay
	}
	if p.TotalTimeTaken != nil {
		fields["total_time_taken"] = *p.TotalTimeTaken
	}
	return fields
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
