package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/model"
)

type TaskRepository struct {
	gw Gateway
}

func NewTaskRepository(gw Gateway) *TaskRepository {
	return &TaskRepository{gw}
}

func (r *TaskRepository) FindTasks(ctx context.Context, q Query) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.gw.Select(ctx, TableTasks, q, &tasks); err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].TrimDates()
	}
	return tasks, nil
}

func (r *TaskRepository) FindTaskByID(ctx context.Context, id string) (*model.Task, error) {
	tasks, err := r.FindTasks(ctx, Query{Limit: 1}.Where(Eq("id", id)))
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNotFound
	}
	return &tasks[0], nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) error {
	if err := r.gw.Insert(ctx, TableTasks, task); err != nil {
		return err
	}
	task.TrimDates()
	return nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id string, fields map[string]any) (*model.Task, error) {
	fields["updated_at"] = time.Now()
	var task model.Task
	if err := r.gw.Update(ctx, TableTasks, id, fields, &task); err != nil {
		return nil, err
	}
	task.TrimDates()
	return &task, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, TableTasks, id)
}
