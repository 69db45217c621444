package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskDomain struct {
	taskRepo  repository.TaskRepository
	habitRepo repository.HabitRepository
}

func NewTaskDomain(
	taskRepo repository.TaskRepository,
	habitRepo repository.HabitRepository,
) *TaskDomain {
	return &TaskDomain{taskRepo: taskRepo, habitRepo: habitRepo}
}

func (d *TaskDomain) Create(
	ctx context.Context, req *model.CreateTaskRequest,
) (*model.CreateTaskResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.XPReward < 0 {
		return nil, errorx.New(errorx.BadRequest, "XP reward must not be negative")
	}

	task := &entity.Task{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   userID,
		Title:    req.Title,
		XPReward: req.XPReward,
	}

	if req.DueDate != nil {
		task.DueDate = sql.NullTime{Valid: true, Time: *req.DueDate}
	}

	if req.HabitID != "" {
		habit, err := d.habitRepo.GetByID(ctx, req.HabitID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found habit")
			}

			xcontext.Logger(ctx).Errorf("Cannot get habit: %v", err)
			return nil, errorx.Unknown
		}

		if habit.UserID != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		task.HabitID = sql.NullString{Valid: true, String: habit.ID}
	}

	if err := d.taskRepo.Create(ctx, task); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTaskResponse{ID: task.ID}, nil
}

func (d *TaskDomain) GetMyTasks(
	ctx context.Context, req *model.GetMyTasksRequest,
) (*model.GetMyTasksResponse, error) {
	tasks, err := d.taskRepo.GetList(ctx, repository.TaskFilter{
		UserID:    xcontext.RequestUserID(ctx),
		Completed: req.Completed,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tasks: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyTasksResponse{Tasks: []model.Task{}}
	for _, task := range tasks {
		t := model.Task{
			ID:          task.ID,
			Title:       task.Title,
			XPReward:    task.XPReward,
			IsCompleted: task.IsCompleted,
		}

		if task.HabitID.Valid {
			t.HabitID = task.HabitID.String
		}

		if task.DueDate.Valid {
			due := task.DueDate.Time
			t.DueDate = &due
		}

		if task.CompletedAt.Valid {
			completedAt := task.CompletedAt.Time
			t.CompletedAt = &completedAt
		}

		resp.Tasks = append(resp.Tasks, t)
	}

	return resp, nil
}
