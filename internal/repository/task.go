package repository

import (
	"context"
	"time"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
)

type TaskFilter struct {
	UserID    string
	Completed *bool
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetList(ctx context.Context, filter TaskFilter) ([]entity.Task, error)

	// MarkCompleted sets the completion flag only if it is still unset and
	// reports whether this call won. Completion is monotonic.
	MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error)

	CountCompleted(ctx context.Context, userID string) (int64, error)
	GetCompletionTimesSince(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
}

type taskRepository struct{}

func NewTaskRepository() *taskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return xcontext.DB(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var result entity.Task
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *taskRepository) GetList(ctx context.Context, filter TaskFilter) ([]entity.Task, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", filter.UserID)
	if filter.Completed != nil {
		tx = tx.Where("is_completed=?", *filter.Completed)
	}

	var result []entity.Task
	if err := tx.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) MarkCompleted(ctx context.Context, id string, at time.Time) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=? AND is_completed=?", id, false).
		Updates(map[string]any{"is_completed": true, "completed_at": at})

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *taskRepository) CountCompleted(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("user_id=? AND is_completed=?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *taskRepository) GetCompletionTimesSince(
	ctx context.Context, userID string, since time.Time,
) ([]time.Time, error) {
	var result []time.Time
	err := xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("user_id=? AND is_completed=? AND completed_at >= ?", userID, true, since).
		Pluck("completed_at", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
