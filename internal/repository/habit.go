package repository

import (
	"context"
	"errors"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HabitRepository interface {
	Create(ctx context.Context, habit *entity.Habit) error
	GetByID(ctx context.Context, id string) (*entity.Habit, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Habit, error)
	Archive(ctx context.Context, id, userID string) error
}

type habitRepository struct{}

func NewHabitRepository() *habitRepository {
	return &habitRepository{}
}

func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	return xcontext.DB(ctx).Create(habit).Error
}

func (r *habitRepository) GetByID(ctx context.Context, id string) (*entity.Habit, error) {
	var result entity.Habit
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *habitRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Habit, error) {
	var result []entity.Habit
	err := xcontext.DB(ctx).
		Where("user_id=? AND is_active=?", userID, true).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *habitRepository) Archive(ctx context.Context, id, userID string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Habit{}).
		Where("id=? AND user_id=?", id, userID).
		Update("is_active", false)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
