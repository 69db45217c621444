package repository

import (
	"context"
	"errors"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StreakRepository interface {
	Create(ctx context.Context, streak *entity.Streak) error
	Get(ctx context.Context, habitID, userID string) (*entity.Streak, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Streak, error)
	Update(ctx context.Context, streak *entity.Streak) error
}

type streakRepository struct{}

func NewStreakRepository() *streakRepository {
	return &streakRepository{}
}

func (r *streakRepository) Create(ctx context.Context, streak *entity.Streak) error {
	return xcontext.DB(ctx).Create(streak).Error
}

func (r *streakRepository) Get(ctx context.Context, habitID, userID string) (*entity.Streak, error) {
	var result entity.Streak
	err := xcontext.DB(ctx).
		Where("habit_id=? AND user_id=?", habitID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *streakRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Streak, error) {
	var result []entity.Streak
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *streakRepository) Update(ctx context.Context, streak *entity.Streak) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Streak{}).
		Where("habit_id=? AND user_id=?", streak.HabitID, streak.UserID).
		Updates(map[string]any{
			"current_streak":      streak.CurrentStreak,
			"longest_streak":      streak.LongestStreak,
			"last_completed_date": streak.LastCompletedDate,
		})

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
