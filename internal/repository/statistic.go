package repository

import (
	"context"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type StatisticRepository interface {
	Upsert(ctx context.Context, statistic *entity.UserStatistic) error
	Get(ctx context.Context, userID string) (*entity.UserStatistic, error)
}

type statisticRepository struct{}

func NewStatisticRepository() *statisticRepository {
	return &statisticRepository{}
}

func (r *statisticRepository) Upsert(ctx context.Context, statistic *entity.UserStatistic) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(statistic).Error
}

func (r *statisticRepository) Get(ctx context.Context, userID string) (*entity.UserStatistic, error) {
	var result entity.UserStatistic
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
