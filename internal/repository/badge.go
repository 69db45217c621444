package repository

import (
	"context"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
)

type BadgeRepository interface {
	GetAll(ctx context.Context) ([]entity.Badge, error)
	GetByKey(ctx context.Context, key string) (*entity.Badge, error)
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) GetAll(ctx context.Context) ([]entity.Badge, error) {
	var result []entity.Badge
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) GetByKey(ctx context.Context, key string) (*entity.Badge, error) {
	var result entity.Badge
	if err := xcontext.DB(ctx).Take(&result, "key=?", key).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
