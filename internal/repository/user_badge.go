package repository

import (
	"context"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
)

type UserBadgeRepository interface {
	// Create relies on the (user_id, badge_key) primary key: a duplicate
	// insert fails at the store layer, which is the awarding guarantee.
	Create(ctx context.Context, userBadge *entity.UserBadge) error

	Get(ctx context.Context, userID, badgeKey string) (*entity.UserBadge, error)
	GetAll(ctx context.Context, userID string) ([]entity.UserBadge, error)
	UpdateNotification(ctx context.Context, userID string) error
}

type userBadgeRepository struct{}

func NewUserBadgeRepository() *userBadgeRepository {
	return &userBadgeRepository{}
}

func (r *userBadgeRepository) Create(ctx context.Context, userBadge *entity.UserBadge) error {
	return xcontext.DB(ctx).Create(userBadge).Error
}

func (r *userBadgeRepository) Get(ctx context.Context, userID, badgeKey string) (*entity.UserBadge, error) {
	var result entity.UserBadge
	err := xcontext.DB(ctx).
		Where("user_id=? AND badge_key=?", userID, badgeKey).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userBadgeRepository) GetAll(ctx context.Context, userID string) ([]entity.UserBadge, error) {
	var result []entity.UserBadge
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userBadgeRepository) UpdateNotification(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.UserBadge{}).
		Where("user_id=?", userID).
		Update("was_notified", true).Error
}
