package repository

import (
	"context"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
)

type XPLogRepository interface {
	Create(ctx context.Context, log *entity.XPLog) error

	// SumByUserID recomputes the total from the ledger itself. The profile
	// cache is always rewritten from this value, never incremented.
	SumByUserID(ctx context.Context, userID string) (int64, error)

	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.XPLog, error)
}

type xpLogRepository struct{}

func NewXPLogRepository() *xpLogRepository {
	return &xpLogRepository{}
}

func (r *xpLogRepository) Create(ctx context.Context, log *entity.XPLog) error {
	return xcontext.DB(ctx).Create(log).Error
}

func (r *xpLogRepository) SumByUserID(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := xcontext.DB(ctx).
		Model(&entity.XPLog{}).
		Where("user_id=?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *xpLogRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.XPLog, error) {
	var result []entity.XPLog
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
