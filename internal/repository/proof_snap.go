package repository

import (
	"context"
	"time"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/xcontext"
)

type ProofSnapRepository interface {
	// Create relies on the unique (user_id, perceptual_hash) index; a
	// duplicate submission racing past the pre-check fails here.
	Create(ctx context.Context, snap *entity.ProofSnap) error

	GetByUserAndHash(ctx context.Context, userID, hash string) (*entity.ProofSnap, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
	GetCreatedBefore(ctx context.Context, before time.Time) ([]entity.ProofSnap, error)
	Delete(ctx context.Context, id string) error
}

type proofSnapRepository struct{}

func NewProofSnapRepository() *proofSnapRepository {
	return &proofSnapRepository{}
}

func (r *proofSnapRepository) Create(ctx context.Context, snap *entity.ProofSnap) error {
	return xcontext.DB(ctx).Create(snap).Error
}

func (r *proofSnapRepository) GetByUserAndHash(
	ctx context.Context, userID, hash string,
) (*entity.ProofSnap, error) {
	var result entity.ProofSnap
	err := xcontext.DB(ctx).
		Where("user_id=? AND perceptual_hash=?", userID, hash).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *proofSnapRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ProofSnap{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *proofSnapRepository) GetCreatedBefore(
	ctx context.Context, before time.Time,
) ([]entity.ProofSnap, error) {
	var result []entity.ProofSnap
	err := xcontext.DB(ctx).
		Where("created_at < ?", before).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete of an already-deleted row is a no-op, which keeps overlapping purge
// runs safe.
func (r *proofSnapRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.ProofSnap{}, "id=?", id).Error
}
