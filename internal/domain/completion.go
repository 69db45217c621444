package domain

import (
	"context"
	"errors"
	"time"

	"github.com/habitforge/backend/internal/domain/badge"
	"github.com/habitforge/backend/internal/domain/progression"
	"github.com/habitforge/backend/internal/domain/statistic"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CompletionDomain struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository

	streakTracker *progression.Tracker
	ledger        *progression.Ledger
	aggregator    *statistic.Aggregator
	badgeEngine   *badge.Engine

	now func() time.Time
}

func NewCompletionDomain(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	streakTracker *progression.Tracker,
	ledger *progression.Ledger,
	aggregator *statistic.Aggregator,
	badgeEngine *badge.Engine,
) *CompletionDomain {
	return &CompletionDomain{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		streakTracker: streakTracker,
		ledger:        ledger,
		aggregator:    aggregator,
		badgeEngine:   badgeEngine,
		now:           time.Now,
	}
}

// Complete marks the task done and drives streak, xp, statistics, and badge
// evaluation in that order. The durable part (completion flag, streak, xp)
// commits first; a failure in the refresh or badge steps afterwards leaves
// the completion in place and is reported through the warning field, so the
// caller never retries the whole flow and double-credits.
func (d *CompletionDomain) Complete(
	ctx context.Context, req *model.CompleteTaskRequest,
) (*model.CompleteTaskResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	task, err := d.taskRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	if task.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if task.IsCompleted {
		return nil, errorx.New(errorx.AlreadyExists, "Task is already completed")
	}

	now := d.now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The conditional update is the real guard against double completion;
	// the flag check above only gives a friendlier early error.
	won, err := d.taskRepo.MarkCompleted(ctx, task.ID, now)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark task completed: %v", err)
		return nil, errorx.Unknown
	}

	if !won {
		return nil, errorx.New(errorx.AlreadyExists, "Task is already completed")
	}

	if task.HabitID.Valid {
		if _, err := d.streakTracker.RecordCompletion(ctx, task.HabitID.String, userID, now); err != nil {
			return nil, err
		}
	}

	if _, err := d.ledger.Credit(ctx, userID, task.XPReward, entity.XPSourceTask, task.ID); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	resp := &model.CompleteTaskResponse{}
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after completion: %v", err)
		return nil, errorx.Unknown
	}
	resp.TotalXP = user.TotalXP
	resp.Level = user.Level

	if _, err := d.aggregator.Refresh(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot refresh statistics after completion: %v", err)
		resp.Warning = "Task completed, but statistics refresh failed"
		return resp, nil
	}

	awarded, err := d.badgeEngine.EvaluateAndAward(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot evaluate badges after completion: %v", err)
		resp.Warning = "Task completed, but badge evaluation failed"
		return resp, nil
	}

	for _, b := range awarded {
		resp.NewBadges = append(resp.NewBadges, model.Badge{
			Key:              b.Key,
			Name:             b.Name,
			Category:         b.Category,
			RequirementType:  string(b.RequirementType),
			RequirementValue: b.RequirementValue,
		})
	}

	return resp, nil
}
