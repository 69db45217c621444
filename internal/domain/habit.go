package domain

import (
	"context"
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

type HabitDomain struct {
	habitRepo  repository.HabitRepository
	streakRepo repository.StreakRepository
}

func NewHabitDomain(
	habitRepo repository.HabitRepository,
	streakRepo repository.StreakRepository,
) *HabitDomain {
	return &HabitDomain{habitRepo: habitRepo, streakRepo: streakRepo}
}

// Create provisions the habit together with its zeroed streak row. The streak
// tracker assumes the row exists, so both inserts share one transaction.
func (d *HabitDomain) Create(
	ctx context.Context, req *model.CreateHabitRequest,
) (*model.CreateHabitResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	habit := &entity.Habit{
		Base:     entity.Base{ID: uuid.NewString()},
		UserID:   xcontext.RequestUserID(ctx),
		Title:    req.Title,
		Color:    req.Color,
		IsActive: true,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.habitRepo.Create(ctx, habit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create habit: %v", err)
		return nil, errorx.Unknown
	}

	err := d.streakRepo.Create(ctx, &entity.Streak{
		HabitID: habit.ID,
		UserID:  habit.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot provision streak row: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateHabitResponse{ID: habit.ID}, nil
}

func (d *HabitDomain) GetMyHabits(
	ctx context.Context, req *model.GetMyHabitsRequest,
) (*model.GetMyHabitsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	habits, err := d.habitRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get habits: %v", err)
		return nil, errorx.Unknown
	}

	streaks, err := d.streakRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get streaks: %v", err)
		return nil, errorx.Unknown
	}

	streakByHabit := make(map[string]entity.Streak, len(streaks))
	for _, streak := range streaks {
		streakByHabit[streak.HabitID] = streak
	}

	resp := &model.GetMyHabitsResponse{Habits: []model.Habit{}}
	for _, habit := range habits {
		h := model.Habit{
			ID:       habit.ID,
			Title:    habit.Title,
			Color:    habit.Color,
			IsActive: habit.IsActive,
		}

		if streak, ok := streakByHabit[habit.ID]; ok {
			h.CurrentStreak = streak.CurrentStreak
			h.LongestStreak = streak.LongestStreak
			if streak.LastCompletedDate.Valid {
				last := streak.LastCompletedDate.Time
				h.LastCompletedDate = &last
			}
		}

		resp.Habits = append(resp.Habits, h)
	}

	return resp, nil
}

func (d *HabitDomain) Archive(
	ctx context.Context, req *model.ArchiveHabitRequest,
) (*model.ArchiveHabitResponse, error) {
	err := d.habitRepo.Archive(ctx, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found habit")
		}

		xcontext.Logger(ctx).Errorf("Cannot archive habit: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ArchiveHabitResponse{}, nil
}
