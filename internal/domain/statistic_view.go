package domain

import (
	"context"
	"errors"

	"github.com/habitforge/backend/internal/domain/progression"
	"github.com/habitforge/backend/internal/domain/statistic"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const defaultLeaderboardLimit = 10

type StatisticDomain struct {
	aggregator  *statistic.Aggregator
	leaderboard *statistic.Leaderboard
}

func NewStatisticDomain(
	aggregator *statistic.Aggregator,
	leaderboard *statistic.Leaderboard,
) *StatisticDomain {
	return &StatisticDomain{aggregator: aggregator, leaderboard: leaderboard}
}

func (d *StatisticDomain) GetMyStatistic(
	ctx context.Context, req *model.GetMyStatisticRequest,
) (*model.GetMyStatisticResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	snapshot, err := d.aggregator.Get(ctx, userID)
	if err != nil {
		// The snapshot is derived data, so a missing row just means nothing
		// happened yet and it can be built on the spot.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get statistic snapshot: %v", err)
			return nil, errorx.Unknown
		}

		snapshot, err = d.aggregator.Refresh(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return &model.GetMyStatisticResponse{
		Statistic: model.UserStatistic{
			TotalTasks:       snapshot.TotalTasks,
			TotalXP:          snapshot.TotalXP,
			Level:            progression.LevelFor(snapshot.TotalXP),
			LongestStreak:    snapshot.LongestStreak,
			ActiveStreaks:    snapshot.ActiveStreaks,
			TotalProofs:      snapshot.TotalProofs,
			ConsistencyScore: snapshot.ConsistencyScore,
			HasPerfectWeek:   snapshot.HasPerfectWeek,
		},
	}, nil
}

func (d *StatisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a negative offset")
	}

	entries, err := d.leaderboard.GetTop(ctx, req.Offset, limit)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}
