package statistic

import (
	"context"
	"math"
	"time"

	"github.com/habitforge/backend/internal/common"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/dateutil"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

const (
	consistencyWindowDays = 30
	perfectWeekLength     = 7
)

// Aggregator rebuilds the derived statistics snapshot from the primary rows.
// The snapshot is disposable: losing it or refreshing against slightly stale
// data costs at most a delayed badge, never a wrong xp or streak value.
type Aggregator struct {
	taskRepo      repository.TaskRepository
	xpLogRepo     repository.XPLogRepository
	streakRepo    repository.StreakRepository
	proofSnapRepo repository.ProofSnapRepository
	statisticRepo repository.StatisticRepository
	leaderboard   *Leaderboard

	now func() time.Time
}

func NewAggregator(
	taskRepo repository.TaskRepository,
	xpLogRepo repository.XPLogRepository,
	streakRepo repository.StreakRepository,
	proofSnapRepo repository.ProofSnapRepository,
	statisticRepo repository.StatisticRepository,
	leaderboard *Leaderboard,
) *Aggregator {
	return &Aggregator{
		taskRepo:      taskRepo,
		xpLogRepo:     xpLogRepo,
		streakRepo:    streakRepo,
		proofSnapRepo: proofSnapRepo,
		statisticRepo: statisticRepo,
		leaderboard:   leaderboard,
		now:           time.Now,
	}
}

func (a *Aggregator) Refresh(ctx context.Context, userID string) (*entity.UserStatistic, error) {
	totalTasks, err := a.taskRepo.CountCompleted(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count completed tasks: %v", err)
		return nil, errorx.Unknown
	}

	totalXP, err := a.xpLogRepo.SumByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum xp logs: %v", err)
		return nil, errorx.Unknown
	}

	streaks, err := a.streakRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get streaks: %v", err)
		return nil, errorx.Unknown
	}

	now := a.now()
	longestStreak := 0
	activeStreaks := 0
	for _, streak := range streaks {
		if streak.LongestStreak > longestStreak {
			longestStreak = streak.LongestStreak
		}

		if !streak.LastCompletedDate.Valid {
			continue
		}

		last := streak.LastCompletedDate.Time
		if dateutil.SameDay(last, now) || dateutil.IsYesterday(last, now) {
			activeStreaks++
		}
	}

	totalProofs, err := a.proofSnapRepo.CountByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count proof snaps: %v", err)
		return nil, errorx.Unknown
	}

	since := dateutil.LastNDays(now, consistencyWindowDays)
	completions, err := a.taskRepo.GetCompletionTimesSince(ctx, userID, since)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completion times: %v", err)
		return nil, errorx.Unknown
	}

	activeDays := distinctDays(completions)
	statistic := &entity.UserStatistic{
		UserID:           userID,
		TotalTasks:       totalTasks,
		TotalXP:          totalXP,
		LongestStreak:    longestStreak,
		ActiveStreaks:    activeStreaks,
		TotalProofs:      totalProofs,
		ConsistencyScore: consistencyScore(len(activeDays)),
		HasPerfectWeek:   hasConsecutiveRun(activeDays, perfectWeekLength),
		UpdatedAt:        now,
	}

	if err := a.statisticRepo.Upsert(ctx, statistic); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert user statistic: %v", err)
		return nil, errorx.Unknown
	}

	// The leaderboard is a cache over the same primary rows, so a failed
	// push only leaves it stale until the next refresh.
	if a.leaderboard != nil {
		if err := a.leaderboard.Record(ctx, userID, totalXP); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot push leaderboard score: %v", err)
		}
	}

	return statistic, nil
}

func (a *Aggregator) Get(ctx context.Context, userID string) (*entity.UserStatistic, error) {
	return a.statisticRepo.Get(ctx, userID)
}

func consistencyScore(activeDays int) float64 {
	score := 100 * float64(activeDays) / consistencyWindowDays
	return math.Round(score*100) / 100
}

// distinctDays returns the sorted set of calendar days the timestamps fall on.
func distinctDays(times []time.Time) []time.Time {
	seen := map[time.Time]bool{}
	for _, t := range times {
		seen[dateutil.Day(t)] = true
	}

	days := common.MapKeys(seen)
	slices.SortFunc(days, func(a, b time.Time) bool { return a.Before(b) })
	return days
}

func hasConsecutiveRun(sortedDays []time.Time, length int) bool {
	run := 1
	for i := 1; i < len(sortedDays); i++ {
		if sortedDays[i-1].AddDate(0, 0, 1).Equal(sortedDays[i]) {
			run++
		} else {
			run = 1
		}

		if run >= length {
			return true
		}
	}

	return len(sortedDays) >= 1 && length <= 1
}
