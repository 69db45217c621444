package statistic

import (
	"database/sql"
	"testing"
	"time"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestAggregator(redisClient *testutil.MockRedisClient) *Aggregator {
	var leaderboard *Leaderboard
	if redisClient != nil {
		leaderboard = NewLeaderboard(repository.NewUserRepository(), redisClient)
	}

	return NewAggregator(
		repository.NewTaskRepository(),
		repository.NewXPLogRepository(),
		repository.NewStreakRepository(),
		repository.NewProofSnapRepository(),
		repository.NewStatisticRepository(),
		leaderboard,
	)
}

func Test_Aggregator_Refresh(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	taskRepo := repository.NewTaskRepository()

	// Three completions over two distinct days inside the window.
	for i, task := range []entity.Task{
		{Base: entity.Base{ID: "agg_task1"}, UserID: testutil.User1.ID, XPReward: 10},
		{Base: entity.Base{ID: "agg_task2"}, UserID: testutil.User1.ID, XPReward: 10},
		{Base: entity.Base{ID: "agg_task3"}, UserID: testutil.User1.ID, XPReward: 10},
	} {
		task := task
		require.NoError(t, taskRepo.Create(ctx, &task))

		completedAt := now.AddDate(0, 0, -(i % 2))
		won, err := taskRepo.MarkCompleted(ctx, task.ID, completedAt)
		require.NoError(t, err)
		require.True(t, won)
	}

	xpLogRepo := repository.NewXPLogRepository()
	for i, amount := range []int64{10, 10, 10} {
		require.NoError(t, xpLogRepo.Create(ctx, &entity.XPLog{
			ID:     int64(i + 1),
			UserID: testutil.User1.ID,
			Amount: amount,
			Source: entity.XPSourceTask,
		}))
	}

	streakRepo := repository.NewStreakRepository()
	streak, err := streakRepo.Get(ctx, testutil.Habit1.ID, testutil.User1.ID)
	require.NoError(t, err)
	streak.CurrentStreak = 4
	streak.LongestStreak = 9
	streak.LastCompletedDate = sql.NullTime{Valid: true, Time: now}
	require.NoError(t, streakRepo.Update(ctx, streak))

	aggregator := newTestAggregator(nil)
	aggregator.now = testutil.FixedNow(now)

	statistic, err := aggregator.Refresh(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, statistic.TotalTasks)
	require.EqualValues(t, 30, statistic.TotalXP)
	require.Equal(t, 9, statistic.LongestStreak)
	require.Equal(t, 1, statistic.ActiveStreaks)
	require.EqualValues(t, 0, statistic.TotalProofs)

	// 2 active days over a 30 day window.
	require.InDelta(t, 6.67, statistic.ConsistencyScore, 0.001)
	require.False(t, statistic.HasPerfectWeek)

	// The snapshot must be readable back through the store.
	stored, err := repository.NewStatisticRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, statistic.TotalXP, stored.TotalXP)
}

func Test_Aggregator_perfect_week(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	taskRepo := repository.NewTaskRepository()

	for i := 0; i < 7; i++ {
		task := entity.Task{
			Base:     entity.Base{ID: "week_task" + string(rune('a'+i))},
			UserID:   testutil.User1.ID,
			XPReward: 10,
		}
		require.NoError(t, taskRepo.Create(ctx, &task))

		won, err := taskRepo.MarkCompleted(ctx, task.ID, now.AddDate(0, 0, -i))
		require.NoError(t, err)
		require.True(t, won)
	}

	aggregator := newTestAggregator(nil)
	aggregator.now = testutil.FixedNow(now)

	statistic, err := aggregator.Refresh(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, statistic.HasPerfectWeek)
	require.InDelta(t, 23.33, statistic.ConsistencyScore, 0.001)
}

func Test_Aggregator_gap_breaks_perfect_week(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	taskRepo := repository.NewTaskRepository()

	// Seven active days, but with a hole on day four.
	for i := 0; i < 8; i++ {
		if i == 3 {
			continue
		}

		task := entity.Task{
			Base:     entity.Base{ID: "gap_task" + string(rune('a'+i))},
			UserID:   testutil.User1.ID,
			XPReward: 10,
		}
		require.NoError(t, taskRepo.Create(ctx, &task))

		won, err := taskRepo.MarkCompleted(ctx, task.ID, now.AddDate(0, 0, -i))
		require.NoError(t, err)
		require.True(t, won)
	}

	aggregator := newTestAggregator(nil)
	aggregator.now = testutil.FixedNow(now)

	statistic, err := aggregator.Refresh(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, statistic.HasPerfectWeek)
}

func Test_Leaderboard(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	redisClient := testutil.NewMockRedisClient()
	leaderboard := NewLeaderboard(repository.NewUserRepository(), redisClient)

	require.NoError(t, leaderboard.Record(ctx, testutil.User1.ID, 120))
	require.NoError(t, leaderboard.Record(ctx, testutil.User2.ID, 340))

	entries, err := leaderboard.GetTop(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, testutil.User2.ID, entries[0].UserID)
	require.EqualValues(t, 340, entries[0].TotalXP)
	require.Equal(t, 1, entries[0].CurrentRank)
	require.Equal(t, testutil.User1.ID, entries[1].UserID)
	require.Equal(t, 2, entries[1].CurrentRank)

	rank, err := leaderboard.GetRank(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, rank)
}

func Test_Leaderboard_lazy_load(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.UpdateProgression(ctx, testutil.User1.ID, 250, 3))

	// An empty redis must be seeded from the users table on first read.
	leaderboard := NewLeaderboard(userRepo, testutil.NewMockRedisClient())
	entries, err := leaderboard.GetTop(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, testutil.User1.ID, entries[0].UserID)
	require.EqualValues(t, 250, entries[0].TotalXP)
}
