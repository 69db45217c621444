package badge

import (
	"errors"
	"testing"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

var errNotify = errors.New("notification gateway unavailable")

func Test_Engine_EvaluateAndAward(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	statisticRepo := repository.NewStatisticRepository()
	engine := NewEngine(
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		statisticRepo,
		&testutil.MockNotificationCaller{},
		DefaultEvaluators()...,
	)

	err := statisticRepo.Upsert(ctx, &entity.UserStatistic{
		UserID:        testutil.User1.ID,
		TotalTasks:    10,
		TotalXP:       520,
		LongestStreak: 8,
	})
	require.NoError(t, err)

	awarded, err := engine.EvaluateAndAward(ctx, testutil.User1.ID)
	require.NoError(t, err)

	keys := make([]string, 0, len(awarded))
	for _, b := range awarded {
		keys = append(keys, b.Key)
	}
	require.ElementsMatch(t,
		[]string{"first_task", "task_10", "xp_500", "streak_7"}, keys)
}

func Test_Engine_EvaluateAndAward_exactly_once(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	statisticRepo := repository.NewStatisticRepository()
	notifier := &testutil.MockNotificationCaller{}
	engine := NewEngine(
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		statisticRepo,
		notifier,
		DefaultEvaluators()...,
	)

	err := statisticRepo.Upsert(ctx, &entity.UserStatistic{
		UserID:     testutil.User1.ID,
		TotalTasks: 1,
		TotalXP:    10,
	})
	require.NoError(t, err)

	awarded, err := engine.EvaluateAndAward(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, awarded, 1)
	require.Equal(t, "first_task", awarded[0].Key)
	require.Len(t, notifier.Sent(), 1)

	// Unchanged statistics must not re-award anything.
	awarded, err = engine.EvaluateAndAward(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, awarded)
	require.Len(t, notifier.Sent(), 1)
}

func Test_Engine_EvaluateAndAward_no_snapshot(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	engine := NewEngine(
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		repository.NewStatisticRepository(),
		&testutil.MockNotificationCaller{},
		DefaultEvaluators()...,
	)

	// A user without a statistics row qualifies for nothing rather than
	// failing the evaluation.
	awarded, err := engine.EvaluateAndAward(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Empty(t, awarded)
}

func Test_Engine_notifier_failure_is_not_fatal(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	statisticRepo := repository.NewStatisticRepository()
	engine := NewEngine(
		repository.NewBadgeRepository(),
		repository.NewUserBadgeRepository(),
		statisticRepo,
		&testutil.MockNotificationCaller{Err: errNotify},
		DefaultEvaluators()...,
	)

	err := statisticRepo.Upsert(ctx, &entity.UserStatistic{
		UserID:     testutil.User1.ID,
		TotalTasks: 1,
	})
	require.NoError(t, err)

	awarded, err := engine.EvaluateAndAward(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, awarded, 1)

	userBadgeRepo := repository.NewUserBadgeRepository()
	earned, err := userBadgeRepo.GetAll(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Len(t, earned, 1)
}
