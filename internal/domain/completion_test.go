package domain

import (
	"context"
	"testing"
	"time"

	"github.com/habitforge/backend/internal/domain/badge"
	"github.com/habitforge/backend/internal/domain/progression"
	"github.com/habitforge/backend/internal/domain/statistic"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/testutil"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestCompletionDomain() *CompletionDomain {
	return NewCompletionDomain(
		repository.NewTaskRepository(),
		repository.NewUserRepository(),
		progression.NewTracker(repository.NewStreakRepository()),
		progression.NewLedger(repository.NewXPLogRepository(), repository.NewUserRepository()),
		statistic.NewAggregator(
			repository.NewTaskRepository(),
			repository.NewXPLogRepository(),
			repository.NewStreakRepository(),
			repository.NewProofSnapRepository(),
			repository.NewStatisticRepository(),
			nil,
		),
		badge.NewEngine(
			repository.NewBadgeRepository(),
			repository.NewUserBadgeRepository(),
			repository.NewStatisticRepository(),
			&testutil.MockNotificationCaller{},
			badge.DefaultEvaluators()...,
		),
	)
}

func Test_CompletionDomain_Complete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	completionDomain := newTestCompletionDomain()
	completionDomain.now = testutil.FixedNow(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))

	resp, err := completionDomain.Complete(ctx, &model.CompleteTaskRequest{ID: testutil.Task1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 10, resp.TotalXP)
	require.Equal(t, 1, resp.Level)
	require.Empty(t, resp.Warning)

	// The first completion unlocks first_task.
	require.Len(t, resp.NewBadges, 1)
	require.Equal(t, "first_task", resp.NewBadges[0].Key)

	streak, err := repository.NewStreakRepository().Get(ctx, testutil.Habit1.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, streak.CurrentStreak)
	require.Equal(t, 1, streak.LongestStreak)

	snapshot, err := repository.NewStatisticRepository().Get(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, snapshot.TotalTasks)
	require.EqualValues(t, 10, snapshot.TotalXP)
}

func Test_CompletionDomain_Complete_twice(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	completionDomain := newTestCompletionDomain()

	_, err := completionDomain.Complete(ctx, &model.CompleteTaskRequest{ID: testutil.Task2.ID})
	require.NoError(t, err)

	_, err = completionDomain.Complete(ctx, &model.CompleteTaskRequest{ID: testutil.Task2.ID})
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// No double credit.
	total, err := repository.NewXPLogRepository().SumByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 15, total)
}

func Test_CompletionDomain_Complete_foreign_task(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	testutil.CreateFixtureDb(t, ctx)

	completionDomain := newTestCompletionDomain()

	_, err := completionDomain.Complete(ctx, &model.CompleteTaskRequest{ID: testutil.Task1.ID})
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	_, err = completionDomain.Complete(ctx, &model.CompleteTaskRequest{ID: "never-exists"})
	errx, ok = err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_CompletionDomain_partial_success_warning(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	completionDomain := newTestCompletionDomain()

	// Break only the badge step. The completion itself must still commit and
	// report the failure as a warning instead of an error.
	require.NoError(t, xcontext.DB(ctx).Migrator().DropTable(&entity.Badge{}))

	resp, err := completionDomain.Complete(ctx, &model.CompleteTaskRequest{ID: testutil.Task1.ID})
	require.NoError(t, err)
	require.EqualValues(t, 10, resp.TotalXP)
	require.NotEmpty(t, resp.Warning)
	require.Empty(t, resp.NewBadges)

	task := getTask(t, ctx, testutil.Task1.ID)
	require.True(t, task.IsCompleted)
}

func getTask(t *testing.T, ctx context.Context, id string) *entity.Task {
	t.Helper()

	task, err := repository.NewTaskRepository().GetByID(ctx, id)
	require.NoError(t, err)
	return task
}
