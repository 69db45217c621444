package progression

import (
	"testing"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_LevelFor(t *testing.T) {
	require.Equal(t, 1, LevelFor(0))
	require.Equal(t, 1, LevelFor(99))
	require.Equal(t, 2, LevelFor(100))
	require.Equal(t, 2, LevelFor(105))
	require.Equal(t, 11, LevelFor(1000))
	require.Equal(t, 1, LevelFor(-1))
}

func Test_Ledger_Credit(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	xpLogRepo := repository.NewXPLogRepository()
	userRepo := repository.NewUserRepository()
	ledger := NewLedger(xpLogRepo, userRepo)

	_, err := ledger.Credit(ctx, testutil.User1.ID, 95, entity.XPSourceTask, testutil.Task1.ID)
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 95, user.TotalXP)
	require.Equal(t, 1, user.Level)

	// Crossing the 100 xp boundary bumps the level from 1 to 2.
	_, err = ledger.Credit(ctx, testutil.User1.ID, 10, entity.XPSourceProofBonus, "")
	require.NoError(t, err)

	user, err = userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 105, user.TotalXP)
	require.Equal(t, 2, user.Level)
}

func Test_Ledger_TotalAlwaysMatchesLedgerSum(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	xpLogRepo := repository.NewXPLogRepository()
	userRepo := repository.NewUserRepository()
	ledger := NewLedger(xpLogRepo, userRepo)

	amounts := []int64{10, 0, 25, 5, 100}
	for _, amount := range amounts {
		_, err := ledger.Credit(ctx, testutil.User1.ID, amount, entity.XPSourceTask, "")
		require.NoError(t, err)
	}

	// Recompute independently from the ledger.
	sum, err := xpLogRepo.SumByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, sum, user.TotalXP)
	require.EqualValues(t, 140, user.TotalXP)
}

func Test_Ledger_RejectsNegativeAmount(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(t, ctx)

	ledger := NewLedger(repository.NewXPLogRepository(), repository.NewUserRepository())

	_, err := ledger.Credit(ctx, testutil.User1.ID, -5, entity.XPSourceTask, "")
	require.Error(t, err)

	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.BadRequest, errx.Code)

	// No partial state: the ledger stays empty.
	sum, err := repository.NewXPLogRepository().SumByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Zero(t, sum)
}

func Test_Ledger_UnknownUser(t *testing.T) {
	ctx := testutil.MockContext(t)

	ledger := NewLedger(repository.NewXPLogRepository(), repository.NewUserRepository())

	_, err := ledger.Credit(ctx, "nobody", 10, entity.XPSourceTask, "")
	require.Error(t, err)

	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.NotFound, errx.Code)
}
