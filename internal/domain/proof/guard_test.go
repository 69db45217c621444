package proof

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/habitforge/backend/internal/domain/progression"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/phash"
	"github.com/habitforge/backend/pkg/testutil"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var errUpload = errors.New("bucket unavailable")

func newTestGuard(storage *testutil.MockStorage) *Guard {
	return NewGuard(
		repository.NewTaskRepository(),
		repository.NewStreakRepository(),
		repository.NewProofSnapRepository(),
		progression.NewLedger(repository.NewXPLogRepository(), repository.NewUserRepository()),
		storage,
		phash.DHash,
	)
}

func withImageUpload(t *testing.T, ctx context.Context, image []byte) context.Context {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "proof.png")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/submitProof", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return xcontext.WithHTTPRequest(ctx, req)
}

func Test_Guard_Submit(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	mockStorage := testutil.NewMockStorage()
	guard := newTestGuard(mockStorage)

	ctx = withImageUpload(t, ctx, testutil.PNGImage(t, 1))
	resp, err := guard.Submit(ctx, &model.SubmitProofRequest{TaskID: testutil.Task1.ID})
	require.NoError(t, err)
	require.Equal(t, string(entity.FrameBasic), resp.FrameType)
	require.EqualValues(t, 5, resp.XPBonus)
	require.NotEmpty(t, resp.Url)
	require.Equal(t, 1, mockStorage.Len())

	total, err := repository.NewXPLogRepository().SumByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
}

func Test_Guard_Submit_duplicate_image(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	mockStorage := testutil.NewMockStorage()
	guard := newTestGuard(mockStorage)
	image := testutil.PNGImage(t, 1)

	_, err := guard.Submit(
		withImageUpload(t, ctx, image), &model.SubmitProofRequest{TaskID: testutil.Task1.ID})
	require.NoError(t, err)

	_, err = guard.Submit(
		withImageUpload(t, ctx, image), &model.SubmitProofRequest{TaskID: testutil.Task2.ID})
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.AlreadyExists, errx.Code)

	// No second row, no second artifact, no second bonus.
	count, err := repository.NewProofSnapRepository().CountByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Equal(t, 1, mockStorage.Len())

	total, err := repository.NewXPLogRepository().SumByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
}

func Test_Guard_Submit_frame_from_streak(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	streakRepo := repository.NewStreakRepository()
	streak, err := streakRepo.Get(ctx, testutil.Habit1.ID, testutil.User1.ID)
	require.NoError(t, err)
	streak.CurrentStreak = 10
	streak.LongestStreak = 10
	streak.LastCompletedDate = sql.NullTime{Valid: true, Time: time.Now()}
	require.NoError(t, streakRepo.Update(ctx, streak))

	guard := newTestGuard(testutil.NewMockStorage())
	resp, err := guard.Submit(
		withImageUpload(t, ctx, testutil.PNGImage(t, 2)),
		&model.SubmitProofRequest{TaskID: testutil.Task1.ID},
	)
	require.NoError(t, err)
	require.Equal(t, string(entity.FrameGold), resp.FrameType)
	require.EqualValues(t, 10, resp.XPBonus)
}

func Test_Guard_Submit_upload_failure_credits_nothing(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	mockStorage := testutil.NewMockStorage()
	mockStorage.UploadErr = errUpload
	guard := newTestGuard(mockStorage)

	_, err := guard.Submit(
		withImageUpload(t, ctx, testutil.PNGImage(t, 3)),
		&model.SubmitProofRequest{TaskID: testutil.Task1.ID},
	)
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.Unavailable, errx.Code)

	count, err := repository.NewProofSnapRepository().CountByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	total, err := repository.NewXPLogRepository().SumByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Zero(t, total)
}

func Test_Guard_Submit_rejects_foreign_and_completed_tasks(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	testutil.CreateFixtureDb(t, ctx)

	guard := newTestGuard(testutil.NewMockStorage())
	image := testutil.PNGImage(t, 4)

	_, err := guard.Submit(
		withImageUpload(t, ctx, image), &model.SubmitProofRequest{TaskID: testutil.Task1.ID})
	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.PermissionDenied, errx.Code)

	ctx = testutil.MockContextWithUserID(t, testutil.User1.ID)
	testutil.CreateFixtureDb(t, ctx)

	won, err := repository.NewTaskRepository().MarkCompleted(ctx, testutil.Task1.ID, time.Now())
	require.NoError(t, err)
	require.True(t, won)

	_, err = guard.Submit(
		withImageUpload(t, ctx, image), &model.SubmitProofRequest{TaskID: testutil.Task1.ID})
	errx, ok = err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}

func Test_FrameForStreak(t *testing.T) {
	frame, bonus := FrameForStreak(0)
	require.Equal(t, entity.FrameBasic, frame)
	require.EqualValues(t, 5, bonus)

	frame, bonus = FrameForStreak(7)
	require.Equal(t, entity.FrameGold, frame)
	require.EqualValues(t, 10, bonus)

	frame, bonus = FrameForStreak(29)
	require.Equal(t, entity.FrameGold, frame)
	require.EqualValues(t, 10, bonus)

	frame, bonus = FrameForStreak(30)
	require.Equal(t, entity.FramePrestige, frame)
	require.EqualValues(t, 20, bonus)
}
