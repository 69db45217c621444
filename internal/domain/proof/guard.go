package proof

import (
	"context"
	"errors"

	"github.com/habitforge/backend/internal/common"
	"github.com/habitforge/backend/internal/domain/progression"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/phash"
	"github.com/habitforge/backend/pkg/storage"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	basicBonus    = 5
	goldBonus     = 10
	prestigeBonus = 20

	goldThreshold     = 7
	prestigeThreshold = 30
)

// FrameForStreak maps the habit's current streak to a reward frame and its
// bonus amount.
func FrameForStreak(currentStreak int) (entity.FrameType, int64) {
	switch {
	case currentStreak >= prestigeThreshold:
		return entity.FramePrestige, prestigeBonus
	case currentStreak >= goldThreshold:
		return entity.FrameGold, goldBonus
	default:
		return entity.FrameBasic, basicBonus
	}
}

type Guard struct {
	taskRepo      repository.TaskRepository
	streakRepo    repository.StreakRepository
	proofSnapRepo repository.ProofSnapRepository
	ledger        *progression.Ledger
	storage       storage.Storage
	hashFunc      phash.Func
}

func NewGuard(
	taskRepo repository.TaskRepository,
	streakRepo repository.StreakRepository,
	proofSnapRepo repository.ProofSnapRepository,
	ledger *progression.Ledger,
	proofStorage storage.Storage,
	hashFunc phash.Func,
) *Guard {
	return &Guard{
		taskRepo:      taskRepo,
		streakRepo:    streakRepo,
		proofSnapRepo: proofSnapRepo,
		ledger:        ledger,
		storage:       proofStorage,
		hashFunc:      hashFunc,
	}
}

// Submit validates the uploaded evidence and records it. The bonus credit is
// the last step so that no failure can leave xp granted for a proof that was
// never stored.
func (g *Guard) Submit(
	ctx context.Context, req *model.SubmitProofRequest,
) (*model.SubmitProofResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	task, err := g.taskRepo.GetByID(ctx, req.TaskID)
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

	data, mime, fileName, err := common.ReadFormImage(ctx, "image")
	if err != nil {
		return nil, err
	}

	hash, err := g.hashFunc(data)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot fingerprint image: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid image")
	}

	// Fast path only. The unique (user_id, perceptual_hash) index is what
	// actually closes the check-then-insert race.
	if _, err := g.proofSnapRepo.GetByUserAndHash(ctx, userID, hash); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This image was already submitted")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check proof duplicate: %v", err)
		return nil, errorx.Unknown
	}

	currentStreak := 0
	if task.HabitID.Valid {
		streak, err := g.streakRepo.Get(ctx, task.HabitID.String, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot get streak of habit: %v", err)
				return nil, errorx.Unknown
			}
		} else {
			currentStreak = streak.CurrentStreak
		}
	}

	frameType, xpBonus := FrameForStreak(currentStreak)

	cfg := xcontext.Configs(ctx)
	compressed, err := common.CompressImage(data, mime, cfg.File.MaxImageWidth, cfg.File.MaxImageHeight)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot compress image: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid image")
	}

	uploaded, err := g.storage.Upload(ctx, &storage.UploadObject{
		Bucket:   cfg.Storage.Bucket,
		Prefix:   "proofs/" + userID,
		FileName: fileName,
		Mime:     mime,
		Data:     compressed,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload proof artifact: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot store the proof image")
	}

	snap := &entity.ProofSnap{
		Base:           entity.Base{ID: uuid.NewString()},
		UserID:         userID,
		TaskID:         task.ID,
		PerceptualHash: hash,
		FrameType:      frameType,
		XPBonus:        xpBonus,
		Url:            uploaded.Url,
		FileName:       uploaded.FileName,
	}
	if err := g.proofSnapRepo.Create(ctx, snap); err != nil {
		// Remove the artifact so a failed record never strands storage;
		// purge would not find it without a row.
		if removeErr := g.storage.Remove(ctx, uploaded.FileName); removeErr != nil {
			xcontext.Logger(ctx).Warnf("Cannot remove orphan artifact: %v", removeErr)
		}

		if _, getErr := g.proofSnapRepo.GetByUserAndHash(ctx, userID, hash); getErr == nil {
			return nil, errorx.New(errorx.AlreadyExists, "This image was already submitted")
		}

		xcontext.Logger(ctx).Errorf("Cannot create proof snap: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := g.ledger.Credit(ctx, userID, xpBonus, entity.XPSourceProofBonus, task.ID); err != nil {
		return nil, err
	}

	return &model.SubmitProofResponse{
		ID:        snap.ID,
		Url:       snap.Url,
		FrameType: string(frameType),
		XPBonus:   xpBonus,
	}, nil
}
