package progression

import (
	"database/sql"
	"errors"

	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// xpPerLevel is the fixed amount of experience each level spans.
const xpPerLevel = 100

// LevelFor derives the level from a total xp value. No total ever yields a
// level below 1.
func LevelFor(totalXP int64) int {
	if totalXP < 0 {
		return 1
	}

	return int(totalXP/xpPerLevel) + 1
}

// Ledger appends immutable xp grants and keeps the per-user profile view
// (total xp, level) in sync by summing the ledger after every credit.
type Ledger struct {
	xpLogRepo repository.XPLogRepository
	userRepo  repository.UserRepository
	idNode    *snowflake.Node
}

func NewLedger(
	xpLogRepo repository.XPLogRepository,
	userRepo repository.UserRepository,
) *Ledger {
	idNode, err := snowflake.NewNode(0)
	if err != nil {
		panic(err)
	}

	return &Ledger{
		xpLogRepo: xpLogRepo,
		userRepo:  userRepo,
		idNode:    idNode,
	}
}

// Credit appends one grant and rewrites the profile view. Recomputing the
// total from the ledger instead of incrementing the cached counter keeps
// concurrent credits from losing updates.
func (l *Ledger) Credit(
	ctx context.Context, userID string, amount int64, source entity.XPSource, taskID string,
) (*entity.XPLog, error) {
	if amount < 0 {
		return nil, errorx.New(errorx.BadRequest, "XP amount must not be negative")
	}

	log := &entity.XPLog{
		ID:     l.idNode.Generate().Int64(),
		UserID: userID,
		Amount: amount,
		Source: source,
	}
	if taskID != "" {
		log.TaskID = sql.NullString{Valid: true, String: taskID}
	}

	if err := l.xpLogRepo.Create(ctx, log); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append xp log: %v", err)
		return nil, errorx.Unknown
	}

	total, err := l.xpLogRepo.SumByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum xp ledger: %v", err)
		return nil, errorx.Unknown
	}

	if err := l.userRepo.UpdateProgression(ctx, userID, total, LevelFor(total)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot update progression view: %v", err)
		return nil, errorx.Unknown
	}

	return log, nil
}
