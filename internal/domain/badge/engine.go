package badge

import (
	"context"
	"errors"
	"time"

	"github.com/habitforge/backend/internal/client"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type Engine struct {
	// This field is only written at initialization. After that, it is
	// readonly.
	evaluators map[entity.BadgeRequirement]Evaluator

	badgeRepo     repository.BadgeRepository
	userBadgeRepo repository.UserBadgeRepository
	statisticRepo repository.StatisticRepository
	notifier      client.NotificationCaller
}

func NewEngine(
	badgeRepo repository.BadgeRepository,
	userBadgeRepo repository.UserBadgeRepository,
	statisticRepo repository.StatisticRepository,
	notifier client.NotificationCaller,
	evaluators ...Evaluator,
) *Engine {
	engine := &Engine{
		badgeRepo:     badgeRepo,
		userBadgeRepo: userBadgeRepo,
		statisticRepo: statisticRepo,
		notifier:      notifier,
		evaluators:    make(map[entity.BadgeRequirement]Evaluator),
	}

	for _, e := range evaluators {
		engine.evaluators[e.RequirementType()] = e
	}

	return engine
}

type awardedPayload struct {
	BadgeKey string `mapstructure:"badge_key"`
	Name     string `mapstructure:"name"`
	Category string `mapstructure:"category"`
}

// EvaluateAndAward checks the catalog against the user's statistics snapshot
// and unlocks every definition that newly qualifies. Awarding is exactly-once:
// the (user, badge_key) primary key at the store layer is the guarantee, the
// already-earned set loaded here is only a fast path.
func (e *Engine) EvaluateAndAward(ctx context.Context, userID string) ([]entity.Badge, error) {
	statistic, err := e.statisticRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user statistic: %v", err)
			return nil, errorx.Unknown
		}

		// No snapshot yet means every metric reads as zero.
		statistic = &entity.UserStatistic{UserID: userID}
	}

	definitions, err := e.badgeRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load badge catalog: %v", err)
		return nil, errorx.Unknown
	}

	earnedBadges, err := e.userBadgeRepo.GetAll(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load earned badges: %v", err)
		return nil, errorx.Unknown
	}

	earnedKeys := make([]string, 0, len(earnedBadges))
	for _, b := range earnedBadges {
		earnedKeys = append(earnedKeys, b.BadgeKey)
	}

	var awarded []entity.Badge
	for _, definition := range definitions {
		if slices.Contains(earnedKeys, definition.Key) {
			continue
		}

		evaluator, ok := e.evaluators[definition.RequirementType]
		if !ok {
			xcontext.Logger(ctx).Warnf("No evaluator for requirement %s", definition.RequirementType)
			continue
		}

		if evaluator.Value(statistic) < definition.RequirementValue {
			continue
		}

		err := e.userBadgeRepo.Create(ctx, &entity.UserBadge{
			UserID:   userID,
			BadgeKey: definition.Key,
			EarnedAt: time.Now(),
		})
		if err != nil {
			// A concurrent evaluation may have inserted the row first; the
			// constraint made it win and this run just skips the badge.
			if _, getErr := e.userBadgeRepo.Get(ctx, userID, definition.Key); getErr == nil {
				continue
			}

			xcontext.Logger(ctx).Errorf("Cannot create user badge: %v", err)
			return nil, errorx.Unknown
		}

		awarded = append(awarded, definition)
		e.notifyAwarded(ctx, userID, definition)
	}

	return awarded, nil
}

func (e *Engine) notifyAwarded(ctx context.Context, userID string, definition entity.Badge) {
	var payload map[string]any
	err := mapstructure.Decode(awardedPayload{
		BadgeKey: definition.Key,
		Name:     definition.Name,
		Category: definition.Category,
	}, &payload)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot build badge payload: %v", err)
		return
	}

	err = e.notifier.Notify(ctx, userID,
		"Badge unlocked", "You just earned "+definition.Name, payload)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot notify badge %s to user %s: %v", definition.Key, userID, err)
	}
}
