package domain

import (
	"context"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
)

type BadgeDomain struct {
	badgeRepo     repository.BadgeRepository
	userBadgeRepo repository.UserBadgeRepository
}

func NewBadgeDomain(
	badgeRepo repository.BadgeRepository,
	userBadgeRepo repository.UserBadgeRepository,
) *BadgeDomain {
	return &BadgeDomain{badgeRepo: badgeRepo, userBadgeRepo: userBadgeRepo}
}

func (d *BadgeDomain) GetMyBadges(
	ctx context.Context, req *model.GetMyBadgesRequest,
) (*model.GetMyBadgesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	earned, err := d.userBadgeRepo.GetAll(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user badges: %v", err)
		return nil, errorx.Unknown
	}

	catalog, err := d.badgeRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load badge catalog: %v", err)
		return nil, errorx.Unknown
	}

	definitionByKey := make(map[string]entity.Badge, len(catalog))
	for _, definition := range catalog {
		definitionByKey[definition.Key] = definition
	}

	resp := &model.GetMyBadgesResponse{Badges: []model.UserBadge{}}
	for _, userBadge := range earned {
		definition, ok := definitionByKey[userBadge.BadgeKey]
		if !ok {
			xcontext.Logger(ctx).Warnf("Earned badge %s has no definition", userBadge.BadgeKey)
			continue
		}

		resp.Badges = append(resp.Badges, model.UserBadge{
			Badge: model.Badge{
				Key:              definition.Key,
				Name:             definition.Name,
				Category:         definition.Category,
				RequirementType:  string(definition.RequirementType),
				RequirementValue: definition.RequirementValue,
			},
			EarnedAt:    userBadge.EarnedAt,
			WasNotified: userBadge.WasNotified,
		})
	}

	// Reading the list acknowledges any pending badge notification.
	if err := d.userBadgeRepo.UpdateNotification(ctx, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot acknowledge badge notifications: %v", err)
	}

	return resp, nil
}
