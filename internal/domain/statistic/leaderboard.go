package statistic

import (
	"context"
	"errors"

	"github.com/habitforge/backend/internal/model"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/habitforge/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const (
	totalXPLeaderboardKey = "leaderboard:total_xp"
	leaderboardLoadSize   = 1000
)

// Leaderboard keeps the total-xp ranking in a redis sorted set. The set is a
// cache: when the key is missing it is reloaded from the users table, so
// flushing redis only costs one reload.
type Leaderboard struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewLeaderboard(userRepo repository.UserRepository, redisClient xredis.Client) *Leaderboard {
	return &Leaderboard{userRepo: userRepo, redisClient: redisClient}
}

func (l *Leaderboard) Record(ctx context.Context, userID string, totalXP int64) error {
	if err := l.ensureLoaded(ctx); err != nil {
		return err
	}

	return l.redisClient.ZAdd(ctx, totalXPLeaderboardKey, redis.Z{
		Member: userID,
		Score:  float64(totalXP),
	})
}

func (l *Leaderboard) GetTop(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	zs, err := l.redisClient.ZRevRangeWithScores(ctx, totalXPLeaderboardKey, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot range leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := make([]model.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		userID, ok := z.Member.(string)
		if !ok {
			xcontext.Logger(ctx).Errorf("Invalid leaderboard member %v", z.Member)
			return nil, errorx.Unknown
		}

		entries = append(entries, model.LeaderboardEntry{
			UserID:      userID,
			TotalXP:     int64(z.Score),
			CurrentRank: offset + i + 1,
		})
	}

	return entries, nil
}

func (l *Leaderboard) GetRank(ctx context.Context, userID string) (uint64, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load leaderboard: %v", err)
		return 0, errorx.Unknown
	}

	rank, err := l.redisClient.ZRevRank(ctx, totalXPLeaderboardKey, userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errorx.New(errorx.NotFound, "User is not ranked yet")
		}

		xcontext.Logger(ctx).Errorf("Cannot get leaderboard rank: %v", err)
		return 0, errorx.Unknown
	}

	return rank + 1, nil
}

func (l *Leaderboard) ensureLoaded(ctx context.Context) error {
	exist, err := l.redisClient.Exist(ctx, totalXPLeaderboardKey)
	if err != nil {
		return err
	}

	if exist {
		return nil
	}

	users, err := l.userRepo.GetListOrderedByXP(ctx, leaderboardLoadSize)
	if err != nil {
		return err
	}

	for _, user := range users {
		err := l.redisClient.ZAdd(ctx, totalXPLeaderboardKey, redis.Z{
			Member: user.ID,
			Score:  float64(user.TotalXP),
		})
		if err != nil {
			return err
		}
	}

	return nil
}
