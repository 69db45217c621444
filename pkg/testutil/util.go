package testutil

import (
	"context"
	"time"

	"github.com/habitforge/backend/config"
	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/pkg/logger"
	"github.com/habitforge/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext(t mockTB) context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:              "access_token",
				ExpirationMinutes: 1,
			},
		},
		File: config.FileConfigs{
			MaxSize:        2 << 20,
			MaxImageWidth:  1024,
			MaxImageHeight: 1024,
		},
		Storage: config.S3Configs{
			Bucket: "habitforge",
		},
		Retention: config.RetentionConfigs{
			ExpiryTTLMinutes:   90,
			ExpiryEveryMinutes: 15,
			QuotaTTLDays:       90,
			QuotaEveryHours:    24,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLoggerWithLevel(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		t.Fatal(err)
	}

	if err := entity.SeedBadges(ctx); err != nil {
		t.Fatal(err)
	}

	return ctx
}

func MockContextWithUserID(t mockTB, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}

// mockTB is the subset of testing.TB the helpers need.
type mockTB interface {
	Fatal(args ...any)
	Helper()
}

// FixedNow returns a clock pinned to the given instant for date-sensitive
// components.
func FixedNow(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
