package entity

import (
	"context"

	"github.com/habitforge/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Habit{},
		&Task{},
		&Streak{},
		&XPLog{},
		&Badge{},
		&UserBadge{},
		&ProofSnap{},
		&UserStatistic{},
	)
}

// BadgeCatalog is the seeded set of unlockable achievements.
var BadgeCatalog = []Badge{
	{Key: "first_task", Name: "First Steps", Category: "tasks", RequirementType: RequirementTotalTasks, RequirementValue: 1},
	{Key: "task_10", Name: "Getting Things Done", Category: "tasks", RequirementType: RequirementTotalTasks, RequirementValue: 10},
	{Key: "task_100", Name: "Centurion", Category: "tasks", RequirementType: RequirementTotalTasks, RequirementValue: 100},
	{Key: "xp_500", Name: "Apprentice", Category: "xp", RequirementType: RequirementTotalXP, RequirementValue: 500},
	{Key: "xp_5000", Name: "Master", Category: "xp", RequirementType: RequirementTotalXP, RequirementValue: 5000},
	{Key: "streak_7", Name: "One Week Wonder", Category: "streaks", RequirementType: RequirementStreakDays, RequirementValue: 7},
	{Key: "streak_30", Name: "Habit Machine", Category: "streaks", RequirementType: RequirementStreakDays, RequirementValue: 30},
	{Key: "streak_100", Name: "Unstoppable", Category: "streaks", RequirementType: RequirementStreakDays, RequirementValue: 100},
	{Key: "perfect_week", Name: "Perfect Week", Category: "streaks", RequirementType: RequirementPerfectWeek, RequirementValue: 1},
}

// SeedBadges inserts the badge catalog, skipping definitions that already
// exist so migration stays idempotent.
func SeedBadges(ctx context.Context) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&BadgeCatalog).Error
}
