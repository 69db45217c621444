package entity

import "github.com/habitforge/backend/pkg/enum"

type BadgeRequirement string

var (
	RequirementTotalTasks  = enum.New(BadgeRequirement("total_tasks"))
	RequirementTotalXP     = enum.New(BadgeRequirement("total_xp"))
	RequirementStreakDays  = enum.New(BadgeRequirement("streak_days"))
	RequirementPerfectWeek = enum.New(BadgeRequirement("perfect_week"))
)

// Badge is a catalog definition of an unlockable achievement. The catalog is
// reference data seeded at migration time and never mutated afterwards.
type Badge struct {
	Key              string `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	Category         string
	RequirementType  BadgeRequirement `gorm:"not null"`
	RequirementValue int64            `gorm:"not null"`
}
