package entity

import "time"

// UserStatistic is the aggregated snapshot the badge engine evaluates against.
// It is derived data, rebuilt from primary rows on every refresh, and never
// authoritative for xp or streak invariants.
type UserStatistic struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TotalTasks    int64
	TotalXP       int64 `gorm:"column:total_xp"`
	LongestStreak int
	ActiveStreaks int
	TotalProofs   int64

	// Percentage of days with at least one completion in the trailing 30
	// days, two-decimal precision.
	ConsistencyScore float64

	// Seven consecutive active days inside the same window.
	HasPerfectWeek bool

	UpdatedAt time.Time
}
