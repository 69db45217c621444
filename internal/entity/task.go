package entity

import "database/sql"

type Task struct {
	Base
	UserID  string         `gorm:"not null;index"`
	User    User           `gorm:"foreignKey:UserID"`
	HabitID sql.NullString `gorm:"index"`
	Habit   Habit          `gorm:"foreignKey:HabitID"`
	Title   string         `gorm:"not null"`

	XPReward int64 `gorm:"column:xp_reward"`
	DueDate  sql.NullTime

	// Completion is monotonic. Once set, it is never unset.
	IsCompleted bool `gorm:"index"`
	CompletedAt sql.NullTime
}
