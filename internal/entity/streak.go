package entity

import (
	"database/sql"
	"time"
)

// Streak is the consecutive-day counter of a habit. Exactly one row exists per
// (habit, user), provisioned when the habit is created.
type Streak struct {
	HabitID string `gorm:"primaryKey"`
	Habit   Habit  `gorm:"foreignKey:HabitID"`
	UserID  string `gorm:"primaryKey"`
	User    User   `gorm:"foreignKey:UserID"`

	CurrentStreak     int
	LongestStreak     int
	LastCompletedDate sql.NullTime

	UpdatedAt time.Time
}
