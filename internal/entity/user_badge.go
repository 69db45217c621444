package entity

import "time"

// UserBadge records that a user unlocked a badge. The composite primary key is
// the actual exactly-once guarantee for awarding; the in-process already-earned
// check is only a fast path.
type UserBadge struct {
	UserID      string `gorm:"primaryKey"`
	User        User   `gorm:"foreignKey:UserID"`
	BadgeKey    string `gorm:"primaryKey"`
	Badge       Badge  `gorm:"foreignKey:BadgeKey"`
	EarnedAt    time.Time
	WasNotified bool
}
