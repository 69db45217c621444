package entity

import (
	"database/sql"
	"time"

	"github.com/habitforge/backend/pkg/enum"
)

type XPSource string

var (
	XPSourceTask       = enum.New(XPSource("task"))
	XPSourceProofBonus = enum.New(XPSource("proof_bonus"))
	XPSourceAISubtask  = enum.New(XPSource("ai_subtask"))
)

// XPLog is one immutable grant of experience points. Rows are only ever
// appended; the profile view on User is recomputed by summing them.
type XPLog struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    string         `gorm:"not null;index:idx_xp_logs_user_created,priority:1"`
	User      User           `gorm:"foreignKey:UserID"`
	TaskID    sql.NullString `gorm:"index"`
	Amount    int64          `gorm:"not null"`
	Source    XPSource       `gorm:"not null"`
	CreatedAt time.Time      `gorm:"index:idx_xp_logs_user_created,priority:2"`
}
