package entity

import "github.com/habitforge/backend/pkg/enum"

type FrameType string

var (
	FrameBasic    = enum.New(FrameType("basic"))
	FrameGold     = enum.New(FrameType("gold"))
	FramePrestige = enum.New(FrameType("prestige"))
)

// ProofSnap is the evidence image of a task completion. The unique index on
// (user_id, perceptual_hash) makes the store reject duplicate submissions even
// when two uploads race past the pre-check.
type ProofSnap struct {
	Base
	UserID         string    `gorm:"not null;uniqueIndex:idx_proof_snaps_user_hash,priority:1"`
	User           User      `gorm:"foreignKey:UserID"`
	TaskID         string    `gorm:"not null;index"`
	Task           Task      `gorm:"foreignKey:TaskID"`
	PerceptualHash string    `gorm:"not null;uniqueIndex:idx_proof_snaps_user_hash,priority:2"`
	FrameType      FrameType `gorm:"not null"`
	XPBonus        int64     `gorm:"column:xp_bonus"`
	Url            string
	FileName       string
}
