package model

import "time"

type Badge struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	RequirementType  string `json:"requirement_type"`
	RequirementValue int64  `json:"requirement_value"`
}

type UserBadge struct {
	Badge       Badge     `json:"badge"`
	EarnedAt    time.Time `json:"earned_at"`
	WasNotified bool      `json:"was_notified"`
}

type GetMyBadgesRequest struct{}

type GetMyBadgesResponse struct {
	Badges []UserBadge `json:"badges"`
}
