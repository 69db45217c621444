package model

type UserStatistic struct {
	TotalTasks       int64   `json:"total_tasks"`
	TotalXP          int64   `json:"total_xp"`
	Level            int     `json:"level"`
	LongestStreak    int     `json:"longest_streak"`
	ActiveStreaks    int     `json:"active_streaks"`
	TotalProofs      int64   `json:"total_proofs"`
	ConsistencyScore float64 `json:"consistency_score"`
	HasPerfectWeek   bool    `json:"has_perfect_week"`
}

type GetMyStatisticRequest struct{}

type GetMyStatisticResponse struct {
	Statistic UserStatistic `json:"statistic"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	TotalXP     int64  `json:"total_xp"`
	CurrentRank int    `json:"current_rank"`
}

type GetLeaderboardRequest struct {
	Offset int `form:"offset"`
	Limit  int `form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
