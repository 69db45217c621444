package model

import "time"

type Habit struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	IsActive bool   `json:"is_active"`

	CurrentStreak     int        `json:"current_streak"`
	LongestStreak     int        `json:"longest_streak"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
}

type CreateHabitRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type CreateHabitResponse struct {
	ID string `json:"id"`
}

type GetMyHabitsRequest struct{}

type GetMyHabitsResponse struct {
	Habits []Habit `json:"habits"`
}

type ArchiveHabitRequest struct {
	ID string `json:"id"`
}

type ArchiveHabitResponse struct{}
