package model

import "time"

type Task struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habit_id,omitempty"`
	Title       string     `json:"title"`
	XPReward    int64      `json:"xp_reward"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type CreateTaskRequest struct {
	Title    string     `json:"title"`
	HabitID  string     `json:"habit_id"`
	XPReward int64      `json:"xp_reward"`
	DueDate  *time.Time `json:"due_date"`
}

type CreateTaskResponse struct {
	ID string `json:"id"`
}

type GetMyTasksRequest struct {
	Completed *bool `form:"completed"`
}

type GetMyTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type CompleteTaskRequest struct {
	ID string `json:"id"`
}

type CompleteTaskResponse struct {
	TotalXP int64 `json:"total_xp"`
	Level   int   `json:"level"`

	NewBadges []Badge `json:"new_badges,omitempty"`

	// Warning is set when the task was completed and xp credited, but a
	// post-commit step (statistics refresh or badge evaluation) failed. The
	// caller must not retry the whole completion.
	Warning string `json:"warning,omitempty"`
}
