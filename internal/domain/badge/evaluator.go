package badge

import (
	"github.com/habitforge/backend/internal/entity"
)

// Evaluator reads one qualification metric out of the statistics snapshot.
// All tracked metrics are monotonic, so evaluating against a slightly stale
// snapshot can under-award but never over-award.
type Evaluator interface {
	RequirementType() entity.BadgeRequirement
	Value(statistic *entity.UserStatistic) int64
}

type totalTasksEvaluator struct{}

func (totalTasksEvaluator) RequirementType() entity.BadgeRequirement {
	return entity.RequirementTotalTasks
}

func (totalTasksEvaluator) Value(statistic *entity.UserStatistic) int64 {
	return statistic.TotalTasks
}

type totalXPEvaluator struct{}

func (totalXPEvaluator) RequirementType() entity.BadgeRequirement {
	return entity.RequirementTotalXP
}

func (totalXPEvaluator) Value(statistic *entity.UserStatistic) int64 {
	return statistic.TotalXP
}

type streakDaysEvaluator struct{}

func (streakDaysEvaluator) RequirementType() entity.BadgeRequirement {
	return entity.RequirementStreakDays
}

func (streakDaysEvaluator) Value(statistic *entity.UserStatistic) int64 {
	return int64(statistic.LongestStreak)
}

type perfectWeekEvaluator struct{}

func (perfectWeekEvaluator) RequirementType() entity.BadgeRequirement {
	return entity.RequirementPerfectWeek
}

func (perfectWeekEvaluator) Value(statistic *entity.UserStatistic) int64 {
	if statistic.HasPerfectWeek {
		return 1
	}

	return 0
}

// DefaultEvaluators covers every requirement type in the seeded catalog.
func DefaultEvaluators() []Evaluator {
	return []Evaluator{
		totalTasksEvaluator{},
		totalXPEvaluator{},
		streakDaysEvaluator{},
		perfectWeekEvaluator{},
	}
}
