package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/habitforge/backend/internal/entity"
	"github.com/habitforge/backend/internal/repository"
	"github.com/habitforge/backend/pkg/dateutil"
	"github.com/habitforge/backend/pkg/errorx"
	"github.com/habitforge/backend/pkg/xcontext"
	"github.com/pkg/math"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

// Tracker classifies every completion as same-day, consecutive, or
// streak-breaking and maintains the current/longest counters.
type Tracker struct {
	streakRepo repository.StreakRepository

	// The streak row update is a read-modify-write; a per (habit, user)
	// mutex keeps two near-simultaneous completions from losing one update.
	locks *xsync.MapOf[string, *sync.Mutex]
}

func NewTracker(streakRepo repository.StreakRepository) *Tracker {
	return &Tracker{
		streakRepo: streakRepo,
		locks:      xsync.NewMapOf[*sync.Mutex](),
	}
}

// RecordCompletion applies one completion on the given calendar day.
// Completing twice on the same day is a no-op on the counter.
func (t *Tracker) RecordCompletion(
	ctx context.Context, habitID, userID string, day time.Time,
) (*entity.Streak, error) {
	lock, _ := t.locks.LoadOrStore(fmt.Sprintf("%s/%s", habitID, userID), &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	streak, err := t.streakRepo.Get(ctx, habitID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The row is provisioned at habit creation, so a miss is a
			// provisioning defect rather than a user error.
			return nil, errorx.New(errorx.NotFound, "Not found streak of habit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get streak: %v", err)
		return nil, errorx.Unknown
	}

	day = dateutil.Day(day)
	switch {
	case streak.LastCompletedDate.Valid && dateutil.SameDay(streak.LastCompletedDate.Time, day):
		return streak, nil
	case streak.LastCompletedDate.Valid && dateutil.IsYesterday(streak.LastCompletedDate.Time, day):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}

	streak.LongestStreak = math.Max(streak.LongestStreak, streak.CurrentStreak)
	streak.LastCompletedDate = sql.NullTime{Valid: true, Time: day}

	if err := t.streakRepo.Update(ctx, streak); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update streak: %v", err)
		return nil, errorx.Unknown
	}

	return streak, nil
}
