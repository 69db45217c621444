package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Day(t *testing.T) {
	d := Day(time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC))
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)
}

func Test_SameDay(t *testing.T) {
	morning := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	night := time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC)
	require.True(t, SameDay(morning, night))
	require.False(t, SameDay(morning, night.AddDate(0, 0, 1)))
}

func Test_IsYesterday(t *testing.T) {
	day := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	require.True(t, IsYesterday(day.AddDate(0, 0, -1), day))
	require.False(t, IsYesterday(day.AddDate(0, 0, -2), day))
	require.False(t, IsYesterday(day, day))

	// Across a month boundary.
	require.True(t, IsYesterday(
		time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	))
}

func Test_LastNDays(t *testing.T) {
	now := time.Date(2024, 3, 30, 15, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), LastNDays(now, 30))
}
