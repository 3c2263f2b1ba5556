package timeutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePublishDate(t *testing.T) {
	parsed, err := ParsePublishDate("2025-01-01T09:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC), parsed)

	_, err = ParsePublishDate("01/01/2025 09:30")
	assert.Error(t, err)

	_, err = ParsePublishDate("  ")
	assert.Error(t, err)
}

func TestRescheduleForward_PreservesTimeOfDay(t *testing.T) {
	publish := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	anchor := time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)
	now := time.Date(2025, 1, 4, 15, 42, 10, 0, time.UTC) // 3 whole days after the miss

	got := RescheduleForward(publish, anchor, now)

	// anchor + (daysMissed+1) days, at the original 09:00:00 exactly
	assert.Equal(t, time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC), got)
}

func TestRescheduleForward_NeverLandsInPast(t *testing.T) {
	publish := time.Date(2024, 12, 1, 22, 15, 0, 0, time.UTC)
	anchor := time.Date(2024, 12, 2, 22, 15, 0, 0, time.UTC)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	got := RescheduleForward(publish, anchor, now)

	assert.True(t, got.After(now))
	assert.Equal(t, 22, got.Hour())
	assert.Equal(t, 15, got.Minute())
	assert.Equal(t, 0, got.Second())
}

func TestDaysSince(t *testing.T) {
	from := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(from, from))
	assert.Equal(t, 0, DaysSince(from, from.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysSince(from, from.Add(25*time.Hour)))
	assert.Equal(t, 0, DaysSince(from, from.Add(-48*time.Hour)))
}
