package timeutils

import (
	"fmt"
	"strings"
	"time"
)

// PublishDateLayout is the fixed format every CSV publish-date column must use.
const PublishDateLayout = "2006-01-02T15:04:05"

// ParsePublishDate parses a CSV publish-date cell. Dates carry no zone in the
// input, so they are interpreted as UTC.
func ParsePublishDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("publish date is empty")
	}
	parsed, err := time.ParseInLocation(PublishDateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("publish date %q does not match %s: %w", trimmed, PublishDateLayout, err)
	}
	return parsed, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysSince returns the number of whole days elapsed from 'from' to 'to'.
// Never negative.
func DaysSince(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}

// RescheduleForward computes the new scheduled time for a missed post.
// The anchor is the last successful publish in the batch; the result lands
// anchor + (days elapsed since the original publish date + 1) days at the
// original hour/minute/second, so a daily batch keeps posting once per day
// relative to the last success instead of bunching at restart.
func RescheduleForward(publishDate, anchor, now time.Time) time.Time {
	days := DaysSince(publishDate, now)

	base := StartOfDay(anchor).AddDate(0, 0, days+1)
	candidate := time.Date(
		base.Year(), base.Month(), base.Day(),
		publishDate.Hour(), publishDate.Minute(), publishDate.Second(),
		0, publishDate.Location(),
	)

	// Guard against anchors far in the past: keep the forward-only invariant.
	for i := 0; i < 365 && !candidate.After(now); i++ {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}
