package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

func pendingPost(publish time.Time) domainSchedule.Post {
	return domainSchedule.Post{
		PublishDate:   publish,
		ScheduledTime: publish,
		MediaURL:      "https://cdn.example.com/a.jpg",
		Caption:       "hello",
		Status:        domainSchedule.StatusPending,
	}
}

func TestInitializerFirstRunRejectsPastDates(t *testing.T) {
	now := time.Date(2025, 1, 4, 15, 42, 0, 0, time.UTC)
	store := newMemoryStore()
	service := NewInitializerService(store, newFakeClock(now))

	posts := []domainSchedule.Post{
		pendingPost(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)),
		pendingPost(time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)),
	}

	_, err := service.Initialize(context.Background(), "batch.csv", posts, domainPlatform.PlatformInstagram)
	require.Error(t, err)
	assert.IsType(t, pkgError.PastDateError(""), err)
	assert.False(t, store.Exists("batch"), "no document may be written when the batch is rejected")
}

func TestInitializerFirstRunTracksFutureBatch(t *testing.T) {
	now := time.Date(2025, 1, 4, 15, 42, 0, 0, time.UTC)
	store := newMemoryStore()
	service := NewInitializerService(store, newFakeClock(now))

	posts := []domainSchedule.Post{
		pendingPost(time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC)),
		pendingPost(time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)),
	}

	tracked, err := service.Initialize(context.Background(), "storages/batch.csv", posts, domainPlatform.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, 2, tracked)

	doc, err := store.Get("batch")
	require.NoError(t, err)
	assert.Equal(t, "storages/batch.csv", doc.CSVPath)
	assert.Equal(t, domainPlatform.PlatformInstagram, doc.Platform)
	assert.Nil(t, doc.LastScheduledDate)
	require.Len(t, doc.Logs, 1)
	assert.Equal(t, domainSchedule.LogLevelInfo, doc.Logs[0].Level)
}

func TestInitializerResumeFullyPublishedBatch(t *testing.T) {
	now := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	store := newMemoryStore()
	post := pendingPost(time.Date(2025, 1, 5, 9, 0, 0, 0, time.UTC))
	post.Status = domainSchedule.StatusSuccess
	require.NoError(t, store.Save(domainSchedule.Document{
		CSVPath:  "batch.csv",
		Platform: domainPlatform.PlatformFacebook,
		Posts:    []domainSchedule.Post{post},
	}))

	service := NewInitializerService(store, newFakeClock(now))
	_, err := service.Initialize(context.Background(), "batch.csv",
		[]domainSchedule.Post{pendingPost(post.PublishDate)}, domainPlatform.PlatformFacebook)
	require.Error(t, err)
	assert.IsType(t, pkgError.AlreadyCompleteError(""), err)
}

func TestInitializerReschedulesMissedFailedPost(t *testing.T) {
	now := time.Date(2025, 1, 4, 15, 42, 0, 0, time.UTC)
	anchor := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	failed := pendingPost(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	failed.Status = domainSchedule.StatusFailed
	failed.Attempts = 1

	store := newMemoryStore()
	require.NoError(t, store.Save(domainSchedule.Document{
		CSVPath:           "batch.csv",
		Platform:          domainPlatform.PlatformTwitter,
		Posts:             []domainSchedule.Post{failed},
		LastScheduledDate: &anchor,
	}))

	service := NewInitializerService(store, newFakeClock(now))
	tracked, err := service.Initialize(context.Background(), "batch.csv",
		[]domainSchedule.Post{pendingPost(failed.PublishDate)}, domainPlatform.PlatformTwitter)
	require.NoError(t, err)
	assert.Equal(t, 1, tracked)

	doc, err := store.Get("batch")
	require.NoError(t, err)
	got := doc.Posts[0]
	assert.Equal(t, domainSchedule.StatusPending, got.Status)
	assert.Equal(t, time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC), got.ScheduledTime)
	assert.Equal(t, failed.PublishDate, got.PublishDate, "publish date is identity and never moves")
	assert.Equal(t, 1, got.Attempts, "attempt history survives rescheduling")
}

func TestInitializerResumeLeavesPendingAndSuccessAlone(t *testing.T) {
	now := time.Date(2025, 1, 4, 15, 42, 0, 0, time.UTC)

	published := pendingPost(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC))
	published.Status = domainSchedule.StatusSuccess
	published.Result = "ext-1"
	upcoming := pendingPost(time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC))

	store := newMemoryStore()
	require.NoError(t, store.Save(domainSchedule.Document{
		CSVPath:  "batch.csv",
		Platform: domainPlatform.PlatformThreads,
		Posts:    []domainSchedule.Post{published, upcoming},
	}))

	service := NewInitializerService(store, newFakeClock(now))
	_, err := service.Initialize(context.Background(), "batch.csv",
		[]domainSchedule.Post{pendingPost(published.PublishDate), pendingPost(upcoming.PublishDate)},
		domainPlatform.PlatformThreads)
	require.NoError(t, err)

	doc, err := store.Get("batch")
	require.NoError(t, err)
	assert.Equal(t, domainSchedule.StatusSuccess, doc.Posts[0].Status)
	assert.Equal(t, "ext-1", doc.Posts[0].Result)
	assert.Equal(t, upcoming.ScheduledTime, doc.Posts[1].ScheduledTime)
}

func TestInitializerResumeWithoutAnchorUsesStartOfToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)

	failed := pendingPost(time.Date(2025, 3, 10, 7, 15, 0, 0, time.UTC))
	failed.Status = domainSchedule.StatusFailed

	store := newMemoryStore()
	require.NoError(t, store.Save(domainSchedule.Document{
		CSVPath:  "batch.csv",
		Platform: domainPlatform.PlatformFacebook,
		Posts:    []domainSchedule.Post{failed},
	}))

	service := NewInitializerService(store, newFakeClock(now))
	_, err := service.Initialize(context.Background(), "batch.csv",
		[]domainSchedule.Post{pendingPost(failed.PublishDate)}, domainPlatform.PlatformFacebook)
	require.NoError(t, err)

	doc, err := store.Get("batch")
	require.NoError(t, err)
	// Anchor falls back to the start of today, so the slot lands tomorrow at
	// the original time of day.
	assert.Equal(t, time.Date(2025, 3, 11, 7, 15, 0, 0, time.UTC), doc.Posts[0].ScheduledTime)
}

func TestInitializerResumeAdoptsNewCSVRows(t *testing.T) {
	now := time.Date(2025, 1, 4, 15, 42, 0, 0, time.UTC)

	tracked := pendingPost(time.Date(2025, 1, 8, 9, 0, 0, 0, time.UTC))
	store := newMemoryStore()
	require.NoError(t, store.Save(domainSchedule.Document{
		CSVPath:  "batch.csv",
		Platform: domainPlatform.PlatformInstagram,
		Posts:    []domainSchedule.Post{tracked},
	}))

	service := NewInitializerService(store, newFakeClock(now))
	total, err := service.Initialize(context.Background(), "batch.csv",
		[]domainSchedule.Post{
			pendingPost(tracked.PublishDate),
			pendingPost(time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC)),
		},
		domainPlatform.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	doc, err := store.Get("batch")
	require.NoError(t, err)
	require.Len(t, doc.Posts, 2)
	assert.Equal(t, time.Date(2025, 1, 9, 9, 0, 0, 0, time.UTC), doc.Posts[1].PublishDate)
}

func TestInitializerValidatesRequest(t *testing.T) {
	service := NewInitializerService(newMemoryStore(), newFakeClock(time.Now()))

	_, err := service.Initialize(context.Background(), "", nil, domainPlatform.PlatformFacebook)
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
}
