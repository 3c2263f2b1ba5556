package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
	"github.com/postline/postline/pkg/timeutils"
	"github.com/postline/postline/validations"
)

type serviceInitializer struct {
	store domainSchedule.Store
	clock Clock
}

func NewInitializerService(store domainSchedule.Store, clock Clock) domainSchedule.IInitializerUsecase {
	return &serviceInitializer{store: store, clock: clock}
}

// Initialize creates or reconciles the schedule document for one CSV batch
// and returns the number of posts the document now tracks.
//
// First run: the whole batch must lie in the future, otherwise PastDateError
// and no document is written. Resume: success and pending posts are left
// untouched; failed posts whose slot has passed are moved forward relative to
// the last successful publish and put back to pending.
func (service serviceInitializer) Initialize(ctx context.Context, csvPath string, posts []domainSchedule.Post, p domainPlatform.Platform) (int, error) {
	if err := validations.ValidateInitializeSchedule(ctx, csvPath, posts, p); err != nil {
		return 0, err
	}

	name := domainSchedule.DocumentName(csvPath)
	now := service.clock.Now()

	if !service.store.Exists(name) {
		return service.firstRun(csvPath, posts, p, now)
	}
	return service.resume(name, posts, now)
}

func (service serviceInitializer) firstRun(csvPath string, posts []domainSchedule.Post, p domainPlatform.Platform, now time.Time) (int, error) {
	for _, post := range posts {
		if !post.PublishDate.After(now) {
			return 0, pkgError.PastDateError(fmt.Sprintf(
				"publish date %s is already in the past, new batches must be wholly in the future",
				post.PublishDate.Format(timeutils.PublishDateLayout)))
		}
	}

	doc := domainSchedule.Document{
		CSVPath:  csvPath,
		Platform: p,
		Posts:    posts,
	}
	doc.AppendLog(now, domainSchedule.LogLevelInfo, fmt.Sprintf("initialized batch with %d posts", len(posts)))

	if err := service.store.Save(doc); err != nil {
		return 0, err
	}
	logrus.Infof("[INITIALIZER] Tracking %d posts for %s (%s)", len(posts), csvPath, p)
	return len(posts), nil
}

func (service serviceInitializer) resume(name string, loaded []domainSchedule.Post, now time.Time) (int, error) {
	doc, err := service.store.Get(name)
	if err != nil {
		return 0, err
	}

	if doc.AllSuccessful() {
		return 0, pkgError.AlreadyCompleteError(fmt.Sprintf("batch %s has already been fully published", name))
	}

	anchor := timeutils.StartOfDay(now)
	if doc.LastScheduledDate != nil {
		anchor = *doc.LastScheduledDate
	}

	rescheduled := 0
	for i := range doc.Posts {
		post := &doc.Posts[i]
		if post.Status == domainSchedule.StatusPending || post.Status == domainSchedule.StatusSuccess {
			continue
		}
		if post.ScheduledTime.After(now) {
			continue
		}

		newTime := timeutils.RescheduleForward(post.PublishDate, anchor, now)
		doc.AppendLog(now, domainSchedule.LogLevelInfo, fmt.Sprintf(
			"rescheduled post %s from %s to %s",
			post.PublishDate.Format(timeutils.PublishDateLayout),
			post.ScheduledTime.Format(timeutils.PublishDateLayout),
			newTime.Format(timeutils.PublishDateLayout)))
		post.ScheduledTime = newTime
		post.Status = domainSchedule.StatusPending
		rescheduled++
	}

	appended := service.appendNewPosts(&doc, loaded, anchor, now)

	if err := service.store.Save(doc); err != nil {
		return 0, err
	}
	logrus.Infof("[INITIALIZER] Resumed %s: %d rescheduled, %d new, %d pending",
		name, rescheduled, appended, doc.PendingCount())
	return len(doc.Posts), nil
}

// appendNewPosts adopts CSV rows the document does not track yet. The publish
// date is the identity key, so re-running against an unmodified CSV is a
// no-op here.
func (service serviceInitializer) appendNewPosts(doc *domainSchedule.Document, loaded []domainSchedule.Post, anchor, now time.Time) int {
	tracked := make(map[int64]struct{}, len(doc.Posts))
	for _, post := range doc.Posts {
		tracked[post.PublishDate.Unix()] = struct{}{}
	}

	appended := 0
	for _, post := range loaded {
		if _, ok := tracked[post.PublishDate.Unix()]; ok {
			continue
		}
		if !post.ScheduledTime.After(now) {
			post.ScheduledTime = timeutils.RescheduleForward(post.PublishDate, anchor, now)
		}
		post.Status = domainSchedule.StatusPending
		doc.Posts = append(doc.Posts, post)
		doc.AppendLog(now, domainSchedule.LogLevelInfo, fmt.Sprintf(
			"adopted new post %s", post.PublishDate.Format(timeutils.PublishDateLayout)))
		appended++
	}
	return appended
}
