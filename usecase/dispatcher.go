package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	domainPublisher "github.com/postline/postline/domains/publisher"
	domainSchedule "github.com/postline/postline/domains/schedule"
	domainToken "github.com/postline/postline/domains/token"
)

type serviceDispatcher struct {
	store         domainSchedule.Store
	registry      domainPublisher.IRegistry
	tokens        domainToken.ICache
	history       domainSchedule.IHistorySink
	clock         Clock
	interval      time.Duration
	uploadTimeout time.Duration
}

// NewDispatcherService builds the polling dispatcher. history may be nil.
func NewDispatcherService(
	store domainSchedule.Store,
	registry domainPublisher.IRegistry,
	tokens domainToken.ICache,
	history domainSchedule.IHistorySink,
	clock Clock,
	interval time.Duration,
	uploadTimeout time.Duration,
) domainSchedule.IDispatcherUsecase {
	return &serviceDispatcher{
		store:         store,
		registry:      registry,
		tokens:        tokens,
		history:       history,
		clock:         clock,
		interval:      interval,
		uploadTimeout: uploadTimeout,
	}
}

// Run drives the polling loop: one scan immediately, then one per tick, until
// a full scan finds zero pending posts across all schedule documents.
func (service *serviceDispatcher) Run(ctx context.Context) error {
	logrus.Infof("[SCHEDULER] Dispatcher started, polling every %s", service.interval)

	if done := service.scan(ctx); done {
		logrus.Info("[SCHEDULER] All tracked posts resolved, dispatcher stopping")
		return nil
	}

	ticker := service.clock.NewTicker(service.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
			if done := service.scan(ctx); done {
				logrus.Info("[SCHEDULER] All tracked posts resolved, dispatcher stopping")
				return nil
			}
		}
	}
}

// scan walks every document in store-list order and processes due pending
// posts sequentially. Returns true when nothing is left pending anywhere.
func (service *serviceDispatcher) scan(ctx context.Context) bool {
	docs, err := service.store.List()
	if err != nil {
		logrus.WithError(err).Error("[SCHEDULER] Failed to list schedule documents, will retry next tick")
		return false
	}

	pending := 0
	for i := range docs {
		service.processDocument(ctx, &docs[i])
		pending += docs[i].PendingCount()
	}
	return pending == 0
}

func (service *serviceDispatcher) processDocument(ctx context.Context, doc *domainSchedule.Document) {
	now := service.clock.Now()

	var accessToken string
	tokenResolved := false

	for i := range doc.Posts {
		post := &doc.Posts[i]
		if post.Status != domainSchedule.StatusPending || post.ScheduledTime.After(now) {
			continue
		}

		// Token resolution happens lazily, once per document per tick. A
		// failure skips the rest of this platform's posts for this cycle
		// only; other documents are unaffected.
		if !tokenResolved {
			accessToken, tokenResolved = service.resolveToken(ctx, doc)
			if !tokenResolved {
				return
			}
		}

		service.deliver(ctx, doc, post, accessToken)
	}
}

func (service *serviceDispatcher) resolveToken(ctx context.Context, doc *domainSchedule.Document) (string, bool) {
	accessToken, err := service.tokens.Token(ctx, doc.Platform)
	if err != nil {
		logrus.WithError(err).Errorf("[SCHEDULER] Token resolution failed for %s, skipping its posts this tick", doc.Platform)
		doc.AppendLog(service.clock.Now(), domainSchedule.LogLevelError,
			fmt.Sprintf("token resolution failed: %v", err))
		if saveErr := service.store.Save(*doc); saveErr != nil {
			logrus.WithError(saveErr).Errorf("[SCHEDULER] Failed to persist document for %s", doc.CSVPath)
		}
		return "", false
	}
	return accessToken, true
}

// deliver performs exactly one upload attempt for the post and persists the
// resulting state transition before returning, so a crash mid-tick loses at
// most the in-flight attempt.
func (service *serviceDispatcher) deliver(ctx context.Context, doc *domainSchedule.Document, post *domainSchedule.Post, accessToken string) {
	uploader, err := service.registry.Uploader(doc.Platform)
	if err != nil {
		service.markFailed(doc, post, err)
		return
	}

	uploadCtx, cancel := context.WithTimeout(ctx, service.uploadTimeout)
	defer cancel()

	externalID, err := uploader.Upload(uploadCtx, *post, accessToken)
	if err != nil {
		service.markFailed(doc, post, err)
		return
	}

	now := service.clock.Now()
	post.Status = domainSchedule.StatusSuccess
	post.Attempts++
	post.Result = externalID
	scheduled := post.ScheduledTime
	doc.LastScheduledDate = &scheduled
	doc.AppendLog(now, domainSchedule.LogLevelInfo,
		fmt.Sprintf("published post %s as %s", post.PublishDate.Format(time.RFC3339), externalID))

	if err := service.store.Save(*doc); err != nil {
		logrus.WithError(err).Errorf("[SCHEDULER] Failed to persist success for %s", doc.CSVPath)
	}
	logrus.Infof("[SCHEDULER] Published %s post scheduled at %s (external id %s)",
		doc.Platform, post.ScheduledTime.Format(time.RFC3339), externalID)

	if service.history != nil {
		if err := service.history.RecordUpload(ctx, doc.Platform, post.PublishDate, externalID); err != nil {
			logrus.WithError(err).Warn("[SCHEDULER] Failed to record upload history")
		}
	}
}

// markFailed transitions the post to failed. No retry inside this run; a
// later initializer pass has to reschedule it.
func (service *serviceDispatcher) markFailed(doc *domainSchedule.Document, post *domainSchedule.Post, cause error) {
	now := service.clock.Now()
	post.Status = domainSchedule.StatusFailed
	post.Attempts++
	doc.AppendLog(now, domainSchedule.LogLevelError,
		fmt.Sprintf("delivery of post %s failed: %v", post.PublishDate.Format(time.RFC3339), cause))

	if err := service.store.Save(*doc); err != nil {
		logrus.WithError(err).Errorf("[SCHEDULER] Failed to persist failure for %s", doc.CSVPath)
	}
	logrus.WithError(cause).Errorf("[SCHEDULER] Failed to publish %s post scheduled at %s",
		doc.Platform, post.ScheduledTime.Format(time.RFC3339))
}
