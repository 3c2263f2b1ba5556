package usecase

import (
	"fmt"
	"sort"
	"sync"
	"time"

	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

// fakeClock is a hand-driven Clock. Advance moves the wall time and fires one
// tick, so tests control exactly when the dispatcher scans.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	ticks chan time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, ticks: make(chan time.Time)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	return fakeTicker{c: c.ticks}
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	c.mu.Unlock()
	c.ticks <- now
}

type fakeTicker struct {
	c chan time.Time
}

func (t fakeTicker) Chan() <-chan time.Time { return t.c }
func (t fakeTicker) Stop()                  {}

// memoryStore is an in-memory schedule.Store keyed like the file store.
type memoryStore struct {
	mu      sync.Mutex
	docs    map[string]domainSchedule.Document
	saveErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string]domainSchedule.Document)}
}

func (s *memoryStore) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[name]
	return ok
}

func (s *memoryStore) Get(name string) (domainSchedule.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[name]
	if !ok {
		return domainSchedule.Document{}, pkgError.NotFoundError(fmt.Sprintf("schedule document %s not found", name))
	}
	return doc, nil
}

func (s *memoryStore) Save(doc domainSchedule.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.docs[domainSchedule.DocumentName(doc.CSVPath)] = doc
	return nil
}

func (s *memoryStore) List() ([]domainSchedule.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	docs := make([]domainSchedule.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, s.docs[name])
	}
	return docs, nil
}
