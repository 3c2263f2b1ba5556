package schedule

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	domainPlatform "github.com/postline/postline/domains/platform"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Post is one CSV row augmented with scheduling metadata. PublishDate is the
// post's identity across restarts and never changes once recorded;
// ScheduledTime is the effective publish time and may be advanced by the
// initializer when the original slot was missed.
type Post struct {
	PublishDate   time.Time `json:"Publish Date"`
	ScheduledTime time.Time `json:"Scheduled Time"`

	MediaURL string `json:"Media URL"`
	Caption  string `json:"Caption,omitempty"`
	Hashtags string `json:"Hashtags,omitempty"`
	Location string `json:"Location,omitempty"`

	// Pinterest-only fields, cleared on every other platform.
	Title        string `json:"Title,omitempty"`
	BoardID      string `json:"Board ID,omitempty"`
	ExternalLink string `json:"External Link,omitempty"`
	AltText      string `json:"Alt Text,omitempty"`

	// Video platforms only.
	Duration int `json:"Duration (seconds),omitempty"`

	Status   Status `json:"status"`
	Attempts int    `json:"attempts"`
	Result   string `json:"result,omitempty"`
}

type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelError LogLevel = "ERROR"
)

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
}

// Document is the system of record for one CSV batch. One JSON file on disk
// per batch, named after the CSV base name. Mutated in place by the
// dispatcher and never deleted automatically.
type Document struct {
	CSVPath           string                  `json:"csvPath"`
	Platform          domainPlatform.Platform `json:"platform"`
	Posts             []Post                  `json:"posts"`
	LastScheduledDate *time.Time              `json:"lastScheduledDate"`
	Logs              []LogEntry              `json:"logs"`
}

// AppendLog records a timestamped audit entry on the document.
func (d *Document) AppendLog(now time.Time, level LogLevel, message string) {
	d.Logs = append(d.Logs, LogEntry{Timestamp: now.UTC(), Level: level, Message: message})
}

// PendingCount reports how many posts have not left the pending state.
func (d *Document) PendingCount() int {
	count := 0
	for i := range d.Posts {
		if d.Posts[i].Status == StatusPending {
			count++
		}
	}
	return count
}

// AllSuccessful reports whether every post in the batch has been published.
func (d *Document) AllSuccessful() bool {
	for i := range d.Posts {
		if d.Posts[i].Status != StatusSuccess {
			return false
		}
	}
	return len(d.Posts) > 0
}

// Store persists schedule documents. Owned exclusively by the dispatcher
// during a run and by the initializer between runs; no locking.
type Store interface {
	Exists(name string) bool
	Get(name string) (Document, error)
	Save(doc Document) error
	List() ([]Document, error)
}

// DocumentName derives the store key for a CSV batch from its file path.
func DocumentName(csvPath string) string {
	base := filepath.Base(csvPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type ILoaderUsecase interface {
	Load(ctx context.Context, csvPath string, p domainPlatform.Platform) ([]Post, error)
}

type IInitializerUsecase interface {
	Initialize(ctx context.Context, csvPath string, posts []Post, p domainPlatform.Platform) (int, error)
}

type IDispatcherUsecase interface {
	// Run blocks until every tracked post across all documents has left the
	// pending state, then returns nil.
	Run(ctx context.Context) error
}
