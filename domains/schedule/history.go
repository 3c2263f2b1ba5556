package schedule

import (
	"context"
	"time"

	domainPlatform "github.com/postline/postline/domains/platform"
)

// IHistorySink receives one record per successful publish. Secondary audit
// trail; the schedule document stays the source of truth for resume logic.
type IHistorySink interface {
	RecordUpload(ctx context.Context, p domainPlatform.Platform, publishDate time.Time, externalID string) error
}

// UploadRecord is one row of the append-only publish audit trail.
type UploadRecord struct {
	Platform    domainPlatform.Platform `json:"platform"`
	PublishDate time.Time               `json:"publish_date"`
	ExternalID  string                  `json:"external_id"`
	UploadedAt  time.Time               `json:"uploaded_at"`
}
