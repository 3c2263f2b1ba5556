package analytics

import (
	"context"
	"time"

	domainPlatform "github.com/postline/postline/domains/platform"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// PostMetrics is one published post's engagement snapshot as reported by the
// platform API.
type PostMetrics struct {
	ExternalID  string    `json:"external_id"`
	PublishedAt time.Time `json:"published_at"`
	Caption     string    `json:"caption"`
	Permalink   string    `json:"permalink"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	Shares      int       `json:"shares"`
	Views       int       `json:"views"`
}

type ExportRequest struct {
	Platform domainPlatform.Platform
	Format   ExportFormat
	OutDir   string
	Since    time.Time
}

type ExportResult struct {
	Path      string
	Rows      int
	SizeBytes int64
}

// IMetricsClient fetches engagement metrics from one platform's API.
type IMetricsClient interface {
	FetchPostMetrics(ctx context.Context, p domainPlatform.Platform, since time.Time) ([]PostMetrics, error)
}

type IAnalyticsUsecase interface {
	Export(ctx context.Context, request ExportRequest) (ExportResult, error)
	TopHashtags(posts []PostMetrics, limit int) []HashtagCount
}

type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
