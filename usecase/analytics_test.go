package usecase

import (
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainAnalytics "github.com/postline/postline/domains/analytics"
	domainPlatform "github.com/postline/postline/domains/platform"
	pkgError "github.com/postline/postline/pkg/error"
)

type stubMetricsClient struct {
	metrics []domainAnalytics.PostMetrics
	err     error
}

func (c stubMetricsClient) FetchPostMetrics(ctx context.Context, p domainPlatform.Platform, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	return c.metrics, c.err
}

func sampleMetrics() []domainAnalytics.PostMetrics {
	return []domainAnalytics.PostMetrics{
		{
			ExternalID:  "ext-1",
			PublishedAt: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC),
			Caption:     "Morning routine #Fitness #coffee",
			Permalink:   "https://example.com/p/1",
			Likes:       10,
			Comments:    2,
		},
		{
			ExternalID:  "ext-2",
			PublishedAt: time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC),
			Caption:     "Leg day! #fitness #gym",
			Permalink:   "https://example.com/p/2",
			Likes:       25,
			Views:       400,
		},
	}
}

func TestAnalyticsExportWritesCSV(t *testing.T) {
	clock := newFakeClock(time.Date(2025, 1, 4, 10, 0, 0, 0, time.UTC))
	service := NewAnalyticsService(stubMetricsClient{metrics: sampleMetrics()}, clock)

	outDir := t.TempDir()
	result, err := service.Export(context.Background(), domainAnalytics.ExportRequest{
		Platform: domainPlatform.PlatformInstagram,
		Format:   domainAnalytics.FormatCSV,
		OutDir:   outDir,
		Since:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows)
	assert.Greater(t, result.SizeBytes, int64(0))

	file, err := os.Open(result.Path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "ext-1", rows[1][0])
	assert.Equal(t, "25", rows[2][4])
}

func TestAnalyticsExportRejectsUnknownFormat(t *testing.T) {
	clock := newFakeClock(time.Now())
	service := NewAnalyticsService(stubMetricsClient{}, clock)

	_, err := service.Export(context.Background(), domainAnalytics.ExportRequest{
		Platform: domainPlatform.PlatformFacebook,
		Format:   "pdf",
		OutDir:   t.TempDir(),
	})
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
}

func TestTopHashtagsCountsCaseInsensitively(t *testing.T) {
	service := NewAnalyticsService(stubMetricsClient{}, newFakeClock(time.Now()))

	got := service.TopHashtags(sampleMetrics(), 0)
	require.Len(t, got, 3)
	assert.Equal(t, domainAnalytics.HashtagCount{Tag: "#fitness", Count: 2}, got[0])
	// Equal counts fall back to alphabetical order.
	assert.Equal(t, domainAnalytics.HashtagCount{Tag: "#coffee", Count: 1}, got[1])
	assert.Equal(t, domainAnalytics.HashtagCount{Tag: "#gym", Count: 1}, got[2])
}

func TestTopHashtagsStripsTrailingPunctuationAndLimits(t *testing.T) {
	service := NewAnalyticsService(stubMetricsClient{}, newFakeClock(time.Now()))

	posts := []domainAnalytics.PostMetrics{
		{Caption: "done! #winning. #winning, #later plain # text"},
	}
	got := service.TopHashtags(posts, 1)
	require.Len(t, got, 1)
	assert.Equal(t, domainAnalytics.HashtagCount{Tag: "#winning", Count: 2}, got[0])
}
