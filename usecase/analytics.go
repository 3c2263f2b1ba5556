package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	domainAnalytics "github.com/postline/postline/domains/analytics"
	pkgError "github.com/postline/postline/pkg/error"
)

var exportHeaders = []string{"External ID", "Published At", "Caption", "Permalink", "Likes", "Comments", "Shares", "Views"}

type serviceAnalytics struct {
	client domainAnalytics.IMetricsClient
	clock  Clock
}

func NewAnalyticsService(client domainAnalytics.IMetricsClient, clock Clock) domainAnalytics.IAnalyticsUsecase {
	return &serviceAnalytics{client: client, clock: clock}
}

func (service serviceAnalytics) Export(ctx context.Context, request domainAnalytics.ExportRequest) (domainAnalytics.ExportResult, error) {
	if request.Format != domainAnalytics.FormatCSV && request.Format != domainAnalytics.FormatXLSX {
		return domainAnalytics.ExportResult{}, pkgError.ValidationError(fmt.Sprintf("format: %q is not supported, use csv or xlsx.", request.Format))
	}

	metrics, err := service.client.FetchPostMetrics(ctx, request.Platform, request.Since)
	if err != nil {
		return domainAnalytics.ExportResult{}, err
	}

	if err := os.MkdirAll(request.OutDir, 0755); err != nil {
		return domainAnalytics.ExportResult{}, err
	}

	stamp := service.clock.Now().Format("20060102_150405")
	path := filepath.Join(request.OutDir, fmt.Sprintf("%s_analytics_%s.%s", request.Platform, stamp, request.Format))

	switch request.Format {
	case domainAnalytics.FormatXLSX:
		err = writeXLSX(path, metrics)
	default:
		err = writeCSV(path, metrics)
	}
	if err != nil {
		return domainAnalytics.ExportResult{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return domainAnalytics.ExportResult{}, err
	}

	logrus.Infof("[EXPORT] Wrote %d rows (%s) to %s", len(metrics), humanize.Bytes(uint64(info.Size())), path)
	return domainAnalytics.ExportResult{Path: path, Rows: len(metrics), SizeBytes: info.Size()}, nil
}

func metricsRow(m domainAnalytics.PostMetrics) []string {
	return []string{
		m.ExternalID,
		m.PublishedAt.Format(time.RFC3339),
		m.Caption,
		m.Permalink,
		strconv.Itoa(m.Likes),
		strconv.Itoa(m.Comments),
		strconv.Itoa(m.Shares),
		strconv.Itoa(m.Views),
	}
}

func writeCSV(path string, metrics []domainAnalytics.PostMetrics) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, m := range metrics {
		if err := writer.Write(metricsRow(m)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSX(path string, metrics []domainAnalytics.PostMetrics) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	for col, header := range exportHeaders {
		cellRef, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := book.SetCellValue(sheet, cellRef, header); err != nil {
			return err
		}
	}
	for rowIdx, m := range metrics {
		for col, value := range metricsRow(m) {
			cellRef, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := book.SetCellValue(sheet, cellRef, value); err != nil {
				return err
			}
		}
	}
	return book.SaveAs(path)
}

// TopHashtags counts hashtag frequency across the given posts,
// case-insensitively, and returns the limit most frequent tags. Ties break
// alphabetically so output is deterministic.
func (service serviceAnalytics) TopHashtags(posts []domainAnalytics.PostMetrics, limit int) []domainAnalytics.HashtagCount {
	counts := make(map[string]int)
	for _, post := range posts {
		for _, tag := range extractHashtags(post.Caption) {
			counts[tag]++
		}
	}

	result := make([]domainAnalytics.HashtagCount, 0, len(counts))
	for tag, count := range counts {
		result = append(result, domainAnalytics.HashtagCount{Tag: tag, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func extractHashtags(text string) []string {
	var tags []string
	for _, field := range strings.Fields(text) {
		if !strings.HasPrefix(field, "#") {
			continue
		}
		tag := strings.ToLower(strings.TrimRight(field, ".,!?:;"))
		if len(tag) > 1 {
			tags = append(tags, tag)
		}
	}
	return tags
}
