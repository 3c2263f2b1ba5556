package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/postline/postline/config"
	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
	"github.com/postline/postline/pkg/timeutils"
)

const (
	headerPublishDate  = "Publish Date"
	headerMediaURL     = "Media URL"
	headerCaption      = "Caption"
	headerHashtags     = "Hashtags"
	headerLocation     = "Location"
	headerTitle        = "Title"
	headerBoardID      = "Board ID"
	headerExternalLink = "External Link"
	headerAltText      = "Alt Text"
	headerDuration     = "Duration (seconds)"
)

type serviceLoader struct{}

func NewLoaderService() domainSchedule.ILoaderUsecase {
	return &serviceLoader{}
}

// ExpectedHeaders returns the CSV columns a batch for the given platform must
// carry. Every platform shares the base content columns; the rest depend on
// platform capabilities.
func ExpectedHeaders(p domainPlatform.Platform) []string {
	headers := []string{headerPublishDate, headerMediaURL, headerCaption, headerHashtags}
	if p.SupportsLocation() {
		headers = append(headers, headerLocation)
	}
	if p.RequiresBoard() {
		headers = append(headers, headerTitle, headerBoardID, headerExternalLink, headerAltText)
	}
	if p.VideoOnly() {
		headers = append(headers, headerDuration)
	}
	return headers
}

func (service serviceLoader) Load(ctx context.Context, csvPath string, p domainPlatform.Platform) ([]domainSchedule.Post, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch CSV %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = config.CSVComma
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, pkgError.ValidationError(fmt.Sprintf("csv: %s is not parseable: %v", csvPath, err))
	}
	if len(records) == 0 {
		return nil, pkgError.ValidationError(fmt.Sprintf("csv: %s has no header row", csvPath))
	}

	columns := make(map[string]int, len(records[0]))
	for idx, name := range records[0] {
		columns[strings.TrimSpace(name)] = idx
	}
	for _, expected := range ExpectedHeaders(p) {
		if _, ok := columns[expected]; !ok {
			return nil, pkgError.ValidationError(fmt.Sprintf("csv: missing required column %q for platform %s", expected, p))
		}
	}

	cell := func(row []string, header string) string {
		idx, ok := columns[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var posts []domainSchedule.Post
	for rowNum, row := range records[1:] {
		publishDate, err := timeutils.ParsePublishDate(cell(row, headerPublishDate))
		if err != nil {
			logrus.WithError(err).Warnf("[LOADER] Skipping row %d of %s: invalid publish date", rowNum+2, csvPath)
			continue
		}

		post := domainSchedule.Post{
			PublishDate:   publishDate,
			ScheduledTime: publishDate,
			MediaURL:      cell(row, headerMediaURL),
			Caption:       cell(row, headerCaption),
			Hashtags:      cell(row, headerHashtags),
			Location:      cell(row, headerLocation),
			Title:         cell(row, headerTitle),
			BoardID:       cell(row, headerBoardID),
			ExternalLink:  cell(row, headerExternalLink),
			AltText:       cell(row, headerAltText),
			Status:        domainSchedule.StatusPending,
		}
		if raw := cell(row, headerDuration); raw != "" {
			if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
				post.Duration = seconds
			} else {
				logrus.Warnf("[LOADER] Row %d of %s has invalid duration %q, ignoring", rowNum+2, csvPath, raw)
			}
		}

		if err := service.applyPlatformRules(&post, p, rowNum+2, csvPath); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	logrus.Infof("[LOADER] Loaded %d posts from %s for %s", len(posts), csvPath, p)
	return posts, nil
}

// applyPlatformRules enforces per-platform structural constraints on one row.
// Foreign Pinterest fields are cleared with a warning; a missing board ID on
// Pinterest and a non-video media URL on video-only platforms fail the batch.
func (service serviceLoader) applyPlatformRules(post *domainSchedule.Post, p domainPlatform.Platform, rowNum int, csvPath string) error {
	if p.RequiresBoard() {
		if post.BoardID == "" {
			return pkgError.ValidationError(fmt.Sprintf("csv: row %d of %s is missing Board ID, required for pinterest", rowNum, csvPath))
		}
	} else if post.Title != "" || post.BoardID != "" || post.ExternalLink != "" || post.AltText != "" {
		logrus.Warnf("[LOADER] Row %d of %s carries pinterest-only fields on platform %s, clearing them", rowNum, csvPath, p)
		post.Title = ""
		post.BoardID = ""
		post.ExternalLink = ""
		post.AltText = ""
	}

	if p.VideoOnly() && !hasVideoExtension(post.MediaURL) {
		return pkgError.ValidationError(fmt.Sprintf("csv: row %d of %s has media URL %q, platform %s accepts only .mp4/.mov video", rowNum, csvPath, post.MediaURL, p))
	}
	return nil
}

func hasVideoExtension(mediaURL string) bool {
	lowered := strings.ToLower(mediaURL)
	return strings.HasSuffix(lowered, ".mp4") || strings.HasSuffix(lowered, ".mov")
}
