package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

func writeBatchCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderRejectsMissingColumn(t *testing.T) {
	csvPath := writeBatchCSV(t, "Publish Date,Media URL,Caption\n2030-01-01T09:00:00,https://cdn.example.com/a.jpg,hello\n")

	_, err := NewLoaderService().Load(context.Background(), csvPath, domainPlatform.PlatformFacebook)
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
	assert.Contains(t, err.Error(), "Hashtags")
}

func TestLoaderSkipsRowsWithInvalidDates(t *testing.T) {
	csvPath := writeBatchCSV(t, "Publish Date,Media URL,Caption,Hashtags,Location\n"+
		"not-a-date,https://cdn.example.com/a.jpg,first,#go,\n"+
		"2030-01-01T09:00:00,https://cdn.example.com/b.jpg,second,#go,\n")

	posts, err := NewLoaderService().Load(context.Background(), csvPath, domainPlatform.PlatformFacebook)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "second", posts[0].Caption)
	assert.Equal(t, domainSchedule.StatusPending, posts[0].Status)
	assert.Equal(t, posts[0].PublishDate, posts[0].ScheduledTime)
}

func TestLoaderPinterestRequiresBoardID(t *testing.T) {
	csvPath := writeBatchCSV(t, "Publish Date,Media URL,Caption,Hashtags,Title,Board ID,External Link,Alt Text\n"+
		"2030-01-01T09:00:00,https://cdn.example.com/a.jpg,pin,#decor,My Pin,,https://example.com,alt\n")

	_, err := NewLoaderService().Load(context.Background(), csvPath, domainPlatform.PlatformPinterest)
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
	assert.Contains(t, err.Error(), "Board ID")
}

func TestLoaderClearsPinterestFieldsOnOtherPlatforms(t *testing.T) {
	csvPath := writeBatchCSV(t, "Publish Date,Media URL,Caption,Hashtags,Location,Title,Board ID,External Link,Alt Text\n"+
		"2030-01-01T09:00:00,https://cdn.example.com/a.jpg,post,#go,Berlin,Stray Title,b-1,https://example.com,alt\n")

	posts, err := NewLoaderService().Load(context.Background(), csvPath, domainPlatform.PlatformFacebook)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Empty(t, posts[0].Title)
	assert.Empty(t, posts[0].BoardID)
	assert.Empty(t, posts[0].ExternalLink)
	assert.Empty(t, posts[0].AltText)
	assert.Equal(t, "Berlin", posts[0].Location)
}

func TestLoaderVideoPlatformRejectsNonVideoMedia(t *testing.T) {
	csvPath := writeBatchCSV(t, "Publish Date,Media URL,Caption,Hashtags,Duration (seconds)\n"+
		"2030-01-01T09:00:00,https://cdn.example.com/thumbnail.png,clip,#video,60\n")

	_, err := NewLoaderService().Load(context.Background(), csvPath, domainPlatform.PlatformYouTube)
	require.Error(t, err)
	assert.IsType(t, pkgError.ValidationError(""), err)
}

func TestLoaderParsesDuration(t *testing.T) {
	csvPath := writeBatchCSV(t, "Publish Date,Media URL,Caption,Hashtags,Duration (seconds)\n"+
		"2030-01-01T09:00:00,https://cdn.example.com/clip.mp4,clip,#video,95\n")

	posts, err := NewLoaderService().Load(context.Background(), csvPath, domainPlatform.PlatformTikTok)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 95, posts[0].Duration)
}

func TestExpectedHeadersPerPlatform(t *testing.T) {
	assert.Equal(t,
		[]string{"Publish Date", "Media URL", "Caption", "Hashtags", "Location"},
		ExpectedHeaders(domainPlatform.PlatformInstagram))
	assert.Equal(t,
		[]string{"Publish Date", "Media URL", "Caption", "Hashtags", "Title", "Board ID", "External Link", "Alt Text"},
		ExpectedHeaders(domainPlatform.PlatformPinterest))
	assert.Equal(t,
		[]string{"Publish Date", "Media URL", "Caption", "Hashtags", "Duration (seconds)"},
		ExpectedHeaders(domainPlatform.PlatformRumble))
}
