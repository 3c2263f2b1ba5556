package platformapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	domainAnalytics "github.com/postline/postline/domains/analytics"
	domainPlatform "github.com/postline/postline/domains/platform"
	pkgError "github.com/postline/postline/pkg/error"
)

// FetchPostMetrics pulls the engagement snapshot for the platform's recent
// posts. Shapes differ wildly per API, so each branch maps its own response
// into the common PostMetrics record.
func (r *Registry) FetchPostMetrics(ctx context.Context, p domainPlatform.Platform, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	accessToken, err := r.Token(ctx, p)
	if err != nil {
		return nil, err
	}

	switch p {
	case domainPlatform.PlatformFacebook:
		return r.facebookMetrics(ctx, accessToken, since)
	case domainPlatform.PlatformInstagram:
		return r.instagramMetrics(ctx, accessToken, since)
	case domainPlatform.PlatformThreads:
		return r.threadsMetrics(ctx, accessToken, since)
	case domainPlatform.PlatformPinterest:
		return r.pinterestMetrics(ctx, accessToken, since)
	case domainPlatform.PlatformTwitter:
		return r.twitterMetrics(ctx, accessToken, since)
	case domainPlatform.PlatformYouTube:
		return r.youtubeMetrics(ctx, accessToken, since)
	}
	return nil, pkgError.NotFoundError(fmt.Sprintf("platform %s does not expose a post analytics API", p))
}

func (r *Registry) facebookMetrics(ctx context.Context, accessToken string, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	endpoint := fmt.Sprintf(
		"%s/%s/posts?fields=id,message,permalink_url,created_time,likes.summary(true),comments.summary(true),shares&since=%d&access_token=%s",
		facebookGraphBase, r.cfg.Facebook.PageID, since.Unix(), url.QueryEscape(accessToken))

	var resp struct {
		Data []struct {
			ID          string `json:"id"`
			Message     string `json:"message"`
			Permalink   string `json:"permalink_url"`
			CreatedTime string `json:"created_time"`
			Likes       struct {
				Summary struct {
					TotalCount int `json:"total_count"`
				} `json:"summary"`
			} `json:"likes"`
			Comments struct {
				Summary struct {
					TotalCount int `json:"total_count"`
				} `json:"summary"`
			} `json:"comments"`
			Shares struct {
				Count int `json:"count"`
			} `json:"shares"`
		} `json:"data"`
	}
	if err := r.client.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	metrics := make([]domainAnalytics.PostMetrics, 0, len(resp.Data))
	for _, item := range resp.Data {
		published, _ := time.Parse("2006-01-02T15:04:05-0700", item.CreatedTime)
		metrics = append(metrics, domainAnalytics.PostMetrics{
			ExternalID:  item.ID,
			PublishedAt: published,
			Caption:     item.Message,
			Permalink:   item.Permalink,
			Likes:       item.Likes.Summary.TotalCount,
			Comments:    item.Comments.Summary.TotalCount,
			Shares:      item.Shares.Count,
		})
	}
	return metrics, nil
}

func (r *Registry) instagramMetrics(ctx context.Context, accessToken string, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	endpoint := fmt.Sprintf(
		"%s/%s/media?fields=id,caption,permalink,timestamp,like_count,comments_count&since=%d&access_token=%s",
		facebookGraphBase, r.cfg.Instagram.BusinessAccountID, since.Unix(), url.QueryEscape(accessToken))

	var resp struct {
		Data []struct {
			ID            string `json:"id"`
			Caption       string `json:"caption"`
			Permalink     string `json:"permalink"`
			Timestamp     string `json:"timestamp"`
			LikeCount     int    `json:"like_count"`
			CommentsCount int    `json:"comments_count"`
		} `json:"data"`
	}
	if err := r.client.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	metrics := make([]domainAnalytics.PostMetrics, 0, len(resp.Data))
	for _, item := range resp.Data {
		published, _ := time.Parse("2006-01-02T15:04:05-0700", item.Timestamp)
		metrics = append(metrics, domainAnalytics.PostMetrics{
			ExternalID:  item.ID,
			PublishedAt: published,
			Caption:     item.Caption,
			Permalink:   item.Permalink,
			Likes:       item.LikeCount,
			Comments:    item.CommentsCount,
		})
	}
	return metrics, nil
}

func (r *Registry) threadsMetrics(ctx context.Context, accessToken string, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	endpoint := fmt.Sprintf(
		"%s/%s/threads?fields=id,text,permalink,timestamp&since=%d&access_token=%s",
		threadsGraphBase, r.cfg.Threads.UserID, since.Unix(), url.QueryEscape(accessToken))

	var resp struct {
		Data []struct {
			ID        string `json:"id"`
			Text      string `json:"text"`
			Permalink string `json:"permalink"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}
	if err := r.client.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	metrics := make([]domainAnalytics.PostMetrics, 0, len(resp.Data))
	for _, item := range resp.Data {
		published, _ := time.Parse("2006-01-02T15:04:05-0700", item.Timestamp)
		metrics = append(metrics, domainAnalytics.PostMetrics{
			ExternalID:  item.ID,
			PublishedAt: published,
			Caption:     item.Text,
			Permalink:   item.Permalink,
		})
	}
	return metrics, nil
}

func (r *Registry) pinterestMetrics(ctx context.Context, accessToken string, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	endpoint := pinterestAPIBase + "/pins?page_size=100"

	var resp struct {
		Items []struct {
			ID          string `json:"id"`
			CreatedAt   string `json:"created_at"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Link        string `json:"link"`
		} `json:"items"`
	}
	if err := r.client.getJSON(ctx, endpoint, bearer(accessToken), &resp); err != nil {
		return nil, err
	}

	metrics := make([]domainAnalytics.PostMetrics, 0, len(resp.Items))
	for _, item := range resp.Items {
		published, _ := time.Parse(time.RFC3339, item.CreatedAt)
		if published.Before(since) {
			continue
		}
		metrics = append(metrics, domainAnalytics.PostMetrics{
			ExternalID:  item.ID,
			PublishedAt: published,
			Caption:     firstNonEmpty(item.Description, item.Title),
			Permalink:   item.Link,
		})
	}
	return metrics, nil
}

func atoiSafe(raw string) int {
	n, _ := strconv.Atoi(raw)
	return n
}

func (r *Registry) twitterMetrics(ctx context.Context, accessToken string, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	endpoint := fmt.Sprintf(
		"%s/users/me/tweets?tweet.fields=public_metrics,created_at,text&start_time=%s",
		twitterAPIBase, url.QueryEscape(since.UTC().Format(time.RFC3339)))

	var resp struct {
		Data []struct {
			ID            string `json:"id"`
			Text          string `json:"text"`
			CreatedAt     string `json:"created_at"`
			PublicMetrics struct {
				LikeCount    int `json:"like_count"`
				ReplyCount   int `json:"reply_count"`
				RetweetCount int `json:"retweet_count"`
				Impressions  int `json:"impression_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}
	if err := r.client.getJSON(ctx, endpoint, bearer(accessToken), &resp); err != nil {
		return nil, err
	}

	metrics := make([]domainAnalytics.PostMetrics, 0, len(resp.Data))
	for _, item := range resp.Data {
		published, _ := time.Parse(time.RFC3339, item.CreatedAt)
		metrics = append(metrics, domainAnalytics.PostMetrics{
			ExternalID:  item.ID,
			PublishedAt: published,
			Caption:     item.Text,
			Likes:       item.PublicMetrics.LikeCount,
			Comments:    item.PublicMetrics.ReplyCount,
			Shares:      item.PublicMetrics.RetweetCount,
			Views:       item.PublicMetrics.Impressions,
		})
	}
	return metrics, nil
}

func (r *Registry) youtubeMetrics(ctx context.Context, accessToken string, since time.Time) ([]domainAnalytics.PostMetrics, error) {
	endpoint := youtubeAPIBase + "/search?part=id&forMine=true&type=video&maxResults=50&publishedAfter=" +
		url.QueryEscape(since.UTC().Format(time.RFC3339))

	var search struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := r.client.getJSON(ctx, endpoint, bearer(accessToken), &search); err != nil {
		return nil, err
	}
	if len(search.Items) == 0 {
		return nil, nil
	}

	ids := ""
	for i, item := range search.Items {
		if i > 0 {
			ids += ","
		}
		ids += item.ID.VideoID
	}

	var videos struct {
		Items []struct {
			ID      string `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				PublishedAt string `json:"publishedAt"`
			} `json:"snippet"`
			Statistics struct {
				ViewCount    string `json:"viewCount"`
				LikeCount    string `json:"likeCount"`
				CommentCount string `json:"commentCount"`
			} `json:"statistics"`
		} `json:"items"`
	}
	detail := youtubeAPIBase + "/videos?part=snippet,statistics&id=" + url.QueryEscape(ids)
	if err := r.client.getJSON(ctx, detail, bearer(accessToken), &videos); err != nil {
		return nil, err
	}

	metrics := make([]domainAnalytics.PostMetrics, 0, len(videos.Items))
	for _, item := range videos.Items {
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		metrics = append(metrics, domainAnalytics.PostMetrics{
			ExternalID:  item.ID,
			PublishedAt: published,
			Caption:     item.Snippet.Title,
			Permalink:   "https://youtu.be/" + item.ID,
			Likes:       atoiSafe(item.Statistics.LikeCount),
			Comments:    atoiSafe(item.Statistics.CommentCount),
			Views:       atoiSafe(item.Statistics.ViewCount),
		})
	}
	return metrics, nil
}
