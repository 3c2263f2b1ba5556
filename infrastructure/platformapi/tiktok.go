package platformapi

import (
	"context"
	"net/url"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

const (
	tiktokAPIBase  = "https://open.tiktokapis.com/v2"
	tiktokTokenURL = tiktokAPIBase + "/oauth/token/"
)

func (r *Registry) tiktokToken(ctx context.Context) (string, error) {
	cfg := r.cfg.TikTok

	form := url.Values{
		"client_key":    {cfg.ClientKey},
		"client_secret": {cfg.ClientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {cfg.RefreshToken},
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := r.client.postForm(ctx, tiktokTokenURL, nil, form, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", pkgError.AuthError("tiktok token refresh returned an empty token")
	}
	return resp.AccessToken, nil
}

// tiktokUploader publishes via the direct-post flow with a PULL_FROM_URL
// source, so the video never passes through this process.
type tiktokUploader struct {
	client *apiClient
	cfg    *domainPlatform.TikTokConfig
}

func (u *tiktokUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	payload := map[string]any{
		"post_info": map[string]any{
			"title":         composeCaption(post.Caption, post.Hashtags),
			"privacy_level": "PUBLIC_TO_EVERYONE",
		},
		"source_info": map[string]any{
			"source":    "PULL_FROM_URL",
			"video_url": post.MediaURL,
		},
	}

	var resp struct {
		Data struct {
			PublishID string `json:"publish_id"`
		} `json:"data"`
	}
	endpoint := tiktokAPIBase + "/post/publish/video/init/"
	if err := u.client.postJSON(ctx, endpoint, bearer(accessToken), payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.PublishID == "" {
		return "", pkgError.DeliveryError("tiktok publish returned no publish id")
	}
	return resp.Data.PublishID, nil
}
