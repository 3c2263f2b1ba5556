package platformapi

import (
	"context"
	"net/url"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

const (
	youtubeAPIBase = "https://www.googleapis.com/youtube/v3"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

func (r *Registry) youtubeToken(ctx context.Context) (string, error) {
	cfg := r.cfg.YouTube

	form := url.Values{
		"client_id":     {cfg.ClientID},
		"client_secret": {cfg.ClientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {cfg.RefreshToken},
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := r.client.postForm(ctx, googleTokenURL, nil, form, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", pkgError.AuthError("youtube token refresh returned an empty token")
	}
	return resp.AccessToken, nil
}

type youtubeUploader struct {
	client *apiClient
	cfg    *domainPlatform.YouTubeConfig
}

func (u *youtubeUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	payload := map[string]any{
		"snippet": map[string]any{
			"title":       firstNonEmpty(post.Title, post.Caption),
			"description": composeCaption(post.Caption, post.Hashtags),
		},
		"status": map[string]any{
			"privacyStatus": "public",
		},
		"mediaUrl": post.MediaURL,
	}

	var resp struct {
		ID string `json:"id"`
	}
	endpoint := youtubeAPIBase + "/videos?part=snippet,status"
	if err := u.client.postJSON(ctx, endpoint, bearer(accessToken), payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", pkgError.DeliveryError("youtube publish returned no video id")
	}
	return resp.ID, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
