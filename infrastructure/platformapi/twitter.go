package platformapi

import (
	"context"
	"encoding/base64"
	"net/url"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

const (
	twitterAPIBase  = "https://api.twitter.com/2"
	twitterTokenURL = twitterAPIBase + "/oauth2/token"
)

func (r *Registry) twitterToken(ctx context.Context) (string, error) {
	cfg := r.cfg.Twitter

	basic := base64.StdEncoding.EncodeToString([]byte(cfg.ClientID + ":" + cfg.ClientSecret))
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {cfg.RefreshToken},
		"client_id":     {cfg.ClientID},
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	headers := map[string]string{"Authorization": "Basic " + basic}
	if err := r.client.postForm(ctx, twitterTokenURL, headers, form, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", pkgError.AuthError("twitter token refresh returned an empty token")
	}
	return resp.AccessToken, nil
}

// twitterUploader posts the caption with the media URL appended. Native media
// upload needs the v1.1 chunked endpoint and is out of scope here.
type twitterUploader struct {
	client *apiClient
	cfg    *domainPlatform.TwitterConfig
}

func (u *twitterUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	text := composeCaption(post.Caption, post.Hashtags)
	if post.MediaURL != "" {
		text = text + "\n" + post.MediaURL
	}

	payload := map[string]any{"text": text}

	var resp struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := u.client.postJSON(ctx, twitterAPIBase+"/tweets", bearer(accessToken), payload, &resp); err != nil {
		return "", err
	}
	if resp.Data.ID == "" {
		return "", pkgError.DeliveryError("twitter publish returned no tweet id")
	}
	return resp.Data.ID, nil
}
