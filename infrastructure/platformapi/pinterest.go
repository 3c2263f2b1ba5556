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
	pinterestAPIBase  = "https://api.pinterest.com/v5"
	pinterestTokenURL = pinterestAPIBase + "/oauth/token"
)

func (r *Registry) pinterestToken(ctx context.Context) (string, error) {
	cfg := r.cfg.Pinterest

	basic := base64.StdEncoding.EncodeToString([]byte(cfg.AppID + ":" + cfg.AppSecret))
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {cfg.RefreshToken},
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	headers := map[string]string{"Authorization": "Basic " + basic}
	if err := r.client.postForm(ctx, pinterestTokenURL, headers, form, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", pkgError.AuthError("pinterest token refresh returned an empty token")
	}
	return resp.AccessToken, nil
}

type pinterestUploader struct {
	client *apiClient
	cfg    *domainPlatform.PinterestConfig
}

func (u *pinterestUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	payload := map[string]any{
		"board_id":    post.BoardID,
		"title":       post.Title,
		"description": composeCaption(post.Caption, post.Hashtags),
		"media_source": map[string]any{
			"source_type": "image_url",
			"url":         post.MediaURL,
		},
	}
	if post.ExternalLink != "" {
		payload["link"] = post.ExternalLink
	}
	if post.AltText != "" {
		payload["alt_text"] = post.AltText
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := u.client.postJSON(ctx, pinterestAPIBase+"/pins", bearer(accessToken), payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", pkgError.DeliveryError("pinterest pin creation returned no id")
	}
	return resp.ID, nil
}
