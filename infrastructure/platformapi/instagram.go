package platformapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

func (r *Registry) instagramToken(ctx context.Context) (string, error) {
	cfg := r.cfg.Instagram

	endpoint := fmt.Sprintf(
		"%s/oauth/access_token?grant_type=fb_exchange_token&client_id=%s&client_secret=%s&fb_exchange_token=%s",
		facebookGraphBase,
		url.QueryEscape(cfg.AppID),
		url.QueryEscape(cfg.AppSecret),
		url.QueryEscape(cfg.AccessToken),
	)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := r.client.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", pkgError.AuthError("instagram token exchange returned an empty token")
	}
	return resp.AccessToken, nil
}

// instagramUploader publishes through the two-step container flow: create a
// media container, then publish it.
type instagramUploader struct {
	client *apiClient
	cfg    *domainPlatform.InstagramConfig
}

func (u *instagramUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	container := map[string]any{
		"caption":      composeCaption(post.Caption, post.Hashtags),
		"access_token": accessToken,
	}
	if strings.HasSuffix(strings.ToLower(post.MediaURL), ".mp4") || strings.HasSuffix(strings.ToLower(post.MediaURL), ".mov") {
		container["media_type"] = "REELS"
		container["video_url"] = post.MediaURL
	} else {
		container["image_url"] = post.MediaURL
	}
	if post.Location != "" {
		container["location_id"] = post.Location
	}

	var created struct {
		ID string `json:"id"`
	}
	endpoint := fmt.Sprintf("%s/%s/media", facebookGraphBase, u.cfg.BusinessAccountID)
	if err := u.client.postJSON(ctx, endpoint, nil, container, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", pkgError.DeliveryError("instagram container creation returned no id")
	}

	var published struct {
		ID string `json:"id"`
	}
	publishEndpoint := fmt.Sprintf("%s/%s/media_publish", facebookGraphBase, u.cfg.BusinessAccountID)
	payload := map[string]any{
		"creation_id":  created.ID,
		"access_token": accessToken,
	}
	if err := u.client.postJSON(ctx, publishEndpoint, nil, payload, &published); err != nil {
		return "", err
	}
	if published.ID == "" {
		return "", pkgError.DeliveryError("instagram publish returned no media id")
	}
	return published.ID, nil
}
