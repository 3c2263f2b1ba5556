package platformapi

import (
	"context"
	"fmt"
	"net/url"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

const threadsGraphBase = "https://graph.threads.net/v1.0"

func (r *Registry) threadsToken(ctx context.Context) (string, error) {
	cfg := r.cfg.Threads

	endpoint := fmt.Sprintf(
		"%s/refresh_access_token?grant_type=th_refresh_token&access_token=%s",
		threadsGraphBase,
		url.QueryEscape(cfg.AccessToken),
	)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := r.client.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", pkgError.AuthError("threads token refresh returned an empty token")
	}
	return resp.AccessToken, nil
}

// threadsUploader uses the same container-then-publish flow as Instagram.
type threadsUploader struct {
	client *apiClient
	cfg    *domainPlatform.ThreadsConfig
}

func (u *threadsUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	container := map[string]any{
		"media_type":   "IMAGE",
		"image_url":    post.MediaURL,
		"text":         composeCaption(post.Caption, post.Hashtags),
		"access_token": accessToken,
	}

	var created struct {
		ID string `json:"id"`
	}
	endpoint := fmt.Sprintf("%s/%s/threads", threadsGraphBase, u.cfg.UserID)
	if err := u.client.postJSON(ctx, endpoint, nil, container, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", pkgError.DeliveryError("threads container creation returned no id")
	}

	var published struct {
		ID string `json:"id"`
	}
	publishEndpoint := fmt.Sprintf("%s/%s/threads_publish", threadsGraphBase, u.cfg.UserID)
	payload := map[string]any{
		"creation_id":  created.ID,
		"access_token": accessToken,
	}
	if err := u.client.postJSON(ctx, publishEndpoint, nil, payload, &published); err != nil {
		return "", err
	}
	if published.ID == "" {
		return "", pkgError.DeliveryError("threads publish returned no post id")
	}
	return published.ID, nil
}
