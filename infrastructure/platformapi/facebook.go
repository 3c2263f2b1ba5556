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

const facebookGraphBase = "https://graph.facebook.com/v19.0"

// facebookToken exchanges the stored token for a fresh long-lived one.
// Facebook returns the same token when it is still far from expiry.
func (r *Registry) facebookToken(ctx context.Context) (string, error) {
	cfg := r.cfg.Facebook

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
		return "", pkgError.AuthError("facebook token exchange returned an empty token")
	}
	return resp.AccessToken, nil
}

type facebookUploader struct {
	client *apiClient
	cfg    *domainPlatform.FacebookConfig
}

func (u *facebookUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	payload := map[string]any{
		"access_token": accessToken,
	}

	var endpoint string
	if strings.HasSuffix(strings.ToLower(post.MediaURL), ".mp4") || strings.HasSuffix(strings.ToLower(post.MediaURL), ".mov") {
		endpoint = fmt.Sprintf("%s/%s/videos", facebookGraphBase, u.cfg.PageID)
		payload["file_url"] = post.MediaURL
		payload["description"] = composeCaption(post.Caption, post.Hashtags)
	} else {
		endpoint = fmt.Sprintf("%s/%s/photos", facebookGraphBase, u.cfg.PageID)
		payload["url"] = post.MediaURL
		payload["caption"] = composeCaption(post.Caption, post.Hashtags)
	}
	if post.Location != "" {
		payload["place"] = post.Location
	}

	var resp struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := u.client.postJSON(ctx, endpoint, nil, payload, &resp); err != nil {
		return "", err
	}
	if resp.PostID != "" {
		return resp.PostID, nil
	}
	if resp.ID == "" {
		return "", pkgError.DeliveryError("facebook publish returned no post id")
	}
	return resp.ID, nil
}
