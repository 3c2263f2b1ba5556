package platformapi

import (
	"context"
	"net/url"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
	pkgError "github.com/postline/postline/pkg/error"
)

const rumbleAPIBase = "https://rumble.com/api/v0"

type rumbleUploader struct {
	client *apiClient
	cfg    *domainPlatform.RumbleConfig
}

func (u *rumbleUploader) Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error) {
	form := url.Values{
		"api_key":     {accessToken},
		"title":       {firstNonEmpty(post.Title, post.Caption)},
		"description": {composeCaption(post.Caption, post.Hashtags)},
		"video_url":   {post.MediaURL},
	}

	var resp struct {
		Success bool   `json:"success"`
		VideoID string `json:"video_id"`
	}
	if err := u.client.postForm(ctx, rumbleAPIBase+"/upload", nil, form, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.VideoID == "" {
		return "", pkgError.DeliveryError("rumble publish was not accepted")
	}
	return resp.VideoID, nil
}
