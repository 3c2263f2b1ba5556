package platformapi

import (
	"context"
	"fmt"
	"time"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainPublisher "github.com/postline/postline/domains/publisher"
	pkgError "github.com/postline/postline/pkg/error"
)

// Registry holds the validated platform configuration and hands out the
// matching uploader. It also implements the token provider and metrics
// client, so one construction wires every platform-facing concern.
type Registry struct {
	cfg    *domainPlatform.Config
	client *apiClient
}

func NewRegistry(cfg *domainPlatform.Config, timeout time.Duration) *Registry {
	return &Registry{
		cfg:    cfg,
		client: newAPIClient(timeout),
	}
}

func (r *Registry) Uploader(p domainPlatform.Platform) (domainPublisher.IUploader, error) {
	if !r.cfg.Configured(p) {
		return nil, pkgError.NotFoundError(fmt.Sprintf("platform %s is not configured", p))
	}

	switch p {
	case domainPlatform.PlatformFacebook:
		return &facebookUploader{client: r.client, cfg: r.cfg.Facebook}, nil
	case domainPlatform.PlatformInstagram:
		return &instagramUploader{client: r.client, cfg: r.cfg.Instagram}, nil
	case domainPlatform.PlatformThreads:
		return &threadsUploader{client: r.client, cfg: r.cfg.Threads}, nil
	case domainPlatform.PlatformPinterest:
		return &pinterestUploader{client: r.client, cfg: r.cfg.Pinterest}, nil
	case domainPlatform.PlatformTikTok:
		return &tiktokUploader{client: r.client, cfg: r.cfg.TikTok}, nil
	case domainPlatform.PlatformTwitter:
		return &twitterUploader{client: r.client, cfg: r.cfg.Twitter}, nil
	case domainPlatform.PlatformYouTube:
		return &youtubeUploader{client: r.client, cfg: r.cfg.YouTube}, nil
	case domainPlatform.PlatformRumble:
		return &rumbleUploader{client: r.client, cfg: r.cfg.Rumble}, nil
	}
	return nil, pkgError.NotFoundError(fmt.Sprintf("platform %s has no uploader", p))
}

// Token refreshes or exchanges credentials for a usable access token. The
// dispatcher's token cache sits in front of this, so repeated calls within a
// run are cheap.
func (r *Registry) Token(ctx context.Context, p domainPlatform.Platform) (string, error) {
	if !r.cfg.Configured(p) {
		return "", pkgError.AuthError(fmt.Sprintf("platform %s is not configured", p))
	}

	switch p {
	case domainPlatform.PlatformFacebook:
		return r.facebookToken(ctx)
	case domainPlatform.PlatformInstagram:
		return r.instagramToken(ctx)
	case domainPlatform.PlatformThreads:
		return r.threadsToken(ctx)
	case domainPlatform.PlatformPinterest:
		return r.pinterestToken(ctx)
	case domainPlatform.PlatformTikTok:
		return r.tiktokToken(ctx)
	case domainPlatform.PlatformTwitter:
		return r.twitterToken(ctx)
	case domainPlatform.PlatformYouTube:
		return r.youtubeToken(ctx)
	case domainPlatform.PlatformRumble:
		return r.cfg.Rumble.APIKey, nil
	}
	return "", pkgError.AuthError(fmt.Sprintf("platform %s has no token provider", p))
}
