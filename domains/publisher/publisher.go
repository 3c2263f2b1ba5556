package publisher

import (
	"context"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainSchedule "github.com/postline/postline/domains/schedule"
)

// IUploader performs one platform-specific publish call. At most one external
// post attempt per invocation; returns the external post ID on success.
type IUploader interface {
	Upload(ctx context.Context, post domainSchedule.Post, accessToken string) (string, error)
}

// IRegistry resolves the uploader for a platform. Unconfigured platforms
// return an error rather than a nil adapter.
type IRegistry interface {
	Uploader(p domainPlatform.Platform) (IUploader, error)
}
