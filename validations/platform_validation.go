package validations

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	domainPlatform "github.com/postline/postline/domains/platform"
	pkgError "github.com/postline/postline/pkg/error"
)

// ValidatePlatformConfig checks once at startup that the configured platform
// carries a complete credential set, so a half-filled config fails before any
// dispatch work starts.
func ValidatePlatformConfig(ctx context.Context, cfg *domainPlatform.Config, p domainPlatform.Platform) error {
	if cfg == nil || !cfg.Configured(p) {
		return pkgError.ValidationError(fmt.Sprintf("config: platform %s is not configured.", p))
	}

	var err error
	switch p {
	case domainPlatform.PlatformFacebook:
		err = validation.ValidateStructWithContext(ctx, cfg.Facebook,
			validation.Field(&cfg.Facebook.PageID, validation.Required),
			validation.Field(&cfg.Facebook.AppID, validation.Required),
			validation.Field(&cfg.Facebook.AppSecret, validation.Required),
			validation.Field(&cfg.Facebook.AccessToken, validation.Required),
		)
	case domainPlatform.PlatformInstagram:
		err = validation.ValidateStructWithContext(ctx, cfg.Instagram,
			validation.Field(&cfg.Instagram.BusinessAccountID, validation.Required),
			validation.Field(&cfg.Instagram.AppID, validation.Required),
			validation.Field(&cfg.Instagram.AppSecret, validation.Required),
			validation.Field(&cfg.Instagram.AccessToken, validation.Required),
		)
	case domainPlatform.PlatformThreads:
		err = validation.ValidateStructWithContext(ctx, cfg.Threads,
			validation.Field(&cfg.Threads.UserID, validation.Required),
			validation.Field(&cfg.Threads.AppSecret, validation.Required),
			validation.Field(&cfg.Threads.AccessToken, validation.Required),
		)
	case domainPlatform.PlatformPinterest:
		err = validation.ValidateStructWithContext(ctx, cfg.Pinterest,
			validation.Field(&cfg.Pinterest.AppID, validation.Required),
			validation.Field(&cfg.Pinterest.AppSecret, validation.Required),
			validation.Field(&cfg.Pinterest.RefreshToken, validation.Required),
		)
	case domainPlatform.PlatformTikTok:
		err = validation.ValidateStructWithContext(ctx, cfg.TikTok,
			validation.Field(&cfg.TikTok.ClientKey, validation.Required),
			validation.Field(&cfg.TikTok.ClientSecret, validation.Required),
			validation.Field(&cfg.TikTok.RefreshToken, validation.Required),
		)
	case domainPlatform.PlatformTwitter:
		err = validation.ValidateStructWithContext(ctx, cfg.Twitter,
			validation.Field(&cfg.Twitter.ClientID, validation.Required),
			validation.Field(&cfg.Twitter.ClientSecret, validation.Required),
			validation.Field(&cfg.Twitter.RefreshToken, validation.Required),
		)
	case domainPlatform.PlatformYouTube:
		err = validation.ValidateStructWithContext(ctx, cfg.YouTube,
			validation.Field(&cfg.YouTube.ClientID, validation.Required),
			validation.Field(&cfg.YouTube.ClientSecret, validation.Required),
			validation.Field(&cfg.YouTube.RefreshToken, validation.Required),
		)
	case domainPlatform.PlatformRumble:
		err = validation.ValidateStructWithContext(ctx, cfg.Rumble,
			validation.Field(&cfg.Rumble.APIKey, validation.Required),
		)
	}

	if err != nil {
		return pkgError.ValidationError(fmt.Sprintf("config: %s: %s", p, err.Error()))
	}
	return nil
}
