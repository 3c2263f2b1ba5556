package platform

import (
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformThreads   Platform = "threads"
	PlatformPinterest Platform = "pinterest"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformRumble    Platform = "rumble"
)

// All lists every supported platform in interactive-prompt order.
func All() []Platform {
	return []Platform{
		PlatformFacebook,
		PlatformInstagram,
		PlatformThreads,
		PlatformPinterest,
		PlatformTikTok,
		PlatformTwitter,
		PlatformYouTube,
		PlatformRumble,
	}
}

func Parse(raw string) (Platform, error) {
	candidate := Platform(strings.ToLower(strings.TrimSpace(raw)))
	for _, p := range All() {
		if p == candidate {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", raw)
}

func (p Platform) String() string {
	return string(p)
}

// VideoOnly reports whether the platform accepts only video media. Loader
// enforces an .mp4/.mov media URL for these.
func (p Platform) VideoOnly() bool {
	switch p {
	case PlatformYouTube, PlatformRumble, PlatformTikTok:
		return true
	}
	return false
}

// RequiresBoard reports whether a post needs a board ID (Pinterest only).
func (p Platform) RequiresBoard() bool {
	return p == PlatformPinterest
}

// SupportsLocation reports whether the platform accepts a location field.
func (p Platform) SupportsLocation() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram:
		return true
	}
	return false
}
