package platform

// Config is the tagged per-platform configuration. Exactly the fields for
// configured platforms are non-nil; everything else stays nil so a missing
// credential fails loudly at startup validation instead of at dispatch time.
type Config struct {
	Facebook  *FacebookConfig  `json:"facebook,omitempty"`
	Instagram *InstagramConfig `json:"instagram,omitempty"`
	Threads   *ThreadsConfig   `json:"threads,omitempty"`
	Pinterest *PinterestConfig `json:"pinterest,omitempty"`
	TikTok    *TikTokConfig    `json:"tiktok,omitempty"`
	Twitter   *TwitterConfig   `json:"twitter,omitempty"`
	YouTube   *YouTubeConfig   `json:"youtube,omitempty"`
	Rumble    *RumbleConfig    `json:"rumble,omitempty"`
}

type FacebookConfig struct {
	PageID      string `json:"page_id"`
	AppID       string `json:"app_id"`
	AppSecret   string `json:"app_secret"`
	AccessToken string `json:"access_token"`
}

type InstagramConfig struct {
	BusinessAccountID string `json:"business_account_id"`
	AppID             string `json:"app_id"`
	AppSecret         string `json:"app_secret"`
	AccessToken       string `json:"access_token"`
}

type ThreadsConfig struct {
	UserID      string `json:"user_id"`
	AppID       string `json:"app_id"`
	AppSecret   string `json:"app_secret"`
	AccessToken string `json:"access_token"`
}

type PinterestConfig struct {
	AppID        string `json:"app_id"`
	AppSecret    string `json:"app_secret"`
	RefreshToken string `json:"refresh_token"`
}

type TikTokConfig struct {
	ClientKey    string `json:"client_key"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

type TwitterConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

type YouTubeConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
}

type RumbleConfig struct {
	APIKey string `json:"api_key"`
}

// Configured reports whether credentials exist for the given platform.
func (c *Config) Configured(p Platform) bool {
	if c == nil {
		return false
	}
	switch p {
	case PlatformFacebook:
		return c.Facebook != nil
	case PlatformInstagram:
		return c.Instagram != nil
	case PlatformThreads:
		return c.Threads != nil
	case PlatformPinterest:
		return c.Pinterest != nil
	case PlatformTikTok:
		return c.TikTok != nil
	case PlatformTwitter:
		return c.Twitter != nil
	case PlatformYouTube:
		return c.YouTube != nil
	case PlatformRumble:
		return c.Rumble != nil
	}
	return false
}
