package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domainPlatform "github.com/postline/postline/domains/platform"
)

// PlatformsFile is the credentials document, one key per configured platform.
var PlatformsFile = "storages/platforms.json"

func init() {
	if v := os.Getenv("PLATFORMS_FILE"); v != "" {
		PlatformsFile = v
	}
}

// LoadPlatforms reads the tagged platform configuration from disk. A missing
// file yields an empty config: commands then fail per platform with a clear
// "not configured" error instead of a file-not-found at startup.
func LoadPlatforms() (*domainPlatform.Config, error) {
	data, err := os.ReadFile(PlatformsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &domainPlatform.Config{}, nil
		}
		return nil, fmt.Errorf("failed to read platform config %s: %w", PlatformsFile, err)
	}

	var cfg domainPlatform.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("platform config %s is not valid JSON: %w", PlatformsFile, err)
	}
	return &cfg, nil
}

// SavePlatforms persists the configuration, e.g. after a token exchange
// returned a rotated refresh token.
func SavePlatforms(cfg *domainPlatform.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(PlatformsFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(PlatformsFile, data, 0600)
}
