package platformapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPlatform "github.com/postline/postline/domains/platform"
	pkgError "github.com/postline/postline/pkg/error"
)

func TestRegistryRejectsUnconfiguredPlatform(t *testing.T) {
	registry := NewRegistry(&domainPlatform.Config{}, time.Second)

	_, err := registry.Uploader(domainPlatform.PlatformInstagram)
	require.Error(t, err)
	assert.IsType(t, pkgError.NotFoundError(""), err)

	_, err = registry.Token(context.Background(), domainPlatform.PlatformInstagram)
	require.Error(t, err)
	assert.IsType(t, pkgError.AuthError(""), err)
}

func TestRegistryResolvesConfiguredUploader(t *testing.T) {
	registry := NewRegistry(&domainPlatform.Config{
		Facebook: &domainPlatform.FacebookConfig{
			PageID:      "page-1",
			AppID:       "app",
			AppSecret:   "secret",
			AccessToken: "token",
		},
	}, time.Second)

	uploader, err := registry.Uploader(domainPlatform.PlatformFacebook)
	require.NoError(t, err)
	assert.IsType(t, &facebookUploader{}, uploader)
}

func TestRegistryRumbleTokenIsTheAPIKey(t *testing.T) {
	registry := NewRegistry(&domainPlatform.Config{
		Rumble: &domainPlatform.RumbleConfig{APIKey: "rumble-key"},
	}, time.Second)

	token, err := registry.Token(context.Background(), domainPlatform.PlatformRumble)
	require.NoError(t, err)
	assert.Equal(t, "rumble-key", token)
}
