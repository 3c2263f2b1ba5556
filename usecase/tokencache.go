package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	domainPlatform "github.com/postline/postline/domains/platform"
	domainToken "github.com/postline/postline/domains/token"
)

type cachedToken struct {
	value     string
	fetchedAt time.Time
}

type serviceTokenCache struct {
	provider domainToken.IProvider
	clock    Clock
	ttl      time.Duration

	mu     sync.Mutex
	tokens map[domainPlatform.Platform]cachedToken
}

// NewTokenCacheService memoizes provider tokens per platform. Entries older
// than ttl are refetched, so a dispatcher run spanning hours does not keep
// presenting an expired token.
func NewTokenCacheService(provider domainToken.IProvider, clock Clock, ttl time.Duration) domainToken.ICache {
	return &serviceTokenCache{
		provider: provider,
		clock:    clock,
		ttl:      ttl,
		tokens:   make(map[domainPlatform.Platform]cachedToken),
	}
}

func (service *serviceTokenCache) Token(ctx context.Context, p domainPlatform.Platform) (string, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	now := service.clock.Now()
	if cached, ok := service.tokens[p]; ok && now.Sub(cached.fetchedAt) < service.ttl {
		return cached.value, nil
	}

	value, err := service.provider.Token(ctx, p)
	if err != nil {
		return "", err
	}

	service.tokens[p] = cachedToken{value: value, fetchedAt: now}
	logrus.Debugf("[TOKEN] Cached fresh access token for %s", p)
	return value, nil
}

func (service *serviceTokenCache) Invalidate(p domainPlatform.Platform) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.tokens, p)
}
