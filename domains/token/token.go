package token

import (
	"context"

	domainPlatform "github.com/postline/postline/domains/platform"
)

// IProvider exchanges or refreshes credentials for a short-lived access
// token. Safe to call repeatedly; refresh semantics are per platform.
type IProvider interface {
	Token(ctx context.Context, p domainPlatform.Platform) (string, error)
}

// ICache memoizes provider tokens per platform for the lifetime of one
// dispatcher run. Entries expire after a TTL so multi-hour runs do not keep
// using a token past its validity window.
type ICache interface {
	Token(ctx context.Context, p domainPlatform.Platform) (string, error)
	Invalidate(p domainPlatform.Platform)
}
