package capstone

import (
	"context"
	"time"
)

// TokenPair holds the two tokens minted at login and signup. The access
// token authorizes API calls for its short lifetime; the refresh token
// mints replacement access tokens until it expires or is logged out.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Account is the public projection of an authenticated user, as resolved
// from an access token. The password hash and bookkeeping timestamps stay
// internal.
type Account struct {
	ID    int64
	Name  string
	Email string
}

// TokenBlocklist records revoked refresh tokens until their natural expiry.
// Implementations must treat a store outage as an error, never as
// "not blocked".
type TokenBlocklist interface {
	Block(ctx context.Context, token string, ttl time.Duration) error
	IsBlocked(ctx context.Context, token string) (bool, error)
}
