package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrBlocklistUnavailable wraps any Redis failure. Callers must treat it as
// an infrastructure error, never as "not blocked".
var ErrBlocklistUnavailable = errors.New("blocklist store unavailable")

const defaultBlocklistPrefix = "refresh_token:blocklist"

// Blocklist is a negative cache of revoked refresh tokens. Entries are
// keyed by the literal token string and expire on their own, bounding
// storage to recently revoked, not-yet-expired tokens.
type Blocklist struct {
	redis  redis.UniversalClient
	prefix string
}

// NewBlocklist returns a Redis-backed blocklist. An empty prefix selects
// the default key namespace.
func NewBlocklist(client redis.UniversalClient, prefix string) *Blocklist {
	if prefix == "" {
		prefix = defaultBlocklistPrefix
	}
	return &Blocklist{redis: client, prefix: prefix}
}

func (s *Blocklist) key(token string) string {
	return s.prefix + ":" + token
}

// Block records the token as revoked for ttl. Idempotent: repeating the
// call resets the TTL.
func (s *Blocklist) Block(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past its natural expiry; nothing to retain.
		return nil
	}
	if err := s.redis.Set(ctx, s.key(token), "blocked", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBlocklistUnavailable, err)
	}
	return nil
}

// IsBlocked reports whether the token has been revoked.
func (s *Blocklist) IsBlocked(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBlocklistUnavailable, err)
	}
	return n > 0, nil
}
