package stores

import (
	"context"
	"sync"
	"time"
)

// MemoryBlocklist is a process-local blocklist with the same semantics as
// the Redis one. Used by tests and single-node example wiring.
type MemoryBlocklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryBlocklist returns an empty in-memory blocklist. A nil clock
// means time.Now.
func NewMemoryBlocklist(now func() time.Time) *MemoryBlocklist {
	if now == nil {
		now = time.Now
	}
	return &MemoryBlocklist{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

// Block records the token as revoked for ttl.
func (s *MemoryBlocklist) Block(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = s.now().Add(ttl)
	return nil
}

// IsBlocked reports whether the token has an unexpired revocation entry.
// Expired entries are reclaimed lazily on lookup.
func (s *MemoryBlocklist) IsBlocked(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	expiry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.now().After(expiry) {
		s.mu.Lock()
		if current, still := s.entries[token]; still && !current.After(expiry) {
			delete(s.entries, token)
		}
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
