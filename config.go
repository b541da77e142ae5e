package capstone

import (
	"errors"
	"time"
)

const (
	defaultAccessTTL       = 30 * time.Minute
	defaultRefreshTTL      = 7 * 24 * time.Hour
	defaultBlocklistPrefix = "refresh_token:blocklist"
)

// JWTConfig controls token signing and lifetimes. Tokens are signed with
// HMAC-SHA256 using a single shared secret.
type JWTConfig struct {
	// SecretKey must be at least 32 bytes.
	SecretKey  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// PasswordConfig tunes the argon2id hasher. Zero values fall back to the
// hasher's defaults.
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// BlocklistConfig controls refresh-token revocation storage.
type BlocklistConfig struct {
	// RedisPrefix namespaces blocklist keys.
	RedisPrefix string

	// UseRemainingLifetime blocks revoked tokens for expiry-minus-now
	// instead of the token's full issue-to-expiry window. The default
	// keeps the full window, which over-retains entries by up to the
	// token's elapsed age but can never under-retain them.
	UseRemainingLifetime bool
}

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// Config is the full engine configuration.
type Config struct {
	JWT       JWTConfig
	Password  PasswordConfig
	Blocklist BlocklistConfig
	Metrics   MetricsConfig

	// Now overrides the clock. Tests use it to exercise expiry without
	// sleeping; production leaves it nil.
	Now func() time.Time
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  defaultAccessTTL,
			RefreshTTL: defaultRefreshTTL,
		},
		Blocklist: BlocklistConfig{
			RedisPrefix: defaultBlocklistPrefix,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if len(c.JWT.SecretKey) < 32 {
		return errors.New("JWT.SecretKey must be at least 32 bytes")
	}
	if c.JWT.AccessTTL <= 0 {
		return errors.New("JWT.AccessTTL must be positive")
	}
	if c.JWT.RefreshTTL <= 0 {
		return errors.New("JWT.RefreshTTL must be positive")
	}
	if c.Blocklist.RedisPrefix == "" {
		return errors.New("Blocklist.RedisPrefix must not be empty")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.SecretKey = cloneBytes(cfg.JWT.SecretKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
