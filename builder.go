package capstone

import (
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JinhyeokFang/capstone/internal/stores"
	"github.com/JinhyeokFang/capstone/jwt"
	"github.com/JinhyeokFang/capstone/password"
	"github.com/JinhyeokFang/capstone/user"
)

// Builder assembles an Engine. Configure it with the With* methods and call
// Build once; a builder cannot be reused.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	users     user.Store
	blocklist TokenBlocklist
	warn      func(string, ...any)

	built bool
}

// New returns a builder with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration. Call it before the other
// With* methods that touch config fields.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the refresh-token blocklist.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserStore sets the account storage backend.
func (b *Builder) WithUserStore(s user.Store) *Builder {
	b.users = s
	return b
}

// WithBlocklist overrides the Redis-backed blocklist with a custom
// implementation. When set, no Redis client is required.
func (b *Builder) WithBlocklist(bl TokenBlocklist) *Builder {
	b.blocklist = bl
	return b
}

// WithWarnFunc sets the sink for non-fatal warnings. Defaults to the
// standard library logger.
func (b *Builder) WithWarnFunc(warn func(string, ...any)) *Builder {
	b.warn = warn
	return b
}

// Build validates the configuration, wires the token manager, hasher, and
// stores, and returns a ready engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.users == nil {
		return nil, errors.New("user store required")
	}
	if b.blocklist == nil && b.redis == nil {
		return nil, errors.New("redis client required")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	jm, err := jwt.NewManager(jwt.Config{
		Secret:     cloneBytes(cfg.JWT.SecretKey),
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}

	ph, err := password.NewHasher(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	blocklist := b.blocklist
	if blocklist == nil {
		blocklist = stores.NewBlocklist(b.redis, cfg.Blocklist.RedisPrefix)
	}

	warn := b.warn
	if warn == nil {
		warn = log.Printf
	}

	b.built = true

	return &Engine{
		config:    cfg,
		now:       now,
		jwt:       jm,
		hasher:    ph,
		users:     b.users,
		blocklist: blocklist,
		metrics:   NewMetrics(cfg.Metrics),
		warn:      warn,
	}, nil
}
