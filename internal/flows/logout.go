package flows

import (
	"context"
	"time"

	"github.com/JinhyeokFang/capstone/jwt"
)

// LogoutMetrics carries metric IDs used by the logout flow.
type LogoutMetrics struct {
	Logout int
}

// LogoutErrors carries host-level sentinel errors used by the logout flow.
type LogoutErrors struct {
	EngineNotReady error
	Unauthorized   error
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	Verify            func(string) bool
	TokenType         func(string) (jwt.TokenType, error)
	LifetimeWindow    func(string) (time.Duration, error)
	RemainingLifetime func(string) (time.Duration, error)
	Block             func(context.Context, string, time.Duration) error
	MetricInc         func(int)

	// UseRemainingLifetime selects the corrected blocklist TTL
	// (expiry minus now). The default retains the token's full original
	// lifetime window, matching the system this one replaces.
	UseRemainingLifetime bool

	Metrics LogoutMetrics
	Errors  LogoutErrors
}

// RunLogout revokes a refresh token by recording it in the blocklist until
// it would have expired anyway. Only refresh tokens can be logged out.
func RunLogout(ctx context.Context, refreshToken string, deps LogoutDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Verify == nil ||
		deps.TokenType == nil ||
		deps.LifetimeWindow == nil ||
		deps.RemainingLifetime == nil ||
		deps.Block == nil {
		return deps.Errors.EngineNotReady
	}

	if !deps.Verify(refreshToken) {
		return deps.Errors.Unauthorized
	}
	typ, err := deps.TokenType(refreshToken)
	if err != nil || typ != jwt.TypeRefresh {
		return deps.Errors.Unauthorized
	}

	var ttl time.Duration
	if deps.UseRemainingLifetime {
		ttl, err = deps.RemainingLifetime(refreshToken)
	} else {
		ttl, err = deps.LifetimeWindow(refreshToken)
	}
	if err != nil {
		return deps.Errors.Unauthorized
	}

	// Store failures surface as-is: an unreachable blocklist is an
	// infrastructure error, not an invalid credential.
	if err := deps.Block(ctx, refreshToken, ttl); err != nil {
		return err
	}

	deps.MetricInc(deps.Metrics.Logout)
	return nil
}
