package flows

import (
	"context"

	"github.com/JinhyeokFang/capstone/jwt"
)

// RefreshMetrics carries metric IDs used by the refresh flow.
type RefreshMetrics struct {
	Success int
	Failure int
	Blocked int
}

// RefreshErrors carries host-level sentinel errors used by the refresh flow.
type RefreshErrors struct {
	EngineNotReady error
	Unauthorized   error
}

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	Verify      func(string) bool
	TokenType   func(string) (jwt.TokenType, error)
	Subject     func(string) (string, error)
	Email       func(string) (string, error)
	IsBlocked   func(context.Context, string) (bool, error)
	IssueAccess func(subject, email string) (string, error)
	MetricInc   func(int)

	Metrics RefreshMetrics
	Errors  RefreshErrors
}

// RunRefresh mints a new access token from a valid, unrevoked refresh
// token. The refresh token itself is not rotated: it remains accepted until
// it expires or is logged out.
func RunRefresh(ctx context.Context, refreshToken string, deps RefreshDeps) (string, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Verify == nil ||
		deps.TokenType == nil ||
		deps.Subject == nil ||
		deps.Email == nil ||
		deps.IsBlocked == nil ||
		deps.IssueAccess == nil {
		return "", deps.Errors.EngineNotReady
	}

	if !deps.Verify(refreshToken) {
		deps.MetricInc(deps.Metrics.Failure)
		return "", deps.Errors.Unauthorized
	}
	typ, err := deps.TokenType(refreshToken)
	if err != nil || typ != jwt.TypeRefresh {
		deps.MetricInc(deps.Metrics.Failure)
		return "", deps.Errors.Unauthorized
	}

	blocked, err := deps.IsBlocked(ctx, refreshToken)
	if err != nil {
		// Unreachable store is surfaced as-is, never as "not blocked".
		return "", err
	}
	if blocked {
		deps.MetricInc(deps.Metrics.Blocked)
		return "", deps.Errors.Unauthorized
	}

	subject, err := deps.Subject(refreshToken)
	if err != nil {
		deps.MetricInc(deps.Metrics.Failure)
		return "", deps.Errors.Unauthorized
	}
	// The email claim is mandatory metadata on every refresh token.
	email, err := deps.Email(refreshToken)
	if err != nil || email == "" {
		deps.MetricInc(deps.Metrics.Failure)
		return "", deps.Errors.Unauthorized
	}

	access, err := deps.IssueAccess(subject, email)
	if err != nil {
		return "", err
	}

	deps.MetricInc(deps.Metrics.Success)
	return access, nil
}
