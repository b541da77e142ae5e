package capstone

import (
	"context"
	"time"

	"github.com/JinhyeokFang/capstone/internal/flows"
	"github.com/JinhyeokFang/capstone/jwt"
	"github.com/JinhyeokFang/capstone/password"
	"github.com/JinhyeokFang/capstone/user"
)

// Engine is the authentication core: credential checks, token issuance,
// refresh, and revocation. Build one with New().…Build() and share it; all
// methods are safe for concurrent use.
type Engine struct {
	config    Config
	now       func() time.Time
	jwt       *jwt.Manager
	hasher    *password.Hasher
	users     user.Store
	blocklist TokenBlocklist
	metrics   *Metrics
	warn      func(string, ...any)
}

func (e *Engine) metricInc(id int) {
	e.metrics.Inc(MetricID(id))
}

// Login checks the email/password pair against the user store, stamps the
// account's last-login time, and returns a fresh token pair.
//
// Failures map to ErrUserNotFound, ErrPasswordMismatch, and ErrUserInactive
// in that order of checking; storage failures pass through untranslated.
func (e *Engine) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	pair, err := flows.RunLogin(ctx, email, password, flows.LoginDeps{
		Now:            e.now,
		FindByEmail:    e.users.FindByEmail,
		Save:           e.users.Save,
		VerifyPassword: e.hasher.Verify,
		IssueAccess:    e.jwt.IssueAccess,
		IssueRefresh:   e.jwt.IssueRefresh,
		MetricInc:      e.metricInc,
		Warn:           e.warn,
		Metrics: flows.LoginMetrics{
			Success: int(MetricLoginSuccess),
			Failure: int(MetricLoginFailure),
		},
		Errors: flows.LoginErrors{
			EngineNotReady:   ErrEngineNotReady,
			UserNotFound:     ErrUserNotFound,
			PasswordMismatch: ErrPasswordMismatch,
			UserInactive:     ErrUserInactive,
		},
	})
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// SignUp registers a new active account and logs it in by returning a token
// pair. The email must be unused; the duplicate check happens before any
// hashing work.
func (e *Engine) SignUp(ctx context.Context, name, email, password string) (*TokenPair, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	pair, err := flows.RunSignUp(ctx, name, email, password, flows.SignUpDeps{
		Now:          e.now,
		FindByEmail:  e.users.FindByEmail,
		Create:       e.users.Create,
		HashPassword: e.hasher.Hash,
		IssueAccess:  e.jwt.IssueAccess,
		IssueRefresh: e.jwt.IssueRefresh,
		MetricInc:    e.metricInc,
		Metrics: flows.SignUpMetrics{
			Success:   int(MetricSignUpSuccess),
			Duplicate: int(MetricSignUpDuplicate),
		},
		Errors: flows.SignUpErrors{
			EngineNotReady:     ErrEngineNotReady,
			EmailAlreadyExists: ErrEmailAlreadyExists,
		},
	})
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Logout revokes a refresh token by blocklisting it until it would have
// expired on its own. Logging out an already-revoked token resets the
// blocklist entry and succeeds.
func (e *Engine) Logout(ctx context.Context, refreshToken string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	return flows.RunLogout(ctx, refreshToken, flows.LogoutDeps{
		Verify:               e.jwt.Verify,
		TokenType:            e.jwt.Type,
		LifetimeWindow:       e.jwt.LifetimeWindow,
		RemainingLifetime:    e.jwt.RemainingLifetime,
		Block:                e.blocklist.Block,
		MetricInc:            e.metricInc,
		UseRemainingLifetime: e.config.Blocklist.UseRemainingLifetime,
		Metrics:              flows.LogoutMetrics{Logout: int(MetricLogout)},
		Errors: flows.LogoutErrors{
			EngineNotReady: ErrEngineNotReady,
			Unauthorized:   ErrUnauthorized,
		},
	})
}

// Refresh exchanges a valid, unrevoked refresh token for a new access
// token. The refresh token is not rotated.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	return flows.RunRefresh(ctx, refreshToken, flows.RefreshDeps{
		Verify:      e.jwt.Verify,
		TokenType:   e.jwt.Type,
		Subject:     e.jwt.Subject,
		Email:       e.jwt.Email,
		IsBlocked:   e.blocklist.IsBlocked,
		IssueAccess: e.jwt.IssueAccess,
		MetricInc:   e.metricInc,
		Metrics: flows.RefreshMetrics{
			Success: int(MetricRefreshSuccess),
			Failure: int(MetricRefreshFailure),
			Blocked: int(MetricRefreshBlocked),
		},
		Errors: flows.RefreshErrors{
			EngineNotReady: ErrEngineNotReady,
			Unauthorized:   ErrUnauthorized,
		},
	})
}

// CurrentUser resolves an access token to the account it was issued for.
// Revoked accounts and stale tokens both come back as ErrUnauthorized.
func (e *Engine) CurrentUser(ctx context.Context, accessToken string) (*Account, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	u, err := flows.RunCurrentUser(ctx, accessToken, flows.CurrentUserDeps{
		Verify:    e.jwt.Verify,
		TokenType: e.jwt.Type,
		Subject:   e.jwt.Subject,
		FindByID:  e.users.FindByID,
		Errors: flows.CurrentUserErrors{
			EngineNotReady: ErrEngineNotReady,
			Unauthorized:   ErrUnauthorized,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Account{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}

// MetricsSnapshot copies the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}
