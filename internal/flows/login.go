package flows

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/JinhyeokFang/capstone/user"
)

// TokenPair is the flow-local result of login and signup.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginMetrics carries metric IDs used by the login flow.
type LoginMetrics struct {
	Success int
	Failure int
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady   error
	UserNotFound     error
	PasswordMismatch error
	UserInactive     error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	Now            func() time.Time
	FindByEmail    func(context.Context, string) (*user.User, error)
	Save           func(context.Context, *user.User) (*user.User, error)
	VerifyPassword func(password, hash string) (bool, error)
	IssueAccess    func(subject, email string) (string, error)
	IssueRefresh   func(subject, email string) (string, error)
	MetricInc      func(int)
	Warn           func(string, ...any)

	Metrics LoginMetrics
	Errors  LoginErrors
}

// RunLogin validates credentials, stamps the login timestamp, and issues an
// access/refresh pair. Steps are strictly sequential: lookup, password
// check, activity check, persist, issue.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (*TokenPair, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.FindByEmail == nil ||
		deps.Save == nil ||
		deps.VerifyPassword == nil ||
		deps.IssueAccess == nil ||
		deps.IssueRefresh == nil {
		return nil, deps.Errors.EngineNotReady
	}

	u, err := deps.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			deps.MetricInc(deps.Metrics.Failure)
			return nil, deps.Errors.UserNotFound
		}
		return nil, err
	}

	// Accounts without a stored hash can never log in by password.
	if u.PasswordHash == "" {
		deps.MetricInc(deps.Metrics.Failure)
		return nil, deps.Errors.PasswordMismatch
	}
	ok, err := deps.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		deps.Warn("auth: password verification errored")
	}
	if err != nil || !ok {
		deps.MetricInc(deps.Metrics.Failure)
		return nil, deps.Errors.PasswordMismatch
	}

	if !u.IsActive {
		deps.MetricInc(deps.Metrics.Failure)
		return nil, deps.Errors.UserInactive
	}

	stamped := u.Login(deps.Now())
	saved, err := deps.Save(ctx, &stamped)
	if err != nil {
		return nil, err
	}

	subject := strconv.FormatInt(saved.ID, 10)
	access, err := deps.IssueAccess(subject, saved.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := deps.IssueRefresh(subject, saved.Email)
	if err != nil {
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Success)
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
