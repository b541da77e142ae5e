package flows

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/JinhyeokFang/capstone/user"
)

// SignUpMetrics carries metric IDs used by the signup flow.
type SignUpMetrics struct {
	Success   int
	Duplicate int
}

// SignUpErrors carries host-level sentinel errors used by the signup flow.
type SignUpErrors struct {
	EngineNotReady     error
	EmailAlreadyExists error
}

// SignUpDeps captures signup flow dependencies.
type SignUpDeps struct {
	Now          func() time.Time
	FindByEmail  func(context.Context, string) (*user.User, error)
	Create       func(context.Context, *user.User) (*user.User, error)
	HashPassword func(string) (string, error)
	IssueAccess  func(subject, email string) (string, error)
	IssueRefresh func(subject, email string) (string, error)
	MetricInc    func(int)

	Metrics SignUpMetrics
	Errors  SignUpErrors
}

// RunSignUp registers a new active account and issues an access/refresh
// pair. The duplicate check runs before the password is hashed, and signup
// deliberately does not stamp LastLoginAt: registration is not a login
// event in this model.
func RunSignUp(ctx context.Context, name, email, password string, deps SignUpDeps) (*TokenPair, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.FindByEmail == nil ||
		deps.Create == nil ||
		deps.HashPassword == nil ||
		deps.IssueAccess == nil ||
		deps.IssueRefresh == nil {
		return nil, deps.Errors.EngineNotReady
	}

	_, err := deps.FindByEmail(ctx, email)
	if err == nil {
		deps.MetricInc(deps.Metrics.Duplicate)
		return nil, deps.Errors.EmailAlreadyExists
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := deps.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := deps.Now()
	created, err := deps.Create(ctx, &user.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	subject := strconv.FormatInt(created.ID, 10)
	access, err := deps.IssueAccess(subject, created.Email)
	if err != nil {
		return nil, err
	}
	refresh, err := deps.IssueRefresh(subject, created.Email)
	if err != nil {
		return nil, err
	}

	deps.MetricInc(deps.Metrics.Success)
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
