package flows

import (
	"context"
	"errors"
	"strconv"

	"github.com/JinhyeokFang/capstone/jwt"
	"github.com/JinhyeokFang/capstone/user"
)

// CurrentUserErrors carries host-level sentinel errors used by the
// current-user flow.
type CurrentUserErrors struct {
	EngineNotReady error
	Unauthorized   error
}

// CurrentUserDeps captures current-user flow dependencies.
type CurrentUserDeps struct {
	Verify    func(string) bool
	TokenType func(string) (jwt.TokenType, error)
	Subject   func(string) (string, error)
	FindByID  func(context.Context, int64) (*user.User, error)

	Errors CurrentUserErrors
}

// RunCurrentUser resolves an access token to its active account. Missing or
// deactivated accounts are indistinguishable from a bad token.
func RunCurrentUser(ctx context.Context, accessToken string, deps CurrentUserDeps) (*user.User, error) {
	if deps.Verify == nil ||
		deps.TokenType == nil ||
		deps.Subject == nil ||
		deps.FindByID == nil {
		return nil, deps.Errors.EngineNotReady
	}

	if !deps.Verify(accessToken) {
		return nil, deps.Errors.Unauthorized
	}
	typ, err := deps.TokenType(accessToken)
	if err != nil || typ != jwt.TypeAccess {
		return nil, deps.Errors.Unauthorized
	}

	subject, err := deps.Subject(accessToken)
	if err != nil {
		return nil, deps.Errors.Unauthorized
	}
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, deps.Errors.Unauthorized
	}

	u, err := deps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, deps.Errors.Unauthorized
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, deps.Errors.Unauthorized
	}
	return u, nil
}
