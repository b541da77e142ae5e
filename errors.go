package capstone

import "errors"

var (
	// ErrUserNotFound is returned by Login when no account matches the email.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch is returned when the presented password does not
	// match the stored hash, including accounts that have no hash at all.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrUserInactive is returned when credentials check out but the account
	// has been deactivated.
	ErrUserInactive = errors.New("user inactive")
	// ErrEmailAlreadyExists is returned by SignUp for a taken email.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUnauthorized covers every token rejection: expired, tampered,
	// wrong type, revoked, or bound to a missing or inactive account.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrEngineNotReady is returned when the engine is used before Build
	// wired all of its dependencies.
	ErrEngineNotReady = errors.New("engine not initialized")
)
