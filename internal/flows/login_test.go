package flows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JinhyeokFang/capstone/user"
)

var (
	errNotReady         = errors.New("not ready")
	errUserNotFound     = errors.New("user not found")
	errPasswordMismatch = errors.New("password mismatch")
	errUserInactive     = errors.New("user inactive")
	errUnauthorized     = errors.New("unauthorized")
	errEmailExists      = errors.New("email already exists")
)

type userFixture struct {
	stored *user.User
	saved  []user.User
}

func (f *userFixture) findByEmail(_ context.Context, email string) (*user.User, error) {
	if f.stored == nil || f.stored.Email != email {
		return nil, user.ErrNotFound
	}
	u := *f.stored
	return &u, nil
}

func (f *userFixture) save(_ context.Context, u *user.User) (*user.User, error) {
	stored := *u
	f.saved = append(f.saved, stored)
	return &stored, nil
}

func loginDeps(f *userFixture) LoginDeps {
	return LoginDeps{
		Now:         func() time.Time { return time.Unix(1_700_000_000, 0) },
		FindByEmail: f.findByEmail,
		Save:        f.save,
		VerifyPassword: func(password, hash string) (bool, error) {
			return hash == "hash:"+password, nil
		},
		IssueAccess: func(subject, email string) (string, error) {
			return "access/" + subject + "/" + email, nil
		},
		IssueRefresh: func(subject, email string) (string, error) {
			return "refresh/" + subject + "/" + email, nil
		},
		Errors: LoginErrors{
			EngineNotReady:   errNotReady,
			UserNotFound:     errUserNotFound,
			PasswordMismatch: errPasswordMismatch,
			UserInactive:     errUserInactive,
		},
	}
}

func activeUser() *user.User {
	return &user.User{
		ID:           42,
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "hash:pw12345678",
		CreatedAt:    time.Unix(1_600_000_000, 0),
		UpdatedAt:    time.Unix(1_600_000_000, 0),
		IsActive:     true,
	}
}

func TestLoginSuccessStampsLastLogin(t *testing.T) {
	f := &userFixture{stored: activeUser()}
	deps := loginDeps(f)

	pair, err := RunLogin(context.Background(), "alice@x.com", "pw12345678", deps)
	if err != nil {
		t.Fatalf("RunLogin failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.AccessToken == pair.RefreshToken {
		t.Fatalf("expected two distinct non-empty tokens, got %+v", pair)
	}
	if pair.AccessToken != "access/42/alice@x.com" {
		t.Fatalf("subject/email wiring: got %q", pair.AccessToken)
	}

	if len(f.saved) != 1 {
		t.Fatalf("expected exactly one persisted update, got %d", len(f.saved))
	}
	if f.saved[0].LastLoginAt == nil {
		t.Fatal("login must stamp LastLoginAt")
	}
	if !f.saved[0].UpdatedAt.Equal(time.Unix(1_700_000_000, 0)) {
		t.Fatalf("login must stamp UpdatedAt: got %v", f.saved[0].UpdatedAt)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := &userFixture{}
	deps := loginDeps(f)

	_, err := RunLogin(context.Background(), "nobody@x.com", "pw12345678", deps)
	if !errors.Is(err, errUserNotFound) {
		t.Fatalf("got %v, want user-not-found", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := &userFixture{stored: activeUser()}
	deps := loginDeps(f)

	_, err := RunLogin(context.Background(), "alice@x.com", "wrong", deps)
	if !errors.Is(err, errPasswordMismatch) {
		t.Fatalf("got %v, want password-mismatch", err)
	}
	if len(f.saved) != 0 {
		t.Fatal("failed login must not persist anything")
	}
}

func TestLoginNullPasswordHashNeverMatches(t *testing.T) {
	u := activeUser()
	u.PasswordHash = ""
	f := &userFixture{stored: u}
	deps := loginDeps(f)
	deps.VerifyPassword = func(string, string) (bool, error) {
		t.Fatal("verifier must not run for accounts without a hash")
		return false, nil
	}

	_, err := RunLogin(context.Background(), "alice@x.com", "anything", deps)
	if !errors.Is(err, errPasswordMismatch) {
		t.Fatalf("got %v, want password-mismatch", err)
	}
}

func TestLoginInactiveUserDoesNotPersist(t *testing.T) {
	u := activeUser()
	u.IsActive = false
	f := &userFixture{stored: u}
	deps := loginDeps(f)

	_, err := RunLogin(context.Background(), "alice@x.com", "pw12345678", deps)
	if !errors.Is(err, errUserInactive) {
		t.Fatalf("got %v, want user-inactive", err)
	}
	if len(f.saved) != 0 {
		t.Fatal("inactive login must not persist an update")
	}
}

func TestLoginMissingDeps(t *testing.T) {
	_, err := RunLogin(context.Background(), "a@x.com", "pw", LoginDeps{
		Errors: LoginErrors{EngineNotReady: errNotReady},
	})
	if !errors.Is(err, errNotReady) {
		t.Fatalf("got %v, want engine-not-ready", err)
	}
}
