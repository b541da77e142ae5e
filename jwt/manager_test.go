package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:     testSecret,
		AccessTTL:  10 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        now,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManagerRejectsWeakConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"short secret", Config{Secret: []byte("short"), AccessTTL: time.Minute, RefreshTTL: time.Hour}},
		{"zero access ttl", Config{Secret: testSecret, AccessTTL: 0, RefreshTTL: time.Hour}},
		{"negative refresh ttl", Config{Secret: testSecret, AccessTTL: time.Minute, RefreshTTL: -time.Hour}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewManager(tc.cfg); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestIssueAccessRoundTrip(t *testing.T) {
	m := newTestManager(t, nil)

	token, err := m.IssueAccess("42", "alice@x.com")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	if !m.Verify(token) {
		t.Fatal("freshly issued access token must verify")
	}

	sub, err := m.Subject(token)
	if err != nil {
		t.Fatalf("Subject failed: %v", err)
	}
	if sub != "42" {
		t.Fatalf("subject round-trip: got %q, want %q", sub, "42")
	}

	email, err := m.Email(token)
	if err != nil {
		t.Fatalf("Email failed: %v", err)
	}
	if email != "alice@x.com" {
		t.Fatalf("email claim: got %q", email)
	}
}

func TestTypeTagIntegrity(t *testing.T) {
	m := newTestManager(t, nil)

	access, err := m.IssueAccess("1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	refresh, err := m.IssueRefresh("1", "a@x.com")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	if typ, _ := m.Type(access); typ != TypeAccess {
		t.Fatalf("access token type: got %q", typ)
	}
	if typ, _ := m.Type(refresh); typ != TypeRefresh {
		t.Fatalf("refresh token type: got %q", typ)
	}
}

func TestExpiredTokenFailsVerify(t *testing.T) {
	current := time.Now()
	m := newTestManager(t, func() time.Time { return current })

	token, err := m.IssueAccess("7", "b@x.com")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	current = current.Add(11 * time.Minute)

	if m.Verify(token) {
		t.Fatal("expired token must not verify")
	}
	_, err = m.Parse(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Parse on expired token: got %v, want ErrTokenExpired", err)
	}
}

func TestTamperedSignatureRejected(t *testing.T) {
	m := newTestManager(t, nil)

	token, err := m.IssueAccess("9", "c@x.com")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact three-segment token, got %d segments", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if m.Verify(tampered) {
		t.Fatal("tampered token must not verify")
	}
	if _, err := m.Parse(tampered); err == nil {
		t.Fatal("Parse must fail on tampered token")
	}
}

func TestParseDistinguishesMalformed(t *testing.T) {
	m := newTestManager(t, nil)

	_, err := m.Parse("not-a-token")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("got %v, want ErrTokenMalformed", err)
	}
	if m.Verify("not-a-token") {
		t.Fatal("Verify must swallow malformed tokens into false")
	}
}

func TestTokenWithoutExpiryRejected(t *testing.T) {
	m := newTestManager(t, nil)

	// Signed with the right key but no exp claim; such a token must not
	// become an eternal credential.
	eternal := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "1",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	token, err := eternal.SignedString(testSecret)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if m.Verify(token) {
		t.Fatal("token without exp must not verify")
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("Parse must fail on a token without exp")
	}
}

func TestForeignKeyRejected(t *testing.T) {
	m := newTestManager(t, nil)
	other, err := NewManager(Config{
		Secret:     []byte("ffffffffffffffffffffffffffffffff"),
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	token, err := other.IssueAccess("1", "")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	_, err = m.Parse(token)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("got %v, want ErrSignatureInvalid", err)
	}
}

func TestLifetimeWindow(t *testing.T) {
	// Truncate to the codec's second-level timestamp precision so the
	// arithmetic below is exact.
	current := time.Now().Truncate(time.Second)
	m := newTestManager(t, func() time.Time { return current })

	token, err := m.IssueRefresh("3", "d@x.com")
	if err != nil {
		t.Fatalf("IssueRefresh failed: %v", err)
	}

	window, err := m.LifetimeWindow(token)
	if err != nil {
		t.Fatalf("LifetimeWindow failed: %v", err)
	}
	if window != 7*24*time.Hour {
		t.Fatalf("lifetime window: got %v, want %v", window, 7*24*time.Hour)
	}

	// Advance the clock; the original window must not change, while the
	// remaining lifetime shrinks accordingly.
	current = current.Add(24 * time.Hour)

	window, err = m.LifetimeWindow(token)
	if err != nil {
		t.Fatalf("LifetimeWindow after advance failed: %v", err)
	}
	if window != 7*24*time.Hour {
		t.Fatalf("lifetime window drifted: got %v", window)
	}

	remaining, err := m.RemainingLifetime(token)
	if err != nil {
		t.Fatalf("RemainingLifetime failed: %v", err)
	}
	if remaining != 6*24*time.Hour {
		t.Fatalf("remaining lifetime: got %v, want %v", remaining, 6*24*time.Hour)
	}
}
