package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType marks the usage context embedded in a token's payload. An
// access token must never be accepted where a refresh token is required,
// and vice versa.
type TokenType string

const (
	// TypeAccess marks short-lived tokens presented on API calls.
	TypeAccess TokenType = "ACCESS"
	// TypeRefresh marks longer-lived tokens used solely to mint new
	// access tokens.
	TypeRefresh TokenType = "REFRESH"
)

// minSecretBytes matches the HS256 key-strength floor (256 bits).
const minSecretBytes = 32

// Typed decode failures surfaced by Parse. Callers that only need a
// yes/no answer should use Verify, which folds all of these into false.
var (
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed indicates the token is not a parseable JWT.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrSignatureInvalid indicates the signature does not match the key.
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrTokenUnsupported indicates an unexpected signing algorithm or
	// token construction.
	ErrTokenUnsupported = errors.New("token unsupported")
	// ErrTokenInvalid is the catch-all for any other decode failure.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the signed payload carried by every token. Email is duplicated
// into the token so downstream consumers need not re-query the user store.
type Claims struct {
	Email string    `json:"email,omitempty"`
	Type  TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Config holds the process-wide codec settings. It is read once by
// NewManager and never mutated afterwards.
type Config struct {
	// Secret is the shared HS256 signing key; at least 32 bytes.
	Secret []byte
	// AccessTTL is the access-token lifetime.
	AccessTTL time.Duration
	// RefreshTTL is the refresh-token lifetime.
	RefreshTTL time.Duration
	// Now overrides the clock; nil means time.Now. Tests use this to
	// exercise expiry without sleeping.
	Now func() time.Time
}

// Manager issues and verifies tokens. Safe for concurrent use.
type Manager struct {
	config Config
	now    func() time.Time
}

// NewManager validates cfg and returns an immutable codec.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, fmt.Errorf("secret key must be at least %d bytes", minSecretBytes)
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{config: cfg, now: now}, nil
}

// IssueAccess mints a signed access token for the given subject.
func (m *Manager) IssueAccess(subject, email string) (string, error) {
	return m.issue(subject, email, TypeAccess, m.config.AccessTTL)
}

// IssueRefresh mints a signed refresh token for the given subject.
func (m *Manager) IssueRefresh(subject, email string) (string, error) {
	return m.issue(subject, email, TypeRefresh, m.config.RefreshTTL)
}

func (m *Manager) issue(subject, email string, typ TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		Type:  typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.config.Secret)
}

// Parse decodes and signature-checks a token, returning its claims. This is
// the only operation that reports a distinguished failure cause; the mapped
// sentinels exist for logging, not for caller branching.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	// Every token this codec issues carries exp; requiring it keeps a
	// same-key token minted without one from verifying forever.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return m.config.Secret, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Verify reports whether the token is well-formed, correctly signed, and
// not yet expired. All failures collapse to false.
func (m *Manager) Verify(tokenStr string) bool {
	_, err := m.Parse(tokenStr)
	return err == nil
}

// Subject returns the token's bearer identity (user id).
func (m *Manager) Subject(tokenStr string) (string, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Email returns the email claim; empty when the token carries none.
func (m *Manager) Email(tokenStr string) (string, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}

// Type returns the token's type marker.
func (m *Manager) Type(tokenStr string) (TokenType, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Type, nil
}

// LifetimeWindow returns the token's original total lifetime
// (expiry minus issue time).
func (m *Manager) LifetimeWindow(tokenStr string) (time.Duration, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return 0, ErrTokenInvalid
	}
	return claims.ExpiresAt.Sub(claims.IssuedAt.Time), nil
}

// RemainingLifetime returns the time left until the token expires.
func (m *Manager) RemainingLifetime(tokenStr string) (time.Duration, error) {
	claims, err := m.Parse(tokenStr)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil {
		return 0, ErrTokenInvalid
	}
	return claims.ExpiresAt.Sub(m.now()), nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenUnsupported, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}
