// Package capstone implements an email/password authentication engine with
// JWT access and refresh tokens and Redis-backed refresh-token revocation.
//
// The engine issues a short-lived access token and a long-lived refresh
// token at login and signup. Access tokens are stateless; refresh tokens
// stay valid until expiry or logout, at which point they are recorded in a
// TTL blocklist. Accounts live in a pluggable user store with a Postgres
// implementation included.
//
// Construct an engine with the builder:
//
//	engine, err := capstone.New().
//		WithConfig(cfg).
//		WithRedis(redisClient).
//		WithUserStore(store).
//		Build()
package capstone
