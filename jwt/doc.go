// Package jwt implements the compact signed-token codec used for access and
// refresh tokens. Tokens are HS256-signed with a single shared secret and
// carry the bearer's user id as subject, the account email, and a type
// marker distinguishing access from refresh usage.
//
// The codec is pure computation: no I/O, no shared mutable state. A
// [Manager] is constructed once at startup and is safe for concurrent use.
package jwt
