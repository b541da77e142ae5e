// Package stores contains the storage backends consumed by the auth
// engine: the Redis-backed refresh-token blocklist and the Postgres user
// store, plus in-memory equivalents used by tests and example wiring.
package stores
