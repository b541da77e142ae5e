// Package internal contains code that is intentionally private to the
// capstone module.
//
// # Sub-packages
//
//   - flows — pure-function flow orchestrators for every Engine operation
//   - stores — Redis blocklist and Postgres/in-memory user stores
//
// # What this package must NOT do
//
//   - Export types that appear in the public capstone API.
//   - Be imported by any package outside the capstone module.
package internal
