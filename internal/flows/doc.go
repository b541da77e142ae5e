// Package flows contains the per-operation orchestration for the auth
// engine. Each flow takes an explicit deps-struct so it can be exercised in
// tests with plain fakes, without Redis or a database. The root package
// assembles deps from its configured components and maps flow sentinels to
// its public error surface.
package flows
