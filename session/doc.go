// Package session houses concrete implementations of core.SessionStore. The
// interface itself (and the Turn struct) live in the core package to
// centralize domain contracts. Keeping only implementations here prevents
// higher level packages (tools, agent) from depending on concrete storage.
//
// Add additional backends (Redis, Postgres, etc.) alongside the existing
// ones without changing any calling code; only the wiring layer decides
// which implementation to instantiate.
package session
