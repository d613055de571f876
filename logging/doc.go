// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. Library packages default to NoOpLogger; the server
// binary installs a JSON slog handler.
package logging
