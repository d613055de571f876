// Package testutil contains helper doubles used across tests to reduce
// boilerplate when simulating the graph database. The fakes are intentionally
// minimal and avoid adding third-party dependencies. They are not intended
// for production usage.
package testutil
