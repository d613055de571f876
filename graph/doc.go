// Package graph wraps the Neo4j driver behind the core.GraphRunner contract.
// It owns connection lifecycle (deferred connectivity verification, close),
// classifies Cypher syntax errors so callers can degrade instead of failing,
// and retries transient query errors with bounded exponential backoff.
package graph
