// Package cypher implements the structured query service: it translates a
// natural-language question into a Cypher statement with a few-shot LLM
// prompt, executes it against the graph store and returns the raw matching
// records. Database failures degrade to an empty record set so the caller
// can fall back to semantic search.
package cypher
