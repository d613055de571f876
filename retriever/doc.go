// Package retriever implements semantic search over the email corpus: it
// embeds the question, queries the pre-built Neo4j vector index and attaches
// identifying metadata to each hit via a fixed retrieval-time projection.
// An empty hit set is a legitimate terminal state, not a failure.
package retriever
