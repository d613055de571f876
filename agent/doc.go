// Package agent implements the bounded reasoning loop that drives capability
// selection. Each iteration the model extends a textual transcript following
// a Thought / Action / Action Input / Observation cycle until it emits a
// Final Answer or the invocation bound is reached. The capability ordering
// (structured query first, semantic search second, generic chat last) is
// advisory prompt guidance only; the loop tolerates any order the model
// chooses.
package agent
