// Package tool implements the capabilities the reasoning loop may invoke per
// iteration: structured graph querying, semantic search and generic chat.
// Each capability takes a plain-text input and returns a plain-text output so
// results can be spliced into the loop transcript as observations.
package tool

import "context"

// Tool defines the interface for capabilities exposed to the reasoning loop.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions (the description is
//     shown to the model to guide capability selection)
//   - Return "" with a nil error to signal "no result" rather than failing
//     when the miss is a legitimate outcome
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this capability.
	Name() string

	// Description returns a human-readable description of what this
	// capability does, provided to the model.
	Description() string

	// Call executes the capability with the given input.
	Call(ctx context.Context, input string) (string, error)
}

// Capability names declared to the reasoning loop.
const (
	NameStructuredQuery = "StructuredQuery"
	NameSemanticSearch  = "SemanticSearch"
	NameGenericChat     = "GenericChat"
)

// SystemInstructions is the database-expert persona shared by capabilities
// that compose free text.
const SystemInstructions = `You are a database expert providing information about an email database.
Use only the provided context to answer. If you don't know, say you don't know.
Always include relevant IDs and dates for reference.`
