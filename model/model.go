package model

import "context"

// Message is a single chat message in a completion request.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request captures the normalized completion input produced by the pipeline.
// Providers translate it into their native message format.
type Request struct {
	// System carries instructions prepended to the conversation.
	System string `json:"system,omitempty"`
	// Messages is the ordered conversation to complete.
	Messages []Message `json:"messages"`
	// Temperature overrides the adapter default when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive generation. Complete
// blocks until the provider returns the full response text.
type Model interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// Embedder produces a fixed-size vector representation of text for
// similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// UserRequest is a convenience constructor for a single user message with
// optional system instructions.
func UserRequest(system, content string) Request {
	return Request{System: system, Messages: []Message{{Role: "user", Content: content}}}
}
