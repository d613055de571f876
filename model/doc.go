// Package model defines the completion and embedding contracts the pipeline
// depends on, plus a deterministic mock for tests. Provider adapters live in
// sub-packages (openai, anthropic) so callers can swap vendors without
// touching orchestration code.
package model
