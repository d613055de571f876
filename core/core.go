package core

import "github.com/google/uuid"

// DefaultSessionID is used when a caller submits a question without a
// session identifier.
const DefaultSessionID = "default"

// NewID generates a unique identifier for turns and traces.
func NewID() string {
	return uuid.New().String()
}
