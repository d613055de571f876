package core

import (
	"context"
	"time"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks a turn authored by the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a session's conversation history.
//
// Contract:
//   - Turns for a session are totally ordered by Seq (insertion order)
//   - History is append-only; a persisted turn is never rewritten
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Seq       int       `json:"seq"`
	Created   time.Time `json:"created"`
}

// NewTurn creates a turn with a fresh identifier and UTC timestamp. Seq is
// assigned by the session store on append.
func NewTurn(sessionID string, role Role, content string) Turn {
	return Turn{
		ID:        NewID(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Created:   time.Now().UTC(),
	}
}

// SessionStore persists per-session conversation history. A session with no
// prior turns loads as an empty slice, not an error.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) ([]Turn, error)
	Append(ctx context.Context, sessionID string, turn Turn) error
}
