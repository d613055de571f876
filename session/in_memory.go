package session

import (
	"context"
	"sync"

	"github.com/mailgraph/mailgraph/core"
)

// InMemoryStore is a volatile SessionStore implementation storing turns in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Load returns a copy to prevent external
// mutation of internal state.
type InMemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]core.Turn
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{turns: make(map[string][]core.Turn)}
}

// Load returns the session's turns in insertion order. Unknown sessions
// yield an empty slice.
func (s *InMemoryStore) Load(_ context.Context, sessionID string) ([]core.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := make([]core.Turn, len(s.turns[sessionID]))
	copy(turns, s.turns[sessionID])
	return turns, nil
}

// Append adds a turn to the session, assigning the next sequence position.
func (s *InMemoryStore) Append(_ context.Context, sessionID string, turn core.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn.SessionID = sessionID
	turn.Seq = len(s.turns[sessionID])
	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}
