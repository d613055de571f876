package session

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgraph/mailgraph/core"
)

const loadQuery = `MATCH (s:Session {id: $sessionID})-[:HAS_MESSAGE]->(m:Message)
RETURN m.id AS id, m.role AS role, m.content AS content, m.seq AS seq, m.created AS created
ORDER BY m.seq`

// appendQuery assigns the next sequence position inside the statement so two
// writers racing on the same session cannot both observe the same count
// outside the transaction.
const appendQuery = `MERGE (s:Session {id: $sessionID})
WITH s
OPTIONAL MATCH (s)-[:HAS_MESSAGE]->(prev:Message)
WITH s, count(prev) AS seq
CREATE (s)-[:HAS_MESSAGE]->(m:Message {id: $id, role: $role, content: $content, seq: seq, created: $created})
RETURN m.seq AS seq`

// Neo4jStore persists conversation turns in the graph database as
// (Session)-[:HAS_MESSAGE]->(Message) nodes ordered by a seq property.
// History is append-only: messages are created, never updated or removed.
type Neo4jStore struct {
	graph core.GraphRunner
}

// NewNeo4jStore constructs a store over the given graph runner.
func NewNeo4jStore(g core.GraphRunner) *Neo4jStore {
	return &Neo4jStore{graph: g}
}

// Load implements core.SessionStore. A session with no prior turns yields an
// empty slice, not an error.
func (s *Neo4jStore) Load(ctx context.Context, sessionID string) ([]core.Turn, error) {
	records, err := s.graph.Run(ctx, loadQuery, map[string]any{"sessionID": sessionID})
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", sessionID, err)
	}

	turns := make([]core.Turn, 0, len(records))
	for _, rec := range records {
		turns = append(turns, core.Turn{
			ID:        asString(rec["id"]),
			SessionID: sessionID,
			Role:      core.Role(asString(rec["role"])),
			Content:   asString(rec["content"]),
			Seq:       asInt(rec["seq"]),
			Created:   asTime(rec["created"]),
		})
	}
	return turns, nil
}

// Append implements core.SessionStore.
func (s *Neo4jStore) Append(ctx context.Context, sessionID string, turn core.Turn) error {
	if turn.ID == "" {
		turn.ID = core.NewID()
	}
	if turn.Created.IsZero() {
		turn.Created = time.Now().UTC()
	}
	_, err := s.graph.Write(ctx, appendQuery, map[string]any{
		"sessionID": sessionID,
		"id":        turn.ID,
		"role":      string(turn.Role),
		"content":   turn.Content,
		"created":   turn.Created,
	})
	if err != nil {
		return fmt.Errorf("append to session %q: %w", sessionID, err)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asTime(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}
