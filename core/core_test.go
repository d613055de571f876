package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRecordSetEmpty(t *testing.T) {
	assert.True(t, RecordSet{}.Empty())
	assert.True(t, RecordSet(nil).Empty())
	assert.False(t, RecordSet{{"n": 1}}.Empty())
}

func TestMetadataSummary(t *testing.T) {
	p := Passage{Metadata: map[string]any{
		"subject":  "Quarterly report",
		"emailId":  int64(12452948),
		"senderId": 77,
	}}
	assert.Equal(t, "emailId=12452948; senderId=77; subject=Quarterly report", p.MetadataSummary())
}

func TestMetadataSummaryEmpty(t *testing.T) {
	assert.Equal(t, "", Passage{}.MetadataSummary())
	assert.Equal(t, "", Passage{Metadata: map[string]any{}}.MetadataSummary())
}

func TestNewTurn(t *testing.T) {
	turn := NewTurn("s1", RoleUser, "hello")
	assert.NotEmpty(t, turn.ID)
	assert.Equal(t, "s1", turn.SessionID)
	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "hello", turn.Content)
	assert.False(t, turn.Created.IsZero())
}

func TestTrace(t *testing.T) {
	trace := NewTrace()
	assert.NotEmpty(t, trace.ID)
	assert.Equal(t, 0, trace.Len())
	assert.Equal(t, "", trace.LastObservation())

	trace.Add(Step{Tool: "StructuredQuery", Input: "q", Observation: "first"})
	trace.Add(Step{Tool: "SemanticSearch", Input: "q", Observation: "second"})

	assert.Equal(t, 2, trace.Len())
	assert.Equal(t, "second", trace.LastObservation())
}
