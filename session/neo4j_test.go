package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeo4jStoreLoad(t *testing.T) {
	created := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fake := testutil.NewFakeGraph()
	fake.EnqueueRecords(core.RecordSet{
		{"id": "t1", "role": "user", "content": "hello", "seq": int64(0), "created": created},
		{"id": "t2", "role": "assistant", "content": "hi there", "seq": int64(1), "created": created},
	})

	store := NewNeo4jStore(fake)
	turns, err := store.Load(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)

	assert.Equal(t, "t1", turns[0].ID)
	assert.Equal(t, "s1", turns[0].SessionID)
	assert.Equal(t, core.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, 0, turns[0].Seq)
	assert.Equal(t, created, turns[0].Created)

	assert.Equal(t, core.RoleAssistant, turns[1].Role)
	assert.Equal(t, 1, turns[1].Seq)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Write)
	assert.Equal(t, "s1", calls[0].Params["sessionID"])
}

func TestNeo4jStoreLoadEmptySession(t *testing.T) {
	store := NewNeo4jStore(testutil.NewFakeGraph())
	turns, err := store.Load(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestNeo4jStoreLoadError(t *testing.T) {
	fake := testutil.NewFakeGraph()
	fake.EnqueueError(errors.New("connection reset"))

	store := NewNeo4jStore(fake)
	_, err := store.Load(context.Background(), "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `load session "s1"`)
}

func TestNeo4jStoreAppend(t *testing.T) {
	fake := testutil.NewFakeGraph()
	store := NewNeo4jStore(fake)

	turn := core.NewTurn("s1", core.RoleUser, "question text")
	require.NoError(t, store.Append(context.Background(), "s1", turn))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Write)
	assert.Equal(t, "s1", calls[0].Params["sessionID"])
	assert.Equal(t, turn.ID, calls[0].Params["id"])
	assert.Equal(t, "user", calls[0].Params["role"])
	assert.Equal(t, "question text", calls[0].Params["content"])
}

func TestNeo4jStoreAppendFillsMissingFields(t *testing.T) {
	fake := testutil.NewFakeGraph()
	store := NewNeo4jStore(fake)

	require.NoError(t, store.Append(context.Background(), "s1", core.Turn{
		Role:    core.RoleAssistant,
		Content: "answer",
	}))

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.NotEmpty(t, calls[0].Params["id"])
	created, ok := calls[0].Params["created"].(time.Time)
	require.True(t, ok)
	assert.False(t, created.IsZero())
}

func TestNeo4jStoreAppendError(t *testing.T) {
	fake := testutil.NewFakeGraph()
	fake.EnqueueError(errors.New("write refused"))

	store := NewNeo4jStore(fake)
	err := store.Append(context.Background(), "s1", core.NewTurn("s1", core.RoleUser, "x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `append to session "s1"`)
}
