package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	mailgraph "github.com/mailgraph/mailgraph"
	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/internal/testutil"
	"github.com/mailgraph/mailgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gradeTable = `| Metric | Score (%) |
|---|---|
| Relevance | 90 |
| Groundedness | 88 |
| Completeness | 85 |
| Overall Accuracy | 88 |`

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1}, nil
}

func newTestServer(t *testing.T, mock *model.MockModel, fake *testutil.FakeGraph) *Server {
	t.Helper()
	assistant, err := mailgraph.New(mock, fakeEmbedder{}, fake)
	require.NoError(t, err)
	return New(assistant)
}

func postChat(t *testing.T, srv *Server, body any) (*http.Response, ChatResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)

	var out ChatResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(data, &out))
	}
	return resp, out
}

func TestChatEndpoint(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Enqueue(
		"MATCH (p:Person)-[:SENT]->(e:Email {emailId: 12452948}) RETURN p.name",
		"Alice sent email 12452948.",
		"Thought: Do I need to use a tool? No\nFinal Answer: Alice sent it.",
		gradeTable,
	)
	fake := testutil.NewFakeGraph()
	fake.EnqueueRecords(core.RecordSet{{"p.name": "Alice"}})

	srv := newTestServer(t, mock, fake)
	resp, out := postChat(t, srv, ChatRequest{Message: "Who sent email 12452948?", SessionID: "s1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice sent it.", out.Reply)
	assert.Equal(t, "Alice sent email 12452948.", out.RetrievalContext)
	assert.InDelta(t, 0.88, out.Accuracy, 1e-9)
	assert.Empty(t, out.EvaluationError)
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	srv := newTestServer(t, model.NewMockModel("test"), testutil.NewFakeGraph())
	resp, _ := postChat(t, srv, ChatRequest{Message: ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatEndpointInvalidBody(t *testing.T) {
	srv := newTestServer(t, model.NewMockModel("test"), testutil.NewFakeGraph())

	req, err := http.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatEndpointEvaluationFailure(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Enqueue(
		"MATCH (p:Person) RETURN p.name",
		"Alice appears in the database.",
		"Thought: Do I need to use a tool? No\nFinal Answer: Alice.",
		"no grading table",
	)
	fake := testutil.NewFakeGraph()
	fake.EnqueueRecords(core.RecordSet{{"p.name": "Alice"}})

	srv := newTestServer(t, mock, fake)
	resp, out := postChat(t, srv, ChatRequest{Message: "Who is there?", SessionID: "s1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice.", out.Reply)
	assert.Zero(t, out.Accuracy)
	assert.NotEmpty(t, out.EvaluationError)
}

func TestChatEndpointGenerationFailure(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Fail(errors.New("provider outage"))

	srv := newTestServer(t, mock, testutil.NewFakeGraph())
	resp, _ := postChat(t, srv, ChatRequest{Message: "q"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
