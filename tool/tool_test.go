package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/mailgraph/mailgraph/answer"
	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/cypher"
	"github.com/mailgraph/mailgraph/internal/testutil"
	"github.com/mailgraph/mailgraph/model"
	"github.com/mailgraph/mailgraph/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector []float32
}

func (f fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.vector, nil
}

func TestStructuredQueryHit(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Enqueue(
		"MATCH (p:Person)-[:SENT]->(e:Email) RETURN p.name, e.emailId",
		"Alice sent email 12452948.",
	)
	fake := testutil.NewFakeGraph()
	fake.EnqueueRecords(core.RecordSet{{"p.name": "Alice", "e.emailId": int64(12452948)}})

	tool := NewStructuredQuery(cypher.NewService(mock, fake), answer.NewComposer(mock))
	out, err := tool.Call(context.Background(), "Who sent email 12452948?")
	require.NoError(t, err)
	assert.Equal(t, "Alice sent email 12452948.", out)
}

func TestStructuredQueryMissReturnsEmpty(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Enqueue("MATCH (p:Person {name: 'Nobody'}) RETURN p")
	fake := testutil.NewFakeGraph() // empty script yields no records

	tool := NewStructuredQuery(cypher.NewService(mock, fake), answer.NewComposer(mock))
	out, err := tool.Call(context.Background(), "Who is Nobody?")
	require.NoError(t, err)
	assert.Equal(t, "", out)
	// The composer must not have been asked anything.
	assert.Len(t, mock.Requests(), 1)
}

func TestStructuredQueryModelFailure(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Fail(errors.New("down"))
	fake := testutil.NewFakeGraph()

	tool := NewStructuredQuery(cypher.NewService(mock, fake), answer.NewComposer(mock))
	_, err := tool.Call(context.Background(), "q")
	assert.Error(t, err)
}

func TestSemanticSearchComposesWithMetadata(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Enqueue("The outage was discussed in two emails.")
	fake := testutil.NewFakeGraph()
	fake.EnqueueRecords(core.RecordSet{
		{
			"text":  "Production went down at 3am.",
			"score": 0.9,
			"metadata": map[string]any{
				"emailId": int64(42),
				"subject": "Outage",
			},
		},
		{
			"text":     "Postmortem notes attached.",
			"score":    0.7,
			"metadata": map[string]any{"emailId": int64(43)},
		},
	})

	tool := NewSemanticSearch(retriever.NewRetriever(fakeEmbedder{vector: []float32{0.1}}, fake), mock)
	out, err := tool.Call(context.Background(), "what happened during the outage?")
	require.NoError(t, err)
	assert.Contains(t, out, "The outage was discussed in two emails.")
	assert.Contains(t, out, "Metadata: emailId=42; subject=Outage")

	// Both passages must be in the prompt, separated.
	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[0].Content
	assert.Contains(t, prompt, "Production went down at 3am.")
	assert.Contains(t, prompt, "Postmortem notes attached.")
	assert.Contains(t, prompt, "---")
}

func TestSemanticSearchNoHitsReturnsEmpty(t *testing.T) {
	mock := model.NewMockModel("test")
	fake := testutil.NewFakeGraph()

	tool := NewSemanticSearch(retriever.NewRetriever(fakeEmbedder{vector: []float32{0.1}}, fake), mock)
	out, err := tool.Call(context.Background(), "nothing similar")
	require.NoError(t, err)
	assert.Equal(t, "", out)
	assert.Empty(t, mock.Requests())
}

func TestGenericChat(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.Enqueue("I can only answer questions about the email database.")

	tool := NewGenericChat(mock)
	out, err := tool.Call(context.Background(), "what's the weather?")
	require.NoError(t, err)
	assert.Equal(t, "I can only answer questions about the email database.", out)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, SystemInstructions, reqs[0].System)
}

func TestToolNames(t *testing.T) {
	assert.Equal(t, NameStructuredQuery, (&StructuredQuery{}).Name())
	assert.Equal(t, NameSemanticSearch, (&SemanticSearch{}).Name())
	assert.Equal(t, NameGenericChat, (&GenericChat{}).Name())
}
