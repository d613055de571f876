package retriever

import (
	"context"
	"fmt"

	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
)

// searchQuery runs nearest-neighbour search over the named vector index and
// projects the metadata fields downstream consumers rely on. Results come
// back in descending similarity order.
const searchQuery = `CALL db.index.vector.queryNodes($index, $k, $embedding)
YIELD node, score
OPTIONAL MATCH (node)<-[:RECEIVED]-(receiver:Person)
WITH node, score, collect(receiver.personId) AS receiverIds
RETURN node.content AS text,
       score,
       {
           subject: node.subject,
           senderId: node.senderId,
           receiverIds: receiverIds,
           timeReceived: node.timeReceived,
           emailId: node.emailId,
           documentId: node.documentId
       } AS metadata
ORDER BY score DESC`

// Options configure the retriever.
type Options struct {
	// Index names the vector index over Email content embeddings.
	Index string
	// TopK bounds the number of nearest neighbours returned.
	TopK int
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Retriever performs embedding-based nearest-neighbour search over the email
// vector index.
type Retriever struct {
	embedder model.Embedder
	graph    core.GraphRunner
	opts     Options
}

// NewRetriever constructs a retriever over the given embedder and graph.
func NewRetriever(e model.Embedder, g core.GraphRunner, optFns ...func(o *Options)) *Retriever {
	opts := Options{
		Index:  "emailEmbeddings",
		TopK:   4,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Retriever{embedder: e, graph: g, opts: opts}
}

// Search embeds the question and returns the top-K passages in descending
// similarity order. No hits yields an empty slice and a nil error.
func (r *Retriever) Search(ctx context.Context, question string) ([]core.Passage, error) {
	embedding, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	records, err := r.graph.Run(ctx, searchQuery, map[string]any{
		"index":     r.opts.Index,
		"k":         r.opts.TopK,
		"embedding": embedding,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	passages := make([]core.Passage, 0, len(records))
	for _, rec := range records {
		passages = append(passages, toPassage(rec))
	}

	r.opts.Logger.Debug("semantic search completed", "hits", len(passages))
	return passages, nil
}

func toPassage(rec core.Record) core.Passage {
	p := core.Passage{}
	if text, ok := rec["text"].(string); ok {
		p.Text = text
	}
	switch score := rec["score"].(type) {
	case float64:
		p.Score = score
	case int64:
		p.Score = float64(score)
	}
	if meta, ok := rec["metadata"].(map[string]any); ok {
		p.Metadata = meta
	}
	return p
}
