package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailgraph/mailgraph/internal/util"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
	"github.com/mailgraph/mailgraph/retriever"
)

const semanticAnswerTemplate = `Use the given context to answer the question. If you don't know the answer, say you don't know.

Context:
{{.context}}

Question:
{{.question}}

Answer:`

// SemanticSearchOptions configure the semantic search capability.
type SemanticSearchOptions struct {
	Logger logging.Logger
}

// SemanticSearch embeds the input, retrieves the nearest email passages and
// composes an answer from them. The observation ends with a metadata summary
// line after a blank line so the loop (and the user) can see identifying ids
// and timestamps. No hits returns "".
type SemanticSearch struct {
	retriever *retriever.Retriever
	model     model.Model
	opts      SemanticSearchOptions
}

// NewSemanticSearch wires the retriever and model into a capability.
func NewSemanticSearch(r *retriever.Retriever, m model.Model, optFns ...func(o *SemanticSearchOptions)) *SemanticSearch {
	opts := SemanticSearchOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &SemanticSearch{retriever: r, model: m, opts: opts}
}

// Name implements Tool.
func (t *SemanticSearch) Name() string { return NameSemanticSearch }

// Description implements Tool.
func (t *SemanticSearch) Description() string {
	return "Semantic search over email content. Use when the structured query yields no result."
}

// Call implements Tool.
func (t *SemanticSearch) Call(ctx context.Context, input string) (string, error) {
	passages, err := t.retriever.Search(ctx, input)
	if err != nil {
		return "", err
	}
	if len(passages) == 0 {
		return "", nil
	}

	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		texts = append(texts, p.Text)
	}
	prompt, err := util.RenderTemplate(semanticAnswerTemplate, map[string]any{
		"context":  strings.Join(texts, "\n\n---\n\n"),
		"question": input,
	})
	if err != nil {
		return "", fmt.Errorf("render semantic prompt: %w", err)
	}

	out, err := t.model.Complete(ctx, model.UserRequest(SystemInstructions, prompt))
	if err != nil {
		return "", err
	}

	if meta := passages[0].MetadataSummary(); meta != "" {
		return fmt.Sprintf("%s\n\nMetadata: %s", out, meta), nil
	}
	return out, nil
}
