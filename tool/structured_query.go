package tool

import (
	"context"

	"github.com/mailgraph/mailgraph/answer"
	"github.com/mailgraph/mailgraph/cypher"
)

// StructuredQuery translates the input into Cypher, executes it and composes
// a narrative answer from the matching records. A structured miss returns ""
// so the loop can fall back to semantic search.
type StructuredQuery struct {
	cypher   *cypher.Service
	composer *answer.Composer
}

// NewStructuredQuery wires the query service and composer into a capability.
func NewStructuredQuery(c *cypher.Service, comp *answer.Composer) *StructuredQuery {
	return &StructuredQuery{cypher: c, composer: comp}
}

// Name implements Tool.
func (t *StructuredQuery) Name() string { return NameStructuredQuery }

// Description implements Tool.
func (t *StructuredQuery) Description() string {
	return "Translate the question into a graph query and run it against the email schema. Try this first."
}

// Call implements Tool.
func (t *StructuredQuery) Call(ctx context.Context, input string) (string, error) {
	records, err := t.cypher.TranslateAndRun(ctx, input)
	if err != nil {
		return "", err
	}
	if records.Empty() {
		return "", nil
	}
	return t.composer.Compose(ctx, input, records)
}
