package cypher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/graph"
	"github.com/mailgraph/mailgraph/internal/util"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
)

// Options configure the query service.
type Options struct {
	// Schema is the fixed schema description embedded in the prompt.
	Schema string
	// Logger receives degradation warnings; defaults to NoOpLogger.
	Logger logging.Logger
}

// Service translates questions into Cypher and executes them.
//
// Error contract (deliberately asymmetric):
//   - Cypher syntax errors and other query execution errors degrade to an
//     empty RecordSet with a nil error, triggering the semantic fallback.
//   - Model failures propagate: without a generated query there is nothing
//     to degrade to.
type Service struct {
	model model.Model
	graph core.GraphRunner
	opts  Options
}

// NewService constructs a query service over the given model and graph.
func NewService(m model.Model, g core.GraphRunner, optFns ...func(o *Options)) *Service {
	opts := Options{
		Schema: graph.SchemaDescription,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{model: m, graph: g, opts: opts}
}

// TranslateAndRun generates a Cypher statement for the question and executes
// it, returning the raw matching records. See the Service error contract.
func (s *Service) TranslateAndRun(ctx context.Context, question string) (core.RecordSet, error) {
	query, err := s.Translate(ctx, question)
	if err != nil {
		return nil, err
	}

	records, err := s.graph.Run(ctx, query, nil)
	if err != nil {
		if errors.Is(err, graph.ErrSyntax) {
			s.opts.Logger.Warn("generated query rejected by database", "query", query, "error", err)
		} else {
			s.opts.Logger.Warn("structured query execution failed", "query", query, "error", err)
		}
		return core.RecordSet{}, nil
	}

	s.opts.Logger.Debug("structured query executed", "query", query, "records", len(records))
	return records, nil
}

// Translate asks the model for a single Cypher statement answering the
// question against the configured schema.
func (s *Service) Translate(ctx context.Context, question string) (string, error) {
	prompt, err := util.RenderTemplate(generationTemplate, map[string]any{
		"schema":   s.opts.Schema,
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("render cypher prompt: %w", err)
	}

	out, err := s.model.Complete(ctx, model.UserRequest("", prompt))
	if err != nil {
		return "", fmt.Errorf("generate cypher: %w", err)
	}

	query := sanitize(out)
	if query == "" {
		return "", fmt.Errorf("generate cypher: model returned empty query")
	}
	return query, nil
}

// sanitize strips markdown fences and surrounding noise the model sometimes
// wraps around the statement.
func sanitize(out string) string {
	query := strings.TrimSpace(out)
	if idx := strings.Index(query, "```"); idx >= 0 {
		query = query[idx+3:]
		query = strings.TrimPrefix(query, "cypher")
		if end := strings.Index(query, "```"); end >= 0 {
			query = query[:end]
		}
	}
	return strings.TrimSpace(query)
}
