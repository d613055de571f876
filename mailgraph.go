// Package mailgraph provides a high-level façade over the retrieval-and-
// answer pipeline for the email knowledge graph. Most applications interact
// with this package by:
//  1. Creating an Assistant via New() with a model, embedder and graph store
//  2. Calling Ask() with a question and session id
//
// The façade wires the query service, semantic retriever, answer composer,
// reasoning loop, session memory and evaluation service together. All
// pipeline state is constructed exactly once in New and shared read-only
// afterwards, so an Assistant is safe for concurrent Ask calls.
package mailgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mailgraph/mailgraph/agent"
	"github.com/mailgraph/mailgraph/answer"
	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/cypher"
	"github.com/mailgraph/mailgraph/evaluation"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
	"github.com/mailgraph/mailgraph/retriever"
	"github.com/mailgraph/mailgraph/session"
	"github.com/mailgraph/mailgraph/tool"
)

// Options configure the Assistant.
type Options struct {
	// Sessions persists conversation history (defaults to in-memory).
	Sessions core.SessionStore
	// Evaluator scores answers (defaults to an LLM evaluator on Model).
	Evaluator evaluation.Evaluator
	// MaxSteps bounds reasoning-loop capability invocations per question.
	MaxSteps int
	// Logger (defaults to NoOpLogger).
	Logger logging.Logger
}

// Result is the outcome of one question: the final answer, the retrieved
// context it was reasoned over, the capability trace and the grounding
// accuracy in [0,1].
type Result struct {
	Answer   string      `json:"answer"`
	Context  string      `json:"context"`
	Accuracy float64     `json:"accuracy"`
	Trace    *core.Trace `json:"trace,omitempty"`
}

// Assistant aggregates the pipeline components behind the single Ask
// operation.
type Assistant struct {
	cypher   *cypher.Service
	composer *answer.Composer
	semantic *tool.SemanticSearch
	loop     *agent.Loop
	eval     *evaluation.Service
	logger   logging.Logger
}

// New wires the full pipeline over the given model, embedder and graph.
// Any unset service is initialized with a default implementation.
func New(m model.Model, e model.Embedder, g core.GraphRunner, optFns ...func(o *Options)) (*Assistant, error) {
	if m == nil || e == nil || g == nil {
		return nil, errors.New("mailgraph: model, embedder and graph are required")
	}

	opts := Options{
		MaxSteps: agent.DefaultMaxSteps,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sessions == nil {
		opts.Sessions = session.NewInMemoryStore()
	}
	if opts.Evaluator == nil {
		opts.Evaluator = evaluation.NewLLMEvaluator(m)
	}

	queries := cypher.NewService(m, g, func(o *cypher.Options) { o.Logger = opts.Logger })
	composer := answer.NewComposer(m, func(o *answer.Options) { o.Logger = opts.Logger })
	search := retriever.NewRetriever(e, g, func(o *retriever.Options) { o.Logger = opts.Logger })

	structured := tool.NewStructuredQuery(queries, composer)
	semantic := tool.NewSemanticSearch(search, m, func(o *tool.SemanticSearchOptions) { o.Logger = opts.Logger })
	chat := tool.NewGenericChat(m)

	loop := agent.NewLoop(m, []tool.Tool{structured, semantic, chat}, opts.Sessions, func(o *agent.Options) {
		o.MaxSteps = opts.MaxSteps
		o.Logger = opts.Logger
	})

	return &Assistant{
		cypher:   queries,
		composer: composer,
		semantic: semantic,
		loop:     loop,
		eval:     evaluation.NewService(opts.Evaluator),
		logger:   opts.Logger,
	}, nil
}

// Ask answers one question within the given session.
//
// Pipeline:
//  1. Translate the question into a structured graph query and run it.
//  2. Compose a narrative context from the records, or fall back to
//     semantic search when the structured query yields nothing.
//  3. Drive the bounded reasoning loop over that context and the session's
//     conversation history, persisting the exchanged turns.
//  4. Score the answer against the retrieved context.
//
// An evaluation failure does not discard the answer: the returned Result is
// still populated alongside the wrapped evaluation error, and callers decide
// whether to surface or ignore the missing score.
func (a *Assistant) Ask(ctx context.Context, question, sessionID string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("mailgraph: empty question")
	}
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}

	retrievedContext, err := a.buildContext(ctx, question)
	if err != nil {
		return nil, err
	}

	finalAnswer, trace, err := a.loop.Run(ctx, question, retrievedContext, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reasoning loop: %w", err)
	}

	result := &Result{Answer: finalAnswer, Context: retrievedContext, Trace: trace}

	accuracy, err := a.eval.Score(ctx, question, finalAnswer, retrievedContext)
	if err != nil {
		a.logger.Warn("evaluation stage failed", "session_id", sessionID, "error", err)
		return result, fmt.Errorf("evaluation: %w", err)
	}
	result.Accuracy = accuracy

	a.logger.Info("question answered", "session_id", sessionID, "steps", trace.Len(), "accuracy", accuracy)
	return result, nil
}

// buildContext produces the context string the reasoning loop consumes:
// composed from structured query records when the query hits, otherwise from
// the semantic search capability. A full miss yields an empty context, which
// is a legitimate state (the loop falls back to generic chat).
func (a *Assistant) buildContext(ctx context.Context, question string) (string, error) {
	records, err := a.cypher.TranslateAndRun(ctx, question)
	if err != nil {
		return "", fmt.Errorf("structured query: %w", err)
	}

	if !records.Empty() {
		composed, err := a.composer.Compose(ctx, question, records)
		if err != nil {
			return "", fmt.Errorf("compose context: %w", err)
		}
		return composed, nil
	}

	a.logger.Debug("structured query missed, falling back to semantic search")
	fallback, err := a.semantic.Call(ctx, question)
	if err != nil {
		return "", fmt.Errorf("semantic fallback: %w", err)
	}
	return fallback, nil
}
