package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mailgraph/mailgraph/core"
	"github.com/mailgraph/mailgraph/logging"
	"github.com/mailgraph/mailgraph/model"
	"github.com/mailgraph/mailgraph/tool"
)

// DefaultMaxSteps bounds capability invocations (and parse retries) per
// question.
const DefaultMaxSteps = 5

// DefaultFallback is returned when the bound is exhausted and no observation
// was collected.
const DefaultFallback = "I wasn't able to determine an answer from the email database for this question."

// Options configure the reasoning loop.
type Options struct {
	// MaxSteps bounds capability invocations per question. Parse failures
	// consume attempts from the same bound so the loop always terminates.
	MaxSteps int
	// Fallback is the answer used on bound exhaustion with no observation.
	Fallback string
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Loop drives the bounded Thought/Action/Observation cycle over the declared
// capabilities. It holds no per-request state and is safe for concurrent use.
type Loop struct {
	model    model.Model
	tools    []tool.Tool
	byName   map[string]tool.Tool
	sessions core.SessionStore
	opts     Options
}

// NewLoop constructs a reasoning loop over the given model, capability set
// and session store.
func NewLoop(m model.Model, tools []tool.Tool, sessions core.SessionStore, optFns ...func(o *Options)) *Loop {
	opts := Options{
		MaxSteps: DefaultMaxSteps,
		Fallback: DefaultFallback,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	byName := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		byName[t.Name()] = t
	}
	return &Loop{model: m, tools: tools, byName: byName, sessions: sessions, opts: opts}
}

// Run answers one question given the retrieved context, consulting and then
// extending the session's conversation history. It returns the final answer
// and the trace of capability invocations that produced it.
//
// Termination is unconditional: the loop exits with a final answer, or after
// at most MaxSteps attempts with a best-effort answer (the last observation
// if any, the configured fallback otherwise). Model transport failures are
// the only errors that abort reasoning.
func (l *Loop) Run(ctx context.Context, question, retrievedContext, sessionID string) (string, *core.Trace, error) {
	if sessionID == "" {
		sessionID = core.DefaultSessionID
	}

	history, err := l.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("load history: %w", err)
	}

	ts := newTranscript(l.tools, retrievedContext, history, question)
	trace := core.NewTrace()

	for attempt := 0; attempt < l.opts.MaxSteps; attempt++ {
		prompt, err := ts.prompt()
		if err != nil {
			return "", trace, fmt.Errorf("render transcript: %w", err)
		}

		out, err := l.model.Complete(ctx, model.UserRequest("", prompt))
		if err != nil {
			return "", trace, fmt.Errorf("reasoning step: %w", err)
		}

		dec, err := parseDecision(out)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				l.opts.Logger.Warn("malformed reasoning output, retrying", "attempt", attempt+1, "output", truncate(perr.Output, 200))
				ts.appendParseError(out)
				continue
			}
			return "", trace, err
		}

		if dec.Final {
			trace.FinalAnswer = dec.Answer
			if err := l.commit(ctx, sessionID, question, dec.Answer); err != nil {
				return "", trace, err
			}
			return dec.Answer, trace, nil
		}

		observation := l.invoke(ctx, dec)
		trace.Add(core.Step{Tool: dec.Action, Input: dec.Input, Observation: observation})
		ts.appendStep(dec.Action, dec.Input, observation)
	}

	// Bound exhausted without a terminal answer: surface the last
	// observation as a best-effort answer, or the fixed fallback.
	answer := trace.LastObservation()
	if strings.TrimSpace(answer) == "" {
		answer = l.opts.Fallback
	}
	l.opts.Logger.Warn("iteration bound reached without final answer", "session_id", sessionID, "steps", trace.Len())

	trace.FinalAnswer = answer
	if err := l.commit(ctx, sessionID, question, answer); err != nil {
		return "", trace, err
	}
	return answer, trace, nil
}

// invoke runs the named capability. Unknown names and capability failures
// become observations so the model can route around them; empty outputs are
// reported as misses.
func (l *Loop) invoke(ctx context.Context, dec decision) string {
	t, ok := l.byName[dec.Action]
	if !ok {
		names := make([]string, 0, len(l.tools))
		for _, tl := range l.tools {
			names = append(names, tl.Name())
		}
		return fmt.Sprintf("Unknown tool %q. Available tools: %s.", dec.Action, strings.Join(names, ", "))
	}

	out, err := t.Call(ctx, dec.Input)
	if err != nil {
		l.opts.Logger.Warn("capability failed", "tool", dec.Action, "error", err)
		return fmt.Sprintf("The %s tool failed: %v", dec.Action, err)
	}
	if strings.TrimSpace(out) == "" {
		return fmt.Sprintf("The %s tool returned no result.", dec.Action)
	}
	return out
}

// commit appends the user turn and the assistant's final answer to the
// session after the loop terminates.
func (l *Loop) commit(ctx context.Context, sessionID, question, answer string) error {
	if err := l.sessions.Append(ctx, sessionID, core.NewTurn(sessionID, core.RoleUser, question)); err != nil {
		return fmt.Errorf("append user turn: %w", err)
	}
	if err := l.sessions.Append(ctx, sessionID, core.NewTurn(sessionID, core.RoleAssistant, answer)); err != nil {
		return fmt.Errorf("append assistant turn: %w", err)
	}
	return nil
}
