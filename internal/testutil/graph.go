package testutil

import (
	"context"
	"sync"

	"github.com/mailgraph/mailgraph/core"
)

// Call records one statement executed against the fake graph.
type Call struct {
	Query  string
	Params map[string]any
	Write  bool
}

// response pairs a canned result with an optional error.
type response struct {
	records core.RecordSet
	err     error
}

// FakeGraph is a scripted core.GraphRunner. Responses are served FIFO; once
// the script is exhausted every call returns an empty RecordSet. All executed
// statements are recorded for assertions.
type FakeGraph struct {
	mu    sync.Mutex
	queue []response
	calls []Call
}

// NewFakeGraph constructs an empty fake.
func NewFakeGraph() *FakeGraph { return &FakeGraph{} }

// EnqueueRecords scripts a successful result.
func (f *FakeGraph) EnqueueRecords(records core.RecordSet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, response{records: records})
}

// EnqueueError scripts a failing call.
func (f *FakeGraph) EnqueueError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, response{err: err})
}

// Calls returns a copy of all statements executed so far.
func (f *FakeGraph) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// Run implements core.GraphRunner.
func (f *FakeGraph) Run(ctx context.Context, query string, params map[string]any) (core.RecordSet, error) {
	return f.next(ctx, query, params, false)
}

// Write implements core.GraphRunner.
func (f *FakeGraph) Write(ctx context.Context, query string, params map[string]any) (core.RecordSet, error) {
	return f.next(ctx, query, params, true)
}

func (f *FakeGraph) next(ctx context.Context, query string, params map[string]any, write bool) (core.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Query: query, Params: params, Write: write})
	if len(f.queue) == 0 {
		return core.RecordSet{}, nil
	}
	resp := f.queue[0]
	f.queue = f.queue[1:]
	return resp.records, resp.err
}
