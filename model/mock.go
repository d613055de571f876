package model

import (
	"context"
	"fmt"
	"sync"
)

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are served from a FIFO script first, then from canned
// prompt-keyed completions, then from a generic echo.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	queue     []string
	responses map[string]string
	requests  []Request
	err       error
}

// NewMockModel constructs an empty MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for the content of
// the last message in a request.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// Enqueue appends scripted completions returned in order regardless of input.
func (m *MockModel) Enqueue(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// Fail makes every subsequent Complete call return err.
func (m *MockModel) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns a copy of all requests received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	reqs := make([]Request, len(m.requests))
	copy(reqs, m.requests)
	return reqs
}

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if len(m.queue) > 0 {
		resp := m.queue[0]
		m.queue = m.queue[1:]
		return resp, nil
	}
	var last string
	if len(req.Messages) > 0 {
		last = req.Messages[len(req.Messages)-1].Content
	}
	if resp, ok := m.responses[last]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", last), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
