// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"sync"
	"time"
)

// MockName is the family name a MockProvider reports by default.
const MockName = "mock"

// MockResponse defines a canned response for the mock provider.
type MockResponse struct {
	Content   string
	ToolCalls []ToolCall
	Reasoning string
	Err       error
}

// MockProvider is a test double that returns pre-configured responses in
// sequence. After all responses are exhausted, it keeps returning the last one.
// It records every request for later assertion.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	responses []MockResponse
	calls     []Request
	idx       int
}

// Compile-time check that MockProvider satisfies the Provider interface.
var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock that returns the given responses in order.
// If no responses are provided, Complete returns an empty Response.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{
		name:      MockName,
		responses: responses,
	}
}

// Named sets the family name the mock reports and returns the mock.
func (m *MockProvider) Named(name string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	return m
}

// Name returns the configured family name.
func (m *MockProvider) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

// Complete returns the next canned response and records the request.
// It respects context cancellation.
func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if len(m.responses) == 0 {
		return stamp(&Response{Content: "", Model: MockName}, start, req.RecordTime), nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}

	if r.Err != nil {
		return nil, r.Err
	}

	return stamp(&Response{
		Content:   r.Content,
		ToolCalls: r.ToolCalls,
		Reasoning: r.Reasoning,
		Model:     MockName,
		Usage:     Usage{InputTokens: 10, OutputTokens: 5},
	}, start, req.RecordTime), nil
}

// Calls returns a copy of all requests received by this mock.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears call history and resets the response index to zero.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = nil
	m.idx = 0
}
