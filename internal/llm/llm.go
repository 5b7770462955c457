// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

// Package llm wraps several chat-completion backends behind a single
// synchronous Provider interface, and dispatches model names to them.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Provider abstracts one chat-completion backend behind a single blocking call.
type Provider interface {
	// Name returns the model family served by this provider, e.g. "DeepSeek-V3".
	Name() string

	// Complete sends one request and returns the unwrapped answer.
	// Implementations must respect context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request describes a single completion request.
type Request struct {
	// Prompt is the user message to send.
	Prompt string

	// SystemPrompt sets the system message. An empty string is still sent.
	SystemPrompt string

	// Temperature controls randomness. Zero is sent as-is.
	Temperature float64

	// RecordTime asks the provider to measure the wall-clock duration of
	// the call and report it on the Response.
	RecordTime bool

	// Params carries provider-specific keyword parameters (model version,
	// tools, multi-turn history, thinking mode, port). Names a provider does
	// not declare are dropped with a warning.
	Params map[string]any
}

// Response holds the result of a completion call.
type Response struct {
	// Content is the answer text of the first choice.
	Content string

	// ToolCalls is set instead of Content being meaningful when the request
	// carried tool definitions and the model answered with tool calls.
	ToolCalls []ToolCall

	// Reasoning collects streamed thinking text, when the backend sends it.
	Reasoning string

	// Model is the model that served the request, as reported by the backend
	// or the requested model when the backend does not say.
	Model string

	// Usage reports token consumption, when the backend returns it.
	Usage Usage

	// Timed is true when the request asked for RecordTime; Elapsed is only
	// meaningful in that case.
	Timed   bool
	Elapsed time.Duration
}

// Seconds returns the recorded elapsed time in seconds and whether timing
// was recorded at all.
func (r *Response) Seconds() (float64, bool) {
	if r == nil || !r.Timed {
		return 0, false
	}
	return r.Elapsed.Seconds(), true
}

// HasToolCalls reports whether the response is a tool-call list.
func (r *Response) HasToolCalls() bool {
	return r != nil && len(r.ToolCalls) > 0
}

// Usage tracks input and output token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Tool is an OpenAI-style function tool definition.
type Tool struct {
	Type     string       `json:"type" mapstructure:"type"`
	Function ToolFunction `json:"function" mapstructure:"function"`
}

// ToolFunction describes the function a Tool exposes.
type ToolFunction struct {
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description,omitempty" mapstructure:"description"`
	Parameters  map[string]any `json:"parameters,omitempty" mapstructure:"parameters"`
}

// ToolCall is one rendered tool invocation suggested by the model.
type ToolCall struct {
	// Index is the 1-based position of the call in the model's answer.
	Index int

	// Call renders the invocation as name(k1=v1, k2=v2).
	Call string
}

func (c ToolCall) String() string {
	return fmt.Sprintf("%d. %s", c.Index, c.Call)
}

// Caller is a provider with any dispatch-time parameters already bound.
type Caller func(ctx context.Context, req Request) (*Response, error)

// stamp records the elapsed time since start on resp when asked to.
func stamp(resp *Response, start time.Time, record bool) *Response {
	if record {
		resp.Timed = true
		resp.Elapsed = time.Since(start)
	}
	return resp
}
