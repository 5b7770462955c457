// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const contentType = "application/json;charset=utf-8"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// buildMessages returns the system message, one user message per history
// entry, then the prompt.
func buildMessages(system, prompt string, history []string) []chatMessage {
	msgs := make([]chatMessage, 0, len(history)+2)
	msgs = append(msgs, chatMessage{Role: "system", Content: system})
	for _, h := range history {
		msgs = append(msgs, chatMessage{Role: "user", Content: h})
	}
	return append(msgs, chatMessage{Role: "user", Content: prompt})
}

// chatURL joins base and the chat completions path.
func chatURL(base string) string {
	return strings.TrimRight(base, "/") + "/chat/completions"
}

// postChat POSTs body as JSON to url and returns the raw body of a 200 reply.
// Anything else comes back as a *TransportError.
func postChat(ctx context.Context, client *http.Client, provider, model, url, apiKey string, body any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("%s: encoding request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, &TransportError{Provider: provider, Model: model, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-Id", reqID)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	start := time.Now()
	slog.Debug("sending chat request", "provider", provider, "model", model, "url", url, "request_id", reqID)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: provider, Model: model, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: provider, Model: model, StatusCode: resp.StatusCode, Err: err}
	}

	slog.Debug("chat response",
		"provider", provider,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"took", time.Since(start),
		"request_id", reqID,
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Provider:   provider,
			Model:      model,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}
	return raw, nil
}

// parseCompletion reduces a chat completion envelope to a Response. When
// wantTools is set and the first choice carries tool calls, those are
// rendered into ToolCalls.
func parseCompletion(provider, model string, raw []byte, wantTools bool) (*Response, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &TransportError{Provider: provider, Model: model, StatusCode: http.StatusOK, Body: string(raw), Err: errMalformed}
	}
	env := gjson.ParseBytes(raw)
	choice := env.Get("choices.0")
	if !choice.Exists() {
		return nil, &TransportError{Provider: provider, Model: model, StatusCode: http.StatusOK, Body: string(raw), Err: errNoChoices}
	}

	resp := &Response{
		Content: choice.Get("message.content").String(),
		Model:   model,
		Usage: Usage{
			InputTokens:  int(env.Get("usage.prompt_tokens").Int()),
			OutputTokens: int(env.Get("usage.completion_tokens").Int()),
		},
	}
	if m := env.Get("model").String(); m != "" {
		resp.Model = m
	}

	if wantTools {
		for i, tc := range choice.Get("message.tool_calls").Array() {
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				Index: i + 1,
				Call:  renderToolCall(tc.Get("function.name").String(), tc.Get("function.arguments").String()),
			})
		}
	}
	return resp, nil
}

// renderToolCall formats a function call as name(k1=v1, k2=v2), keeping the
// argument order the model produced. String values are printed bare; other
// JSON values keep their literal form.
func renderToolCall(name, arguments string) string {
	var parts []string
	gjson.Parse(arguments).ForEach(func(k, v gjson.Result) bool {
		val := v.Raw
		if v.Type == gjson.String {
			val = v.String()
		}
		parts = append(parts, k.String()+"="+val)
		return true
	})
	return name + "(" + strings.Join(parts, ", ") + ")"
}
