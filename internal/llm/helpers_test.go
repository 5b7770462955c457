// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm_test

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// captured records what a fake backend received.
type captured struct {
	mu     sync.Mutex
	body   map[string]any
	raw    string
	header http.Header
	path   string
	calls  int
}

func (c *captured) Body() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

func (c *captured) Raw() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}

func (c *captured) Header() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.header
}

func (c *captured) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

func (c *captured) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// newChatServer returns a server that answers every request with status and
// body, recording the request.
func newChatServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)

		c.mu.Lock()
		c.body = decoded
		c.raw = string(raw)
		c.header = r.Header.Clone()
		c.path = r.URL.Path
		c.calls++
		c.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

// completion returns a minimal single-choice chat completion envelope.
func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
		"usage": map[string]any{"prompt_tokens": 11, "completion_tokens": 7, "total_tokens": 18},
	})
	return string(b)
}

// serverPort returns the TCP port srv listens on.
func serverPort(t *testing.T, srv *httptest.Server) int {
	t.Helper()
	addr, ok := srv.Listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	return addr.Port
}
