// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderToolCall(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args string
		want string
	}{
		{"integer", "foo", `{"a": 1}`, "foo(a=1)"},
		{"keeps model order", "f", `{"z": "last", "a": "first"}`, "f(z=last, a=first)"},
		{"literals", "g", `{"ok": true, "none": null, "list": [1, 2]}`, "g(ok=true, none=null, list=[1, 2])"},
		{"no args", "h", `{}`, "h()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderToolCall(tt.fn, tt.args))
		})
	}
}

func TestBuildMessages(t *testing.T) {
	msgs := buildMessages("sys", "now", []string{"a", "b"})
	assert.Equal(t, []chatMessage{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "a"},
		{Role: "user", Content: "b"},
		{Role: "user", Content: "now"},
	}, msgs)

	assert.Len(t, buildMessages("", "p", nil), 2)
}

func TestChatURL(t *testing.T) {
	assert.Equal(t, "https://x/api/v3/chat/completions", chatURL("https://x/api/v3"))
	assert.Equal(t, "https://x/api/v3/chat/completions", chatURL("https://x/api/v3/"))
}
