// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package redact

import (
	"os"
	"testing"
)

func TestString_RedactsKnownEnvVars(t *testing.T) {
	const secret = "sk-TESTSECRETVALUE1234567890" //nolint:gosec // fake test credential
	t.Setenv("DASHSCOPE_API_KEY", secret)
	resetCache()

	input := "error: auth failed with key sk-TESTSECRETVALUE1234567890 for qwen"
	got := String(input)

	if got == input {
		t.Error("expected secret to be redacted, but string was unchanged")
	}
	if expected := "error: auth failed with key [REDACTED] for qwen"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestString_NoSecretSetIsNoop(t *testing.T) {
	os.Unsetenv("ARK_API_KEY") //nolint:errcheck // test cleanup
	resetCache()

	input := "some normal error message"
	got := String(input)

	if got != input {
		t.Errorf("expected no change, got %q", got)
	}
}

func TestString_ShortValuesIgnored(t *testing.T) {
	// Values under 4 chars could cause false-positive redaction.
	t.Setenv("ARK_API_KEY", "abc")
	resetCache()

	input := "abc is in the string abc"
	got := String(input)

	if got != input {
		t.Errorf("expected no redaction for short values, got %q", got)
	}
}

func TestString_MultipleSecrets(t *testing.T) {
	t.Setenv("ARK_API_KEY", "test-token-aaaa")
	t.Setenv("ANTHROPIC_API_KEY", "test-token-bbbb")
	resetCache()

	input := "tokens: test-token-aaaa and test-token-bbbb"
	got := String(input)

	expected := "tokens: [REDACTED] and [REDACTED]"
	if got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestRegister(t *testing.T) {
	resetCache()
	t.Cleanup(resetCache)

	Register("cfg-file-key-9876")
	Register("cfg-file-key-9876")
	Register("xy")

	got := String("POST failed: Bearer cfg-file-key-9876; xy")
	if expected := "POST failed: Bearer [REDACTED]; xy"; got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
	if len(registered) != 1 {
		t.Errorf("expected one registered secret, got %d", len(registered))
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"short":               "[REDACTED]",
		"sk-0123456789abcdef": "********cdef",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}
