// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip sensitive values from strings
// before they appear in output, logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// Placeholder replaces every secret found in a string.
const Placeholder = "[REDACTED]"

// minSecretLen guards against false positives from very short values.
const minSecretLen = 4

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output. Add new entries here as providers gain credentials.
var sensitiveEnvVars = []string{
	"DASHSCOPE_API_KEY",
	"ARK_API_KEY",
	"ANTHROPIC_API_KEY",
	"OPENAI_API_KEY",
	"CHATCALL_API_KEY",
}

var (
	cachedSecrets []string
	cacheOnce     sync.Once

	mu         sync.RWMutex
	registered []string
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if len(val) >= minSecretLen {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// resetCache resets the cached and registered secrets. Used by tests that
// change env vars between calls.
func resetCache() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}

	mu.Lock()
	registered = nil
	mu.Unlock()
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// Register adds a secret that did not come from a well-known environment
// variable, such as an api_key read from a config file or a custom
// api_key_env. Values shorter than four characters are ignored.
func Register(secret string) {
	if len(secret) < minSecretLen {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	for _, s := range registered {
		if s == secret {
			return
		}
	}
	registered = append(registered, secret)
}

// String replaces any occurrence of a known secret with "[REDACTED]".
// Returns the original string if no secrets are found. Environment values
// are cached on first call.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}

	mu.RLock()
	defer mu.RUnlock()
	for _, secret := range registered {
		s = strings.ReplaceAll(s, secret, Placeholder)
	}
	return s
}

// Mask hides all but the last four characters of a credential, for display
// in places where showing that a key is set is useful.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return Placeholder
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}
