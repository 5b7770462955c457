// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single call, streaming included.
const DefaultTimeout = 3000 * time.Second

// Endpoint holds everything a provider needs to reach its backend. Values
// come from configuration; nothing is hardcoded in the providers.
type Endpoint struct {
	// BaseURL is the API root, e.g. https://ark.cn-beijing.volces.com/api/v3.
	BaseURL string

	// APIKey is sent as a bearer token when non-empty.
	APIKey string

	// Model is the provider's default model or version string.
	Model string

	// Host and Port locate a self-hosted server (vllm only).
	Host string
	Port int

	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// HTTPClient overrides the client built from Timeout and
	// InsecureSkipVerify.
	HTTPClient *http.Client
}

// Client returns the HTTP client calls to this endpoint should use.
func (e Endpoint) Client() *http.Client {
	if e.HTTPClient != nil {
		return e.HTTPClient
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if e.InsecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // configured per endpoint
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}
