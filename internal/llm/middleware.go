// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"log/slog"
	"net/http"
	"time"

	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaioption "github.com/openai/openai-go/option"
)

// logCall logs method, URL, status and latency of an SDK request at DEBUG.
func logCall(provider string, req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	start := time.Now()
	resp, err := next(req)

	var status int
	if resp != nil {
		status = resp.StatusCode
	}
	slog.Debug("sdk request",
		"provider", provider,
		"method", req.Method,
		"url", req.URL.String(),
		"status", status,
		"took", time.Since(start),
		"err", err,
	)
	return resp, err
}

func openaiMiddleware(provider string) openaioption.Middleware {
	return func(req *http.Request, next openaioption.MiddlewareNext) (*http.Response, error) {
		return logCall(provider, req, next)
	}
}

func anthropicMiddleware(provider string) anthropicoption.Middleware {
	return func(req *http.Request, next anthropicoption.MiddlewareNext) (*http.Response, error) {
		return logCall(provider, req, next)
	}
}
