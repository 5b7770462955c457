// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"strings"
	"time"

	"github.com/davetashner/chatcall/internal/kwargs"
)

// Volcengine Ark defaults.
const (
	DefaultArkBaseURL = "https://ark.cn-beijing.volces.com/api/v3"

	DefaultDeepSeekV3Model = "deepseek-v3-241226"
	DefaultDeepSeekR1Model = "deepseek-r1-250120"
	DefaultDoubaoModel     = "doubao-pro-32k-241215"
)

// ArkOptions lists the keyword parameters the Ark-hosted families accept.
// They take none beyond the common request fields.
type ArkOptions struct{}

type arkRequest struct {
	Model         string        `json:"model"`
	Stream        bool          `json:"stream"`
	Messages      []chatMessage `json:"messages"`
	StreamOptions streamOptions `json:"stream_options"`
	Temperature   float64       `json:"temperature"`
}

// ArkProvider calls a model hosted on Volcengine Ark's chat completions API.
// DeepSeek-V3, DeepSeek-R1 and DouBao-1.5Pro-32K all go through it.
type ArkProvider struct {
	name     string
	endpoint Endpoint
	trim     bool
}

// Compile-time check that ArkProvider satisfies the Provider interface.
var _ Provider = (*ArkProvider)(nil)

func newArkProvider(name, defaultModel string, trim bool, ep Endpoint) *ArkProvider {
	if ep.BaseURL == "" {
		ep.BaseURL = DefaultArkBaseURL
	}
	if ep.Model == "" {
		ep.Model = defaultModel
	}
	return &ArkProvider{name: name, endpoint: ep, trim: trim}
}

// NewDeepSeekV3Provider returns the DeepSeek-V3 caller.
func NewDeepSeekV3Provider(ep Endpoint) *ArkProvider {
	return newArkProvider(ModelDeepSeekV3, DefaultDeepSeekV3Model, false, ep)
}

// NewDeepSeekR1Provider returns the DeepSeek-R1 caller. R1 answers often
// open with blank lines, so its content is whitespace-trimmed.
func NewDeepSeekR1Provider(ep Endpoint) *ArkProvider {
	return newArkProvider(ModelDeepSeekR1, DefaultDeepSeekR1Model, true, ep)
}

// NewDoubaoProvider returns the DouBao-1.5Pro-32K caller; its content is
// whitespace-trimmed too.
func NewDoubaoProvider(ep Endpoint) *ArkProvider {
	return newArkProvider(ModelDoubao, DefaultDoubaoModel, true, ep)
}

// Name returns the model family name.
func (p *ArkProvider) Name() string { return p.name }

// Complete sends one non-streaming chat completion request.
func (p *ArkProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	var opts ArkOptions
	if err := kwargs.Bind(&opts, req.Params); err != nil {
		return nil, err
	}

	body := arkRequest{
		Model:         p.endpoint.Model,
		Stream:        false,
		Messages:      buildMessages(req.SystemPrompt, req.Prompt, nil),
		StreamOptions: streamOptions{IncludeUsage: true},
		Temperature:   req.Temperature,
	}

	raw, err := postChat(ctx, p.endpoint.Client(), p.name, p.endpoint.Model, chatURL(p.endpoint.BaseURL), p.endpoint.APIKey, body)
	if err != nil {
		return nil, err
	}
	resp, err := parseCompletion(p.name, p.endpoint.Model, raw, false)
	if err != nil {
		return nil, err
	}
	if p.trim {
		resp.Content = strings.TrimSpace(resp.Content)
	}
	return stamp(resp, start, req.RecordTime), nil
}
