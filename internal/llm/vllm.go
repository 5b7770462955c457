// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/davetashner/chatcall/internal/kwargs"
)

// Self-hosted vllm defaults.
const (
	DefaultVLLMHost  = "localhost"
	DefaultVLLMPort  = 8000
	DefaultVLLMModel = "Qwen3-8B-SHOP"

	vllmMaxTokens = 20000
	vllmTopK      = 20
	vllmTopP      = 0.8
)

var vllmStop = []string{"<|im_end|>", "<|im_start|>"}

// VLLMOptions lists the keyword parameters the vllm family accepts.
type VLLMOptions struct {
	// Version is the served model name.
	Version string `mapstructure:"version"`

	// MultiTurn enables MultiTurnList; each entry becomes a user message
	// ahead of the prompt.
	MultiTurn     bool     `mapstructure:"multi_turn"`
	MultiTurnList []string `mapstructure:"multi_turn_list"`

	// Port selects which local server instance to call.
	Port int `mapstructure:"port"`
}

type vllmRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	N           int           `json:"n"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopK        int           `json:"top_k"`
	TopP        float64       `json:"top_p"`
	Stop        []string      `json:"stop"`
}

// VLLMProvider calls a self-hosted vllm OpenAI-compatible server.
type VLLMProvider struct {
	endpoint Endpoint
}

// Compile-time check that VLLMProvider satisfies the Provider interface.
var _ Provider = (*VLLMProvider)(nil)

// NewVLLMProvider returns the vllm caller. Host, Port and Model fall back
// to DefaultVLLMHost, DefaultVLLMPort and DefaultVLLMModel.
func NewVLLMProvider(ep Endpoint) *VLLMProvider {
	if ep.Host == "" {
		ep.Host = DefaultVLLMHost
	}
	if ep.Port == 0 {
		ep.Port = DefaultVLLMPort
	}
	if ep.Model == "" {
		ep.Model = DefaultVLLMModel
	}
	return &VLLMProvider{endpoint: ep}
}

// Name returns the model family name.
func (p *VLLMProvider) Name() string { return ModelVLLM }

// Complete sends one non-streaming request to the server on the bound port.
func (p *VLLMProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	opts := VLLMOptions{Version: p.endpoint.Model, Port: p.endpoint.Port}
	if err := kwargs.Bind(&opts, req.Params); err != nil {
		return nil, err
	}
	if opts.Port <= 0 || opts.Port > 65535 {
		return nil, fmt.Errorf("%s: invalid port %d", ModelVLLM, opts.Port)
	}

	var history []string
	if opts.MultiTurn && opts.MultiTurnList != nil {
		history = opts.MultiTurnList
	}

	body := vllmRequest{
		Model:       opts.Version,
		Messages:    buildMessages(req.SystemPrompt, req.Prompt, history),
		Stream:      false,
		N:           1,
		MaxTokens:   vllmMaxTokens,
		Temperature: req.Temperature,
		TopK:        vllmTopK,
		TopP:        vllmTopP,
		Stop:        vllmStop,
	}

	url := "http://" + net.JoinHostPort(p.endpoint.Host, strconv.Itoa(opts.Port)) + "/v1/chat/completions"
	raw, err := postChat(ctx, p.endpoint.Client(), ModelVLLM, opts.Version, url, p.endpoint.APIKey, body)
	if err != nil {
		return nil, err
	}
	resp, err := parseCompletion(ModelVLLM, opts.Version, raw, false)
	if err != nil {
		return nil, err
	}
	return stamp(resp, start, req.RecordTime), nil
}
