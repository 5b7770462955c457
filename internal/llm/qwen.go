// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"

	"github.com/davetashner/chatcall/internal/kwargs"
)

// DashScope compatible-mode defaults.
const (
	DefaultQwenBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultQwenVersion = "qwen2.5-32b-instruct"

	// qwenStreamMarker switches a version into streaming mode.
	qwenStreamMarker = "qwen3"
)

// QwenOptions lists the keyword parameters the Qwen family accepts. Any
// other keyword is merged into the request body as-is.
type QwenOptions struct {
	// Version is the DashScope model name.
	Version string `mapstructure:"version"`

	// Tools, when set, are sent with tool_choice=required and the answer
	// becomes a tool-call list.
	Tools []Tool `mapstructure:"tools"`

	// EnableThinking turns on reasoning output for streaming versions.
	EnableThinking bool `mapstructure:"enable_thinking"`

	Extra map[string]any `mapstructure:",remain"`
}

// QwenProvider calls Qwen models through DashScope's OpenAI-compatible API
// using the OpenAI SDK. Versions containing "qwen3" are streamed and the
// chunks buffered; reasoning and answer text are collected separately.
type QwenProvider struct {
	client   openai.Client
	endpoint Endpoint
}

// Compile-time check that QwenProvider satisfies the Provider interface.
var _ Provider = (*QwenProvider)(nil)

// NewQwenProvider returns the Qwen-Instruct-API caller.
func NewQwenProvider(ep Endpoint) *QwenProvider {
	if ep.BaseURL == "" {
		ep.BaseURL = DefaultQwenBaseURL
	}
	if ep.Model == "" {
		ep.Model = DefaultQwenVersion
	}

	opts := []option.RequestOption{
		// The SDK resolves paths relative to the base, so it must end in "/".
		option.WithBaseURL(strings.TrimRight(ep.BaseURL, "/") + "/"),
		option.WithHTTPClient(ep.Client()),
		option.WithMaxRetries(0),
		option.WithMiddleware(openaiMiddleware(ModelQwen)),
	}
	// openai.NewClient applies the OPENAI_* environment first. None of it
	// may reach DashScope, so the key and account headers are replaced here.
	opts = append(opts,
		option.WithAPIKey(ep.APIKey),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
	)
	if ep.APIKey == "" {
		opts = append(opts, option.WithHeaderDel("Authorization"))
	}

	return &QwenProvider{
		client:   openai.NewClient(opts...),
		endpoint: ep,
	}
}

// Name returns the model family name.
func (p *QwenProvider) Name() string { return ModelQwen }

// Complete sends one chat completion, streamed for qwen3 versions.
func (p *QwenProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	opts := QwenOptions{Version: p.endpoint.Model}
	if err := kwargs.Bind(&opts, req.Params); err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(opts.Version),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(req.Temperature),
	}
	wantTools := len(opts.Tools) > 0
	if wantTools {
		params.Tools = toOpenAITools(opts.Tools)
		params.ToolChoice = openai.ChatCompletionToolChoiceOptionUnionParam{
			OfAuto: openai.String("required"),
		}
	}

	var reqOpts []option.RequestOption
	for _, k := range kwargs.Keys(opts.Extra) {
		reqOpts = append(reqOpts, option.WithJSONSet(k, opts.Extra[k]))
	}

	var (
		resp *Response
		err  error
	)
	if strings.Contains(opts.Version, qwenStreamMarker) {
		if opts.EnableThinking {
			reqOpts = append(reqOpts, option.WithJSONSet("enable_thinking", true))
		}
		params.StreamOptions = openai.ChatCompletionStreamOptionsParam{
			IncludeUsage: openai.Bool(true),
		}
		resp, err = p.stream(ctx, opts.Version, params, reqOpts, wantTools)
	} else {
		resp, err = p.complete(ctx, opts.Version, params, reqOpts, wantTools)
	}
	if err != nil {
		return nil, err
	}
	return stamp(resp, start, req.RecordTime), nil
}

func (p *QwenProvider) complete(ctx context.Context, model string, params openai.ChatCompletionNewParams, reqOpts []option.RequestOption, wantTools bool) (*Response, error) {
	completion, err := p.client.Chat.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, sdkError(ModelQwen, model, err)
	}
	if len(completion.Choices) == 0 {
		return nil, &TransportError{Provider: ModelQwen, Model: model, StatusCode: http.StatusOK, Body: completion.RawJSON(), Err: errNoChoices}
	}

	msg := completion.Choices[0].Message
	resp := &Response{
		Content: msg.Content,
		Model:   firstNonEmpty(completion.Model, model),
		Usage: Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
	}
	if wantTools {
		for i, tc := range msg.ToolCalls {
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				Index: i + 1,
				Call:  renderToolCall(tc.Function.Name, tc.Function.Arguments),
			})
		}
	}
	return resp, nil
}

func (p *QwenProvider) stream(ctx context.Context, model string, params openai.ChatCompletionNewParams, reqOpts []option.RequestOption, wantTools bool) (*Response, error) {
	stream := p.client.Chat.Completions.NewStreaming(ctx, params, reqOpts...)
	defer stream.Close() //nolint:errcheck // drained below

	var (
		acc       openai.ChatCompletionAccumulator
		reasoning strings.Builder
		answer    strings.Builder
	)
	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta
		// reasoning_content is a DashScope extension the SDK does not model.
		if rc := gjson.Get(delta.RawJSON(), "reasoning_content"); rc.Exists() && rc.Type != gjson.Null {
			reasoning.WriteString(rc.String())
			continue
		}
		answer.WriteString(delta.Content)
	}
	if err := stream.Err(); err != nil {
		return nil, sdkError(ModelQwen, model, err)
	}

	resp := &Response{
		Content:   answer.String(),
		Reasoning: reasoning.String(),
		Model:     firstNonEmpty(acc.Model, model),
		Usage: Usage{
			InputTokens:  int(acc.Usage.PromptTokens),
			OutputTokens: int(acc.Usage.CompletionTokens),
		},
	}
	if wantTools && len(acc.Choices) > 0 {
		for i, tc := range acc.Choices[0].Message.ToolCalls {
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{
				Index: i + 1,
				Call:  renderToolCall(tc.Function.Name, tc.Function.Arguments),
			})
		}
	}
	return resp, nil
}

func toOpenAITools(tools []Tool) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, t := range tools {
		fn := openai.FunctionDefinitionParam{
			Name:       t.Function.Name,
			Parameters: openai.FunctionParameters(t.Function.Parameters),
		}
		if t.Function.Description != "" {
			fn.Description = openai.String(t.Function.Description)
		}
		out = append(out, openai.ChatCompletionToolParam{Function: fn})
	}
	return out
}

// sdkError converts an SDK failure into a TransportError, recovering the
// status code and raw body when the server answered.
func sdkError(provider, model string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &TransportError{
			Provider:   provider,
			Model:      model,
			StatusCode: apiErr.StatusCode,
			Body:       responseBody(apiErr.Response, apiErr.RawJSON()),
			Err:        err,
		}
	}
	return &TransportError{Provider: provider, Model: model, Err: err}
}

// responseBody reads the body the SDK re-buffers on error responses,
// falling back to the JSON it already parsed.
func responseBody(resp *http.Response, fallback string) string {
	if resp == nil || resp.Body == nil {
		return fallback
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil || len(b) == 0 {
		return fallback
	}
	return string(b)
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
