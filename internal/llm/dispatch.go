// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/chatcall/internal/kwargs"
)

// Model names accepted by Dispatch, compared case-insensitively.
const (
	ModelDeepSeekV3 = "DeepSeek-V3"
	ModelQwen       = "Qwen-Instruct-API"
	ModelDeepSeekR1 = "DeepSeek-R1"
	ModelDoubao     = "DouBao-1.5Pro-32K"
	ModelVLLM       = "vllm"
	ModelClaude     = "Claude"
)

type family struct {
	name      string
	configKey string
	binds     bool
	options   any
	keyEnv    string
	build     func(Endpoint) (Provider, error)
}

var families = []family{
	{
		name: ModelDeepSeekV3, configKey: "deepseek-v3", options: ArkOptions{}, keyEnv: "ARK_API_KEY",
		build: func(ep Endpoint) (Provider, error) { return NewDeepSeekV3Provider(ep), nil },
	},
	{
		name: ModelQwen, configKey: "qwen", binds: true, options: QwenOptions{}, keyEnv: "DASHSCOPE_API_KEY",
		build: func(ep Endpoint) (Provider, error) { return NewQwenProvider(ep), nil },
	},
	{
		name: ModelDeepSeekR1, configKey: "deepseek-r1", options: ArkOptions{}, keyEnv: "ARK_API_KEY",
		build: func(ep Endpoint) (Provider, error) { return NewDeepSeekR1Provider(ep), nil },
	},
	{
		name: ModelDoubao, configKey: "doubao", options: ArkOptions{}, keyEnv: "ARK_API_KEY",
		build: func(ep Endpoint) (Provider, error) { return NewDoubaoProvider(ep), nil },
	},
	{
		name: ModelVLLM, configKey: "vllm", binds: true, options: VLLMOptions{},
		build: func(ep Endpoint) (Provider, error) { return NewVLLMProvider(ep), nil },
	},
	{
		name: ModelClaude, configKey: "claude", binds: true, options: AnthropicOptions{}, keyEnv: "ANTHROPIC_API_KEY",
		build: func(ep Endpoint) (Provider, error) { return newAnthropicFromEndpoint(ep) },
	},
}

// ModelInfo describes one dispatchable model family.
type ModelInfo struct {
	// Name is the canonical model name.
	Name string

	// ConfigKey is the key under providers: in the config file.
	ConfigKey string

	// BindsParams is true when dispatch-time parameters are pre-bound.
	BindsParams bool

	// Params lists the keyword parameters the family declares.
	Params kwargs.Spec

	// APIKeyEnv is the environment variable holding the family's API key,
	// empty when none is needed.
	APIKeyEnv string
}

// Models returns every dispatchable family in dispatch order.
func Models() []ModelInfo {
	out := make([]ModelInfo, 0, len(families))
	for _, f := range families {
		out = append(out, f.info())
	}
	return out
}

// Lookup resolves name case-insensitively.
func Lookup(name string) (ModelInfo, bool) {
	f, ok := lookup(name)
	if !ok {
		return ModelInfo{}, false
	}
	return f.info(), true
}

// ConfigKeys returns the provider keys a config file may use, sorted.
func ConfigKeys() []string {
	keys := make([]string, 0, len(families))
	for _, f := range families {
		keys = append(keys, f.configKey)
	}
	sort.Strings(keys)
	return keys
}

func (f family) info() ModelInfo {
	return ModelInfo{
		Name:        f.name,
		ConfigKey:   f.configKey,
		BindsParams: f.binds,
		Params:      kwargs.SpecOf(f.options),
		APIKeyEnv:   f.keyEnv,
	}
}

func lookup(name string) (family, bool) {
	for _, f := range families {
		if strings.EqualFold(f.name, name) {
			return f, true
		}
	}
	return family{}, false
}

// Dispatcher maps model names to callers built from configured endpoints.
type Dispatcher struct {
	mu        sync.Mutex
	endpoints map[string]Endpoint
	overrides map[string]Provider
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithProvider serves name from p instead of building a provider from its
// endpoint. Tests use it to substitute a MockProvider.
func WithProvider(name string, p Provider) DispatcherOption {
	return func(d *Dispatcher) {
		d.overrides[strings.ToLower(name)] = p
	}
}

// NewDispatcher returns a Dispatcher. endpoints is keyed by config key
// (see ConfigKeys); families without an entry use their built-in defaults.
func NewDispatcher(endpoints map[string]Endpoint, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		endpoints: make(map[string]Endpoint, len(endpoints)),
		overrides: make(map[string]Provider),
	}
	for k, ep := range endpoints {
		d.endpoints[k] = ep
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Provider returns the provider serving name.
func (d *Dispatcher) Provider(name string) (Provider, error) {
	f, ok := lookup(name)
	if !ok {
		return nil, &UnsupportedModelError{Name: name}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.overrides[strings.ToLower(f.name)]; ok {
		return p, nil
	}
	return f.build(d.endpoints[f.configKey])
}

// Dispatch returns a Caller for name. For families that bind parameters,
// params are applied to every call, with call-time Params taking
// precedence. Other families ignore params.
func (d *Dispatcher) Dispatch(name string, params map[string]any) (Caller, error) {
	f, ok := lookup(name)
	if !ok {
		slog.Debug("dispatch failed", "model", name)
		return nil, &UnsupportedModelError{Name: name}
	}
	p, err := d.Provider(f.name)
	if err != nil {
		return nil, err
	}

	if !f.binds {
		if len(params) > 0 {
			slog.Warn("ignoring bound parameters", "model", f.name, "names", kwargs.Keys(params))
		}
		return p.Complete, nil
	}

	bound := kwargs.Merge(params)
	return func(ctx context.Context, req Request) (*Response, error) {
		req.Params = kwargs.Merge(bound, req.Params)
		return p.Complete(ctx, req)
	}, nil
}

// Dispatch resolves name against the built-in endpoint defaults.
func Dispatch(name string, params map[string]any) (Caller, error) {
	return NewDispatcher(nil).Dispatch(name, params)
}
