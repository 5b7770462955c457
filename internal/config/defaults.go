// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/davetashner/chatcall/internal/llm"
)

// DefaultModel is the model `ask` uses when neither flag nor config names one.
const DefaultModel = llm.ModelQwen

// Defaults returns the built-in configuration: the public endpoints of each
// hosted family, a local vllm server, and the conventional API key variables.
// It never carries credentials.
func Defaults() *Config {
	skip := true
	cfg := &Config{
		Timeout:            DefaultTimeout,
		InsecureSkipVerify: &skip,
		DefaultModel:       DefaultModel,
		Providers:          make(map[string]ProviderConfig),
	}
	for _, m := range llm.Models() {
		pc := ProviderConfig{APIKeyEnv: m.APIKeyEnv}
		switch m.Name {
		case llm.ModelQwen:
			pc.BaseURL = llm.DefaultQwenBaseURL
			pc.Model = llm.DefaultQwenVersion
		case llm.ModelDeepSeekV3:
			pc.BaseURL = llm.DefaultArkBaseURL
			pc.Model = llm.DefaultDeepSeekV3Model
		case llm.ModelDeepSeekR1:
			pc.BaseURL = llm.DefaultArkBaseURL
			pc.Model = llm.DefaultDeepSeekR1Model
		case llm.ModelDoubao:
			pc.BaseURL = llm.DefaultArkBaseURL
			pc.Model = llm.DefaultDoubaoModel
		case llm.ModelVLLM:
			pc.Host = llm.DefaultVLLMHost
			pc.Port = llm.DefaultVLLMPort
			pc.Model = llm.DefaultVLLMModel
		case llm.ModelClaude:
			pc.Model = llm.DefaultAnthropicModel
		}
		cfg.Providers[m.ConfigKey] = pc
	}
	return cfg
}
