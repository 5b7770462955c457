// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

// Package config handles chatcall.yaml and chatcall.toml configuration files.
package config

// Config represents the contents of a chatcall config file.
type Config struct {
	// Timeout bounds every provider call, as a Go duration string.
	Timeout string `yaml:"timeout,omitempty" toml:"timeout,omitempty"`

	// InsecureSkipVerify disables TLS verification. Nil means the default
	// (disabled verification, matching the hosted endpoints' setup).
	InsecureSkipVerify *bool `yaml:"insecure_skip_verify,omitempty" toml:"insecure_skip_verify,omitempty"`

	// DefaultModel is used by `ask` when --model is not given.
	DefaultModel string `yaml:"default_model,omitempty" toml:"default_model,omitempty"`

	// Providers is keyed by provider config key (qwen, deepseek-v3, ...).
	Providers map[string]ProviderConfig `yaml:"providers,omitempty" toml:"providers,omitempty"`
}

// ProviderConfig holds per-provider connection settings.
type ProviderConfig struct {
	BaseURL   string `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty" toml:"api_key,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty" toml:"api_key_env,omitempty"`
	Model     string `yaml:"model,omitempty" toml:"model,omitempty"`

	// Host and Port locate a self-hosted server (vllm).
	Host string `yaml:"host,omitempty" toml:"host,omitempty"`
	Port int    `yaml:"port,omitempty" toml:"port,omitempty"`

	// Timeout overrides the top-level timeout for this provider.
	Timeout string `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
}

// File names looked up in the working directory, in order.
const (
	FileName     = "chatcall.yaml"
	TOMLFileName = "chatcall.toml"
)

// DefaultTimeout is the per-call timeout used when none is configured.
const DefaultTimeout = "3000s"
