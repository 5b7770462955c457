// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/davetashner/chatcall/internal/llm"
	"github.com/davetashner/chatcall/internal/redact"
)

// Environment variables that override the vllm server location.
const (
	EnvVLLMHost = "VLLM_HOST"
	EnvVLLMPort = "VLLM_PORT"
)

// Endpoints resolves cfg into one llm.Endpoint per provider config key.
// Environment values win over file values: each provider's api_key_env
// (or its conventional variable) supplies the key when set, and VLLM_HOST
// and VLLM_PORT relocate the vllm server. Every resolved key is registered
// with the redact package. getenv is usually os.Getenv.
func Endpoints(cfg *Config, getenv func(string) string) (map[string]llm.Endpoint, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	baseTimeout, err := parseTimeout(cfg.Timeout, DefaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}
	insecure := true
	if cfg.InsecureSkipVerify != nil {
		insecure = *cfg.InsecureSkipVerify
	}

	out := make(map[string]llm.Endpoint, len(cfg.Providers))
	for _, m := range llm.Models() {
		pc := cfg.Providers[m.ConfigKey]

		timeout := baseTimeout
		if pc.Timeout != "" {
			if timeout, err = parseTimeout(pc.Timeout, ""); err != nil {
				return nil, fmt.Errorf("providers.%s.timeout: %w", m.ConfigKey, err)
			}
		}

		ep := llm.Endpoint{
			BaseURL:            pc.BaseURL,
			APIKey:             pc.APIKey,
			Model:              pc.Model,
			Host:               pc.Host,
			Port:               pc.Port,
			Timeout:            timeout,
			InsecureSkipVerify: insecure,
		}

		keyEnv := pc.APIKeyEnv
		if keyEnv == "" {
			keyEnv = m.APIKeyEnv
		}
		if keyEnv != "" {
			if v := getenv(keyEnv); v != "" {
				ep.APIKey = v
			}
		}

		if m.Name == llm.ModelVLLM {
			if h := getenv(EnvVLLMHost); h != "" {
				ep.Host = h
			}
			if p := getenv(EnvVLLMPort); p != "" {
				port, err := strconv.Atoi(p)
				if err != nil || port <= 0 || port > 65535 {
					return nil, fmt.Errorf("%s: invalid port %q", EnvVLLMPort, p)
				}
				ep.Port = port
			}
		}

		redact.Register(ep.APIKey)
		out[m.ConfigKey] = ep
	}
	return out, nil
}

func parseTimeout(s, fallback string) (time.Duration, error) {
	if s == "" {
		s = fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
