// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/davetashner/chatcall/internal/llm"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Timeout != "" {
		if _, err := parseTimeout(cfg.Timeout, ""); err != nil {
			errs = append(errs, fmt.Sprintf("timeout: invalid duration %q: %v", cfg.Timeout, err))
		}
	}

	if cfg.DefaultModel != "" {
		if _, ok := llm.Lookup(cfg.DefaultModel); !ok {
			errs = append(errs, fmt.Sprintf("default_model: unsupported model %q", cfg.DefaultModel))
		}
	}

	known := make(map[string]bool)
	for _, k := range llm.ConfigKeys() {
		known[k] = true
	}

	names := make([]string, 0, len(cfg.Providers))
	for name := range cfg.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		pc := cfg.Providers[name]
		if !known[name] {
			errs = append(errs, fmt.Sprintf("providers.%s: unknown provider (valid: %s)", name, strings.Join(llm.ConfigKeys(), ", ")))
			continue
		}

		if pc.BaseURL != "" {
			if err := checkURL(pc.BaseURL); err != nil {
				errs = append(errs, fmt.Sprintf("providers.%s.base_url: %v", name, err))
			}
		}

		if pc.Port < 0 || pc.Port > 65535 {
			errs = append(errs, fmt.Sprintf("providers.%s.port: must be between 1 and 65535, got %d", name, pc.Port))
		}

		if strings.Contains(pc.Host, "/") {
			errs = append(errs, fmt.Sprintf("providers.%s.host: must be a bare host name, got %q", name, pc.Host))
		}

		if pc.Timeout != "" {
			if _, err := parseTimeout(pc.Timeout, ""); err != nil {
				errs = append(errs, fmt.Sprintf("providers.%s.timeout: invalid duration %q: %v", name, pc.Timeout, err))
			}
		}

		if strings.ContainsAny(pc.APIKeyEnv, " =") {
			errs = append(errs, fmt.Sprintf("providers.%s.api_key_env: invalid variable name %q", name, pc.APIKeyEnv))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", raw)
	}
	return nil
}
