// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package config

// Merge layers over on top of base and returns a new Config. Non-zero
// fields in over win; zero-value fields fall through to base. Providers
// merge field by field, so a repo file can override one provider's model
// without repeating its base URL.
func Merge(base, over *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	if over == nil {
		over = &Config{}
	}

	result := *base
	result.Providers = nil

	if over.Timeout != "" {
		result.Timeout = over.Timeout
	}
	if over.InsecureSkipVerify != nil {
		v := *over.InsecureSkipVerify
		result.InsecureSkipVerify = &v
	} else if base.InsecureSkipVerify != nil {
		v := *base.InsecureSkipVerify
		result.InsecureSkipVerify = &v
	}
	if over.DefaultModel != "" {
		result.DefaultModel = over.DefaultModel
	}

	if len(base.Providers) > 0 || len(over.Providers) > 0 {
		result.Providers = make(map[string]ProviderConfig, len(base.Providers))
		for name, pc := range base.Providers {
			result.Providers[name] = pc
		}
		for name, op := range over.Providers {
			result.Providers[name] = mergeProvider(result.Providers[name], op)
		}
	}
	return &result
}

func mergeProvider(base, over ProviderConfig) ProviderConfig {
	result := base
	if over.BaseURL != "" {
		result.BaseURL = over.BaseURL
	}
	if over.APIKey != "" {
		result.APIKey = over.APIKey
	}
	if over.APIKeyEnv != "" {
		result.APIKeyEnv = over.APIKeyEnv
	}
	if over.Model != "" {
		result.Model = over.Model
	}
	if over.Host != "" {
		result.Host = over.Host
	}
	if over.Port != 0 {
		result.Port = over.Port
	}
	if over.Timeout != "" {
		result.Timeout = over.Timeout
	}
	return result
}
