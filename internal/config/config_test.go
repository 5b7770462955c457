// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	skip := false
	original := &Config{
		Timeout:            "60s",
		InsecureSkipVerify: &skip,
		DefaultModel:       "vllm",
		Providers: map[string]ProviderConfig{
			"vllm": {Host: "10.0.0.5", Port: 8001, Model: "Qwen3-14B"},
			"qwen": {BaseURL: "https://example.com/v1", APIKeyEnv: "MY_KEY"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))

	var decoded Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *original, decoded)
}

func TestConfig_TOMLRoundTrip(t *testing.T) {
	original := &Config{
		Timeout: "30s",
		Providers: map[string]ProviderConfig{
			"doubao": {Model: "doubao-pro-32k-241215", APIKeyEnv: "ARK_API_KEY"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTOML(&buf, original))

	decoded, err := Parse(buf.Bytes(), ".toml")
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestConfig_InsecureNilDistinct(t *testing.T) {
	cfg, err := Parse([]byte("timeout: 10s\n"), ".yaml")
	require.NoError(t, err)
	assert.Nil(t, cfg.InsecureSkipVerify)

	cfg, err = Parse([]byte("insecure_skip_verify: false\n"), ".yaml")
	require.NoError(t, err)
	require.NotNil(t, cfg.InsecureSkipVerify)
	assert.False(t, *cfg.InsecureSkipVerify)
}

func TestConfig_OmitEmptyFields(t *testing.T) {
	data, err := yaml.Marshal(&Config{})
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	require.NotNil(t, cfg.InsecureSkipVerify)
	assert.True(t, *cfg.InsecureSkipVerify)
	assert.Equal(t, "Qwen-Instruct-API", cfg.DefaultModel)
	assert.Len(t, cfg.Providers, 6)

	assert.Equal(t, "https://dashscope.aliyuncs.com/compatible-mode/v1", cfg.Providers["qwen"].BaseURL)
	assert.Equal(t, "DASHSCOPE_API_KEY", cfg.Providers["qwen"].APIKeyEnv)
	assert.Equal(t, "deepseek-r1-250120", cfg.Providers["deepseek-r1"].Model)
	assert.Equal(t, "https://ark.cn-beijing.volces.com/api/v3", cfg.Providers["doubao"].BaseURL)
	assert.Equal(t, 8000, cfg.Providers["vllm"].Port)
	assert.Empty(t, cfg.Providers["vllm"].APIKeyEnv)

	for name, pc := range cfg.Providers {
		assert.Empty(t, pc.APIKey, "defaults must not carry a key for %s", name)
	}
}

func FuzzConfigParse(f *testing.F) {
	f.Add([]byte("timeout: 3000s\ninsecure_skip_verify: true\n"), false)
	f.Add([]byte(""), false)
	f.Add([]byte("---"), false)
	f.Add([]byte("providers:\n  vllm:\n    port: 8000\n"), false)
	f.Add([]byte("timeout = \"1s\"\n[providers.qwen]\nmodel = \"qwen-max\"\n"), true)
	f.Add([]byte("{invalid"), false)

	f.Fuzz(func(t *testing.T, data []byte, asTOML bool) {
		ext := ".yaml"
		if asTOML {
			ext = ".toml"
		}
		cfg, err := Parse(data, ext)
		if err != nil {
			return
		}
		// Parsed configs must validate and resolve without panicking.
		_ = Validate(cfg)
		_, _ = Endpoints(cfg, func(string) string { return "" })
	})
}
