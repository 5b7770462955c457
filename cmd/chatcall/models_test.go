// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/chatcall/internal/kwargs"
	"github.com/davetashner/chatcall/internal/llm"
)

// rowFor returns the models table line for name.
func rowFor(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), name+" ") {
			return line
		}
	}
	t.Fatalf("no row for %s in:\n%s", name, out)
	return ""
}

func TestModelsCmd_ListsEveryModel(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DASHSCOPE_API_KEY", "sk-dashscope-test")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"models"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	for _, m := range llm.Models() {
		assert.Contains(t, out, m.Name)
	}
	assert.Contains(t, out, "MODEL")
	assert.Contains(t, out, "* default model")

	qwen := rowFor(t, out, llm.ModelQwen)
	assert.Contains(t, qwen, "Qwen-Instruct-API *")
	assert.Contains(t, qwen, "yes")
	assert.Contains(t, qwen, "...")
	assert.Contains(t, qwen, "set")

	v3 := rowFor(t, out, llm.ModelDeepSeekV3)
	assert.Contains(t, v3, "no")
	assert.Contains(t, v3, "ARK_API_KEY")
	assert.Contains(t, v3, "missing")

	vllm := rowFor(t, out, llm.ModelVLLM)
	assert.Contains(t, vllm, "version, multi_turn, multi_turn_list, port")
}

func TestModelsCmd_DefaultFromConfig(t *testing.T) {
	isolateEnv(t)
	path := writeConfig(t, "default_model: vllm\n")

	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs([]string{"models", "--config", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "vllm *")
	assert.NotContains(t, stdout.String(), "Qwen-Instruct-API *")
}

func TestParamsLabel(t *testing.T) {
	assert.Equal(t, "", paramsLabel(kwargs.Spec{}))
	assert.Equal(t, "a, b", paramsLabel(kwargs.Spec{Names: []string{"a", "b"}}))

	names := []string{"version"}
	assert.Equal(t, "version, ...", paramsLabel(kwargs.Spec{Names: names, Open: true}))
	assert.Equal(t, []string{"version"}, names)
}
