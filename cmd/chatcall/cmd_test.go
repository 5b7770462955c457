// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/davetashner/chatcall/internal/config"
	"github.com/davetashner/chatcall/internal/llm"
	"github.com/davetashner/chatcall/internal/testable"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// newTestCmd redirects the root command's output to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	resetFlags()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetFlags restores every flag of every command to its default. cobra
// keeps flag state between Execute calls on the shared rootCmd.
func resetFlags() {
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				if sv, ok := f.Value.(pflag.SliceValue); ok {
					_ = sv.Replace(nil)
				} else {
					_ = f.Value.Set(f.DefValue)
				}
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func withMockFS(t *testing.T, mock *testable.MockFileSystem) {
	t.Helper()
	orig := cmdFS
	cmdFS = mock
	t.Cleanup(func() { cmdFS = orig })
}

// withMockProvider routes dispatch of name to mock.
func withMockProvider(t *testing.T, name string, mock llm.Provider) {
	t.Helper()
	orig := newDispatcher
	newDispatcher = func(*config.Config) (*llm.Dispatcher, error) {
		return llm.NewDispatcher(nil, llm.WithProvider(name, mock)), nil
	}
	t.Cleanup(func() { newDispatcher = orig })
}

// isolateEnv points the global config at an empty directory and clears the
// variables that feed endpoint resolution.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"DASHSCOPE_API_KEY", "ARK_API_KEY", "ANTHROPIC_API_KEY",
		config.EnvVLLMHost, config.EnvVLLMPort,
	} {
		t.Setenv(k, "")
	}
}

// writeConfig writes a repo config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
