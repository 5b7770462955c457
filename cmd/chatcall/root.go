// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	chatlog "github.com/davetashner/chatcall/internal/log"
)

// Global flag values.
var (
	verbose    bool
	quiet      bool
	noColor    bool
	logFormat  string
	configPath string
)

// rootCmd is the base command for chatcall.
var rootCmd = &cobra.Command{
	Use:   "chatcall",
	Short: "Call hosted and self-hosted LLMs from one command line",
	Long: `Chatcall sends a system prompt and a user prompt to one of several chat
models (Qwen on DashScope, DeepSeek and DouBao on Volcengine Ark, a
self-hosted vllm server, or Claude) and saves the fenced code block the
model answers with.

Endpoints and credentials come from chatcall.yaml, the global config and
the environment. See 'chatcall config show'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		format, err := chatlog.ParseFormat(logFormat)
		if err != nil {
			return exitError(ExitInvalidArgs, "chatcall: %v", err)
		}
		if noColor {
			color.NoColor = true
		}
		chatlog.SetupWriter(cmd.ErrOrStderr(), verbose, quiet, format)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	pf.StringVar(&configPath, "config", "", "config file to use instead of ./chatcall.yaml")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
