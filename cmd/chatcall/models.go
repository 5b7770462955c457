// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/chatcall/internal/config"
	"github.com/davetashner/chatcall/internal/kwargs"
	"github.com/davetashner/chatcall/internal/llm"
	"github.com/davetashner/chatcall/internal/table"
)

// modelsCmd lists the supported model names.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported models",
	Long: `List every model name accepted by 'chatcall ask --model', whether the
family binds --param values at dispatch, the keyword parameters it
declares, and whether its API key is available.

Names are matched case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func runModels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	endpoints, err := config.Endpoints(cfg, os.Getenv)
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}

	tbl := table.New(
		table.Column{Header: "MODEL"},
		table.Column{Header: "CONFIG KEY"},
		table.Column{Header: "BINDS", Color: table.ColorYesNo},
		table.Column{Header: "PARAMETERS"},
		table.Column{Header: "KEY ENV"},
		table.Column{Header: "KEY", Color: table.ColorKeyStatus},
	)
	for _, m := range llm.Models() {
		name := m.Name
		if strings.EqualFold(name, cfg.DefaultModel) {
			name += " *"
		}
		tbl.AddRow(
			name,
			m.ConfigKey,
			yesNo(m.BindsParams),
			paramsLabel(m.Params),
			m.APIKeyEnv,
			keyStatus(m, endpoints[m.ConfigKey]),
		)
	}

	w := cmd.OutOrStdout()
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "\n  * default model")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// paramsLabel lists declared names; an open spec ends with "...".
func paramsLabel(spec kwargs.Spec) string {
	names := spec.Names
	if spec.Open {
		names = append(names[:len(names):len(names)], "...")
	}
	return strings.Join(names, ", ")
}

// keyStatus reports whether a credential resolved for the family. Families
// without a key variable need none.
func keyStatus(m llm.ModelInfo, ep llm.Endpoint) string {
	if m.APIKeyEnv == "" {
		return ""
	}
	if ep.APIKey == "" {
		return "missing"
	}
	return "set"
}
