// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/chatcall/internal/config"
)

// Config command flags.
var (
	configSources bool
	configFormat  string
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect chatcall configuration",
	Long: `Inspect chatcall configuration.

Chatcall reads chatcall.yaml (or chatcall.toml) from the working directory,
or the file named by --config. A global config at
~/.config/chatcall/config.yaml provides defaults. Repo-level settings
override global settings, and the environment overrides both.`,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print the effective configuration",
	Long: `Print the merged configuration with API keys masked, or a single value
by dot-notation key path.

Examples:
  chatcall config show
  chatcall config show providers.vllm
  chatcall config show providers.vllm.port
  chatcall config show --sources
  chatcall config show --format toml > chatcall.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigShow,
}

// configValidateCmd checks the effective configuration.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

// configPathCmd prints the configuration file locations.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "list every value with the layer it comes from")
	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "output format for the whole config: yaml or toml")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	layers, err := loadLayers()
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	cfg := config.Redacted(layers.merged())

	if len(args) == 1 {
		val, err := config.GetValue(cfg, args[0])
		if err != nil {
			return exitError(ExitInvalidArgs, "chatcall: %v", err)
		}
		return printValue(cmd, val)
	}
	if configSources {
		return printSources(cmd, layers)
	}
	switch configFormat {
	case "yaml":
		return config.Write(cmd.OutOrStdout(), cfg)
	case "toml":
		return config.WriteTOML(cmd.OutOrStdout(), cfg)
	default:
		return exitError(ExitInvalidArgs, "chatcall: invalid format %q (must be yaml or toml)", configFormat)
	}
}

// printSources lists each flattened key with the highest layer setting it.
func printSources(cmd *cobra.Command, layers configLayers) error {
	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	for _, layer := range []struct {
		name string
		cfg  *config.Config
	}{
		{"default", layers.defaults},
		{"global", layers.global},
		{"repo", layers.repo},
	} {
		m, err := config.ToMap(config.Redacted(layer.cfg))
		if err != nil {
			return fmt.Errorf("marshaling %s config: %w", layer.name, err)
		}
		for k, v := range config.FlattenMap(m, "") {
			seen[k] = entry{value: v, source: layer.name}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	repoColor := color.New(color.FgGreen)

	w := cmd.OutOrStdout()
	for _, k := range keys {
		e := seen[k]
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, formatSource(e.source, globalColor, repoColor))
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	if _, err := config.Endpoints(cfg, os.Getenv); err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s configuration is valid\n", color.GreenString("✓"))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	global := config.GlobalConfigPath()
	status := "not found"
	if _, err := cmdFS.Stat(global); err == nil {
		status = "found"
	}
	_, _ = fmt.Fprintf(w, "global: %s (%s)\n", global, status)

	repo := repoConfigPath()
	if repo == "" {
		repo = "(none)"
	} else if abs, err := cmdFS.Abs(repo); err == nil {
		repo = abs
	}
	_, _ = fmt.Fprintf(w, "repo:   %s\n", repo)
	return nil
}

// printValue prints scalars as-is and maps or slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, repoColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "repo":
		return repoColor.Sprintf("(repo)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
