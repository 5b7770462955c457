// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/davetashner/chatcall/internal/config"
	"github.com/davetashner/chatcall/internal/extract"
	"github.com/davetashner/chatcall/internal/kwargs"
	"github.com/davetashner/chatcall/internal/llm"
)

// Ask command defaults.
const (
	defaultSystemFile = "sysp.md"
	defaultPromptFile = "usrp.md"
	defaultLang       = "html"
	outputPrefix      = "ai_timer_output"
)

// Ask command flags.
var (
	askModel       string
	askSystemFile  string
	askPromptFile  string
	askPrompt      string
	askLang        string
	askOutput      string
	askParams      []string
	askTemperature float64
	askTools       string
	askHistory     []string
	askThinking    bool
	askRaw         bool
	askRender      bool
)

// askCmd sends one prompt to a model and saves the code block it returns.
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Send a prompt to a model and save its code block",
	Long: `Send the system prompt (sysp.md) and the user prompt (usrp.md) to a model,
then save the first fenced code block in the answer to
ai_timer_output-<version>.html.

Keyword parameters given with --param are bound at dispatch. Qwen, vllm and
Claude accept them; parameters a family does not declare are dropped with a
warning. The Ark families (DeepSeek-V3, DeepSeek-R1, DouBao-1.5Pro-32K)
ignore them.

Examples:
  chatcall ask
  chatcall ask -m DeepSeek-R1 -o page.html
  chatcall ask -m vllm -p port=8001 -p version=Qwen3-8B-SHOP
  chatcall ask -m Qwen-Instruct-API -p version=qwen3-32b --thinking --raw
  chatcall ask --prompt "who are you" --raw`,
	Args: cobra.NoArgs,
	RunE: runAsk,
}

func init() {
	f := askCmd.Flags()
	f.StringVarP(&askModel, "model", "m", "", "model name (default: default_model from config, else "+config.DefaultModel+")")
	f.StringVar(&askSystemFile, "system-file", defaultSystemFile, "file holding the system prompt")
	f.StringVar(&askPromptFile, "prompt-file", defaultPromptFile, "file holding the user prompt")
	f.StringVar(&askPrompt, "prompt", "", "inline user prompt, used instead of --prompt-file")
	f.StringVar(&askLang, "lang", defaultLang, "language tag of the code block to extract")
	f.StringVarP(&askOutput, "output", "o", "", "output file (default: "+outputPrefix+"-<version>.<lang>)")
	f.StringArrayVarP(&askParams, "param", "p", nil, "keyword parameter key=value, bound at dispatch (repeatable)")
	f.Float64Var(&askTemperature, "temperature", 0, "sampling temperature")
	f.StringVar(&askTools, "tools", "", "JSON file with tool definitions (Qwen)")
	f.StringArrayVar(&askHistory, "history", nil, "earlier user turn read from a file; enables multi-turn (vllm, repeatable)")
	f.BoolVar(&askThinking, "thinking", false, "enable thinking (Qwen3) and print the reasoning to stderr")
	f.BoolVar(&askRaw, "raw", false, "print the whole answer instead of saving a code block")
	f.BoolVar(&askRender, "render", false, "print the whole answer rendered as markdown")
}

func runAsk(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	model := firstNonEmpty(askModel, cfg.DefaultModel, config.DefaultModel)

	params, err := buildParams()
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	systemPrompt, userPrompt, err := readPrompts(cmd)
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}

	d, err := newDispatcher(cfg)
	if err != nil {
		return exitError(ExitInvalidArgs, "chatcall: %v", err)
	}
	call, err := d.Dispatch(model, params)
	if err != nil {
		return exitFor(err)
	}

	slog.Debug("asking", "model", model, "params", kwargs.Keys(params))
	stop := startSpinner(cmd.ErrOrStderr())
	resp, err := call(cmd.Context(), llm.Request{
		Prompt:       userPrompt,
		SystemPrompt: systemPrompt,
		Temperature:  askTemperature,
		RecordTime:   true,
	})
	stop()
	if err != nil {
		return exitFor(err)
	}

	w := cmd.OutOrStdout()
	if askThinking && resp.Reasoning != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n%s\n\n", color.New(color.Faint).Sprint("Reasoning:"), resp.Reasoning)
	}

	switch {
	case resp.HasToolCalls():
		for _, tc := range resp.ToolCalls {
			_, _ = fmt.Fprintln(w, tc.String())
		}
	case askRaw || askRender:
		text := resp.Content
		if askRender {
			if text, err = renderMarkdown(text); err != nil {
				return exitError(ExitInvalidArgs, "chatcall: rendering answer: %v", err)
			}
		}
		_, _ = fmt.Fprintln(w, text)
	default:
		path, err := saveCodeBlock(resp.Content, model, params)
		if err != nil {
			slog.Debug("answer without code block", "model", model, "content", resp.Content)
			return exitFor(err)
		}
		_, _ = fmt.Fprintf(w, "%s Saved %s\n", color.GreenString("✅"), path)
	}

	if secs, ok := resp.Seconds(); ok {
		_, _ = fmt.Fprintf(w, "Time cost: %.3fs\n", secs)
	}
	return nil
}

// buildParams collects the keyword parameters bound at dispatch.
func buildParams() (map[string]any, error) {
	params := make(map[string]any)
	for _, kv := range askParams {
		key, val, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q (want key=value)", kv)
		}
		params[key] = coerceValue(val)
	}

	if askTools != "" {
		data, err := cmdFS.ReadFile(askTools)
		if err != nil {
			return nil, fmt.Errorf("reading tools: %w", err)
		}
		var tools []any
		if err := json.Unmarshal(data, &tools); err != nil {
			return nil, fmt.Errorf("parsing tools %s: %w", askTools, err)
		}
		params["tools"] = tools
	}

	if len(askHistory) > 0 {
		turns := make([]string, 0, len(askHistory))
		for _, path := range askHistory {
			data, err := cmdFS.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading history: %w", err)
			}
			turns = append(turns, string(data))
		}
		params["multi_turn"] = true
		params["multi_turn_list"] = turns
	}

	if askThinking {
		params["enable_thinking"] = true
	}
	return params, nil
}

// readPrompts loads the system and user prompts. An inline --prompt makes
// the default system prompt file optional.
func readPrompts(cmd *cobra.Command) (system, user string, err error) {
	if askPrompt != "" {
		user = askPrompt
	} else {
		data, err := cmdFS.ReadFile(askPromptFile)
		if err != nil {
			return "", "", fmt.Errorf("reading prompt: %w", err)
		}
		user = string(data)
	}

	data, err := cmdFS.ReadFile(askSystemFile)
	switch {
	case err == nil:
		system = string(data)
	case askPrompt != "" && !cmd.Flags().Changed("system-file") && errors.Is(err, fs.ErrNotExist):
		slog.Debug("no system prompt", "path", askSystemFile)
	default:
		return "", "", fmt.Errorf("reading system prompt: %w", err)
	}
	return system, user, nil
}

// saveCodeBlock writes the first askLang block of answer to the output
// file and returns its path.
func saveCodeBlock(answer, model string, params map[string]any) (string, error) {
	block, err := extract.CodeBlock(answer, askLang)
	if err != nil {
		return "", err
	}

	path := askOutput
	if path == "" {
		path = defaultOutputPath(model, params)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := cmdFS.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := cmdFS.WriteFile(path, []byte(block), 0o644); err != nil { //nolint:gosec // generated page, world-readable
		return "", fmt.Errorf("writing output: %w", err)
	}
	return path, nil
}

// defaultOutputPath names the output after the bound version, falling back
// to the model name.
func defaultOutputPath(model string, params map[string]any) string {
	version := model
	if v, ok := params["version"]; ok {
		if s := fmt.Sprint(v); s != "" {
			version = s
		}
	}
	version = strings.NewReplacer("/", "-", `\`, "-", " ", "_").Replace(version)
	ext := askLang
	if ext == "" {
		ext = defaultLang
	}
	return fmt.Sprintf("%s-%s.%s", outputPrefix, version, ext)
}

// startSpinner shows a spinner on w while a call runs, when w is a terminal.
// The returned func stops it.
func startSpinner(w io.Writer) func() {
	f, ok := w.(*os.File)
	if quiet || !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Thinking..."
	s.Start()
	return s.Stop
}

func renderMarkdown(text string) (string, error) {
	style := "dark"
	if color.NoColor {
		style = "notty"
	}
	return glamour.Render(text, style)
}

// coerceValue parses a string into bool, int, float64, or keeps it as string.
func coerceValue(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// Only use float if it has a decimal point (avoid converting "3" to 3.0).
		if strings.Contains(s, ".") {
			return f
		}
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
