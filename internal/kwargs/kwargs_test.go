// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package kwargs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closedOpts struct {
	Version string   `mapstructure:"version"`
	Port    int      `mapstructure:"port"`
	Turns   []string `mapstructure:"multi_turn_list"`
	Flag    bool
	hidden  int //nolint:unused // unexported fields are never declared
	Skipped string `mapstructure:"-"`
}

type openOpts struct {
	Version string         `mapstructure:"version"`
	Extra   map[string]any `mapstructure:",remain"`
}

// captureWarnings swaps the default slog logger for one writing to a buffer.
func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	orig := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { slog.SetDefault(orig) })
	return buf
}

func TestSpecOf_ClosedStruct(t *testing.T) {
	spec := SpecOf(&closedOpts{})
	assert.Equal(t, []string{"version", "port", "multi_turn_list", "Flag"}, spec.Names)
	assert.False(t, spec.Open)
}

func TestSpecOf_RemainMarksOpen(t *testing.T) {
	spec := SpecOf(openOpts{})
	assert.Equal(t, []string{"version"}, spec.Names)
	assert.True(t, spec.Open)
}

func TestSpecOf_NonStruct(t *testing.T) {
	assert.Equal(t, Spec{}, SpecOf(42))
	assert.Equal(t, Spec{}, SpecOf(nil))
}

func TestFilter_DropsExactlyUndeclared(t *testing.T) {
	spec := Spec{Names: []string{"version", "port"}}
	args := map[string]any{
		"version": "v1",
		"port":    8001,
		"tools":   []string{"x"},
		"bogus":   true,
	}

	kept, dropped := Filter(spec, args)
	assert.Equal(t, map[string]any{"version": "v1", "port": 8001}, kept)
	assert.Equal(t, []string{"bogus", "tools"}, dropped)
	assert.Len(t, args, 4, "input map must not be modified")
}

func TestFilter_OpenKeepsEverything(t *testing.T) {
	args := map[string]any{"anything": 1, "else": "x"}
	kept, dropped := Filter(Spec{Open: true}, args)
	assert.Equal(t, args, kept)
	assert.Empty(t, dropped)
}

func TestFilter_EmptyInput(t *testing.T) {
	kept, dropped := Filter(Spec{Names: []string{"a"}}, nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}

func TestBind_DecodesAndKeepsDefaults(t *testing.T) {
	opts := closedOpts{Version: "default", Port: 8000}
	require.NoError(t, Bind(&opts, map[string]any{"port": 9000}))
	assert.Equal(t, "default", opts.Version)
	assert.Equal(t, 9000, opts.Port)
}

func TestBind_WeakTyping(t *testing.T) {
	var opts closedOpts
	require.NoError(t, Bind(&opts, map[string]any{
		"port": "8001",
		"Flag": "true",
	}))
	assert.Equal(t, 8001, opts.Port)
	assert.True(t, opts.Flag)
}

func TestBind_WarnsOnDropped(t *testing.T) {
	buf := captureWarnings(t)

	var opts closedOpts
	require.NoError(t, Bind(&opts, map[string]any{
		"version":     "v2",
		"temperature": 0.3,
		"Skipped":     "no",
	}))

	assert.Equal(t, "v2", opts.Version)
	assert.Empty(t, opts.Skipped)
	out := buf.String()
	assert.Contains(t, out, "removed unexpected arguments")
	assert.Contains(t, out, "temperature")
	assert.Contains(t, out, "Skipped")
	assert.Contains(t, out, "closedOpts")
}

func TestBind_NoWarningWhenAllDeclared(t *testing.T) {
	buf := captureWarnings(t)

	var opts closedOpts
	require.NoError(t, Bind(&opts, map[string]any{"version": "v3"}))
	assert.Empty(t, buf.String())
}

func TestBind_OpenCollectsExtras(t *testing.T) {
	buf := captureWarnings(t)

	var opts openOpts
	require.NoError(t, Bind(&opts, map[string]any{
		"version":    "qwen3-max",
		"top_p":      0.5,
		"max_tokens": 100,
	}))

	assert.Equal(t, "qwen3-max", opts.Version)
	assert.Equal(t, map[string]any{"top_p": 0.5, "max_tokens": 100}, opts.Extra)
	assert.Empty(t, buf.String())
}

func TestBind_TypeMismatchIsError(t *testing.T) {
	var opts closedOpts
	err := Bind(&opts, map[string]any{"port": "not-a-number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closedOpts")
}

func TestMerge_LaterWins(t *testing.T) {
	bound := map[string]any{"version": "a", "port": 1}
	call := map[string]any{"version": "b"}

	got := Merge(bound, call)
	assert.Equal(t, map[string]any{"version": "b", "port": 1}, got)

	got["port"] = 2
	assert.Equal(t, 1, bound["port"], "Merge must copy")
}

func TestMerge_Nil(t *testing.T) {
	assert.NotNil(t, Merge())
	assert.Empty(t, Merge(nil, nil))
}

func TestKeys_Sorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Keys(map[string]any{"c": 1, "a": 2, "b": 3}))
}
