// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

// Package kwargs binds loosely typed keyword arguments onto typed option
// structs. Names the target does not declare are dropped with a warning
// instead of failing the call.
package kwargs

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const tagName = "mapstructure"

// Spec lists the keyword parameters a call target declares.
type Spec struct {
	// Names holds the declared parameter names in field order.
	Names []string

	// Open is true when the target captures arbitrary extra keywords
	// through a field tagged `mapstructure:",remain"`.
	Open bool
}

// Accepts reports whether the target takes a keyword called name.
func (s Spec) Accepts(name string) bool {
	if s.Open {
		return true
	}
	for _, n := range s.Names {
		if n == name {
			return true
		}
	}
	return false
}

// SpecOf derives a Spec from the mapstructure tags of target, which must be
// a struct or a pointer to one. Untagged exported fields are declared under
// their Go field name. Anything else yields an empty, closed Spec.
func SpecOf(target any) Spec {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var spec Spec
	if t == nil || t.Kind() != reflect.Struct {
		return spec
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if hasOpt(opts, "remain") {
			spec.Open = true
			continue
		}
		if name == "" {
			name = f.Name
		}
		spec.Names = append(spec.Names, name)
	}
	return spec
}

func hasOpt(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}

// Filter splits args into the entries spec accepts and the sorted names of
// those it does not. The input map is not modified.
func Filter(spec Spec, args map[string]any) (kept map[string]any, dropped []string) {
	kept = make(map[string]any, len(args))
	for k, v := range args {
		if spec.Accepts(k) {
			kept[k] = v
			continue
		}
		dropped = append(dropped, k)
	}
	sort.Strings(dropped)
	return kept, dropped
}

// Bind filters args against the fields of target (a pointer to a struct),
// logs a warning naming any dropped keys, and decodes the remainder into
// target. Fields absent from args keep their current values, so callers set
// defaults before binding. Values are weakly typed: "8001" binds to an int
// field and "true" to a bool.
func Bind(target any, args map[string]any) error {
	spec := SpecOf(target)
	kept, dropped := Filter(spec, args)
	if len(dropped) > 0 {
		slog.Warn("removed unexpected arguments",
			"target", typeName(target),
			"names", dropped,
		)
	}
	if len(kept) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("kwargs: %w", err)
	}
	if err := dec.Decode(kept); err != nil {
		return fmt.Errorf("kwargs: binding %s: %w", typeName(target), err)
	}
	return nil
}

// Merge layers keyword maps left to right; later maps win on key clashes.
// It always returns a fresh map.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, m := range layers {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Keys returns the sorted keys of m.
func Keys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "<nil>"
	}
	return t.Name()
}
