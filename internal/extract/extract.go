// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

// Package extract pulls fenced code blocks out of markdown answers.
package extract

import (
	"regexp"
	"sync"

	"github.com/davetashner/chatcall/internal/llm"
)

var (
	mu       sync.Mutex
	patterns = map[string]*regexp.Regexp{}
)

func pattern(lang string) *regexp.Regexp {
	mu.Lock()
	defer mu.Unlock()
	if re, ok := patterns[lang]; ok {
		return re
	}
	re := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(lang) + `\s*(.*?)\s*` + "```")
	patterns[lang] = re
	return re
}

// CodeBlock returns the body of the first ```lang fenced block in text,
// with surrounding whitespace removed. The match is non-greedy, so a later
// block never bleeds into the first. A missing block is an
// *llm.ExtractionError.
func CodeBlock(text, lang string) (string, error) {
	m := pattern(lang).FindStringSubmatch(text)
	if m == nil {
		return "", &llm.ExtractionError{Lang: lang}
	}
	return m[1], nil
}
