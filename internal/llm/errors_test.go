// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *TransportError
		want string
	}{
		{
			name: "status with body",
			err:  &TransportError{Provider: "vllm", Model: "Qwen3-8B-SHOP", StatusCode: 500, Body: "oops"},
			want: "vllm (Qwen3-8B-SHOP): status 500: oops",
		},
		{
			name: "connection failure",
			err:  &TransportError{Provider: "DeepSeek-V3", Err: errors.New("dial tcp: refused")},
			want: "DeepSeek-V3: dial tcp: refused",
		},
		{
			name: "empty envelope",
			err:  &TransportError{Provider: "DeepSeek-R1", StatusCode: 200, Err: errNoChoices},
			want: "DeepSeek-R1: response contained no choices",
		},
		{
			name: "nothing known",
			err:  &TransportError{Provider: "Claude"},
			want: "Claude: transport failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestTransportErrorClipsBody(t *testing.T) {
	err := &TransportError{Provider: "p", StatusCode: 502, Body: strings.Repeat("x", 2000)}
	msg := err.Error()
	assert.True(t, strings.HasSuffix(msg, "..."))
	assert.Less(t, len(msg), 600)
	assert.Len(t, err.Body, 2000)
}

func TestErrorTaxonomy(t *testing.T) {
	transport := fmt.Errorf("calling: %w", &TransportError{Provider: "p", Err: context.DeadlineExceeded})
	unsupported := &UnsupportedModelError{Name: "gpt-9"}
	extraction := fmt.Errorf("saving: %w", &ExtractionError{Lang: "html"})

	assert.ErrorIs(t, transport, ErrTransport)
	assert.ErrorIs(t, transport, context.DeadlineExceeded)
	assert.NotErrorIs(t, transport, ErrExtraction)
	assert.Equal(t, KindTransport, KindOf(transport))

	assert.ErrorIs(t, unsupported, ErrUnsupportedModel)
	assert.Equal(t, KindUnsupportedModel, KindOf(unsupported))
	assert.Equal(t, `model "gpt-9" is not supported`, unsupported.Error())

	assert.ErrorIs(t, extraction, ErrExtraction)
	assert.Equal(t, KindExtraction, KindOf(extraction))
	assert.Equal(t, "saving: no ```html code block found in answer", extraction.Error())

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "unsupported_model", KindUnsupportedModel.String())
	assert.Equal(t, "extraction", KindExtraction.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
