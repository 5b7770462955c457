// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every error this package returns.
type Kind int

const (
	// KindUnknown is reported for errors outside the taxonomy.
	KindUnknown Kind = iota
	// KindTransport covers connection failures, non-200 replies and
	// malformed response envelopes.
	KindTransport
	// KindUnsupportedModel is returned by the dispatcher for unknown names.
	KindUnsupportedModel
	// KindExtraction is returned when an expected pattern is missing from
	// an answer.
	KindExtraction
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindUnsupportedModel:
		return "unsupported_model"
	case KindExtraction:
		return "extraction"
	default:
		return "unknown"
	}
}

// Sentinels matched by the typed errors through errors.Is.
var (
	ErrTransport        = errors.New("llm: transport failure")
	ErrUnsupportedModel = errors.New("llm: unsupported model")
	ErrExtraction       = errors.New("llm: extraction failure")
)

var (
	errNoChoices = errors.New("response contained no choices")
	errMalformed = errors.New("response is not valid JSON")
)

// maxBodyInMessage caps how much of a raw body Error() repeats.
const maxBodyInMessage = 512

// TransportError reports a failed call: the request never completed, the
// server answered with a non-200 status, or the body could not be unwrapped.
type TransportError struct {
	Provider string
	Model    string

	// StatusCode is zero when no HTTP response was received.
	StatusCode int

	// Body is the raw response body, when there was one.
	Body string

	Err error
}

func (e *TransportError) Error() string {
	prefix := e.Provider
	if e.Model != "" {
		prefix += " (" + e.Model + ")"
	}
	switch {
	case e.StatusCode != 0 && e.StatusCode != http.StatusOK:
		return fmt.Sprintf("%s: status %d: %s", prefix, e.StatusCode, clip(e.Body))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	default:
		return prefix + ": transport failure"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransport) match any TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Kind returns KindTransport.
func (e *TransportError) Kind() Kind { return KindTransport }

// UnsupportedModelError is returned by Dispatch for names it does not know.
type UnsupportedModelError struct {
	Name string
}

func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("model %q is not supported", e.Name)
}

// Is lets errors.Is(err, ErrUnsupportedModel) match.
func (e *UnsupportedModelError) Is(target error) bool { return target == ErrUnsupportedModel }

// Kind returns KindUnsupportedModel.
func (e *UnsupportedModelError) Kind() Kind { return KindUnsupportedModel }

// ExtractionError reports that an answer did not contain the expected
// fenced code block.
type ExtractionError struct {
	// Lang is the fence language tag that was searched for.
	Lang string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no ```%s code block found in answer", e.Lang)
}

// Is lets errors.Is(err, ErrExtraction) match.
func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

// Kind returns KindExtraction.
func (e *ExtractionError) Kind() Kind { return KindExtraction }

// KindOf returns the Kind of the first error in err's chain that carries one.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

func clip(s string) string {
	if len(s) <= maxBodyInMessage {
		return s
	}
	return s[:maxBodyInMessage] + "..."
}
