// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/davetashner/chatcall/internal/llm"
)

// Exit codes for the chatcall CLI.
const (
	ExitOK               = 0 // Answer received and handled.
	ExitInvalidArgs      = 1 // Invalid arguments, unreadable input, or bad config.
	ExitTransport        = 2 // The provider call failed.
	ExitExtraction       = 3 // The answer held no code block in the requested language.
	ExitUnsupportedModel = 4 // The model name is not recognized.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
	err  error
}

func (e *exitCodeError) Error() string { return e.msg }

// Unwrap exposes the underlying error, if any.
func (e *exitCodeError) Unwrap() error { return e.err }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitTransport:
			msg = "chatcall: model call failed"
		case ExitExtraction:
			msg = "chatcall: no code block in answer"
		case ExitUnsupportedModel:
			msg = "chatcall: unsupported model"
		default:
			msg = "chatcall: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// exitFor wraps err with the exit code matching its llm.Kind. Errors of
// unknown kind map to ExitInvalidArgs.
func exitFor(err error) *exitCodeError {
	code := ExitInvalidArgs
	switch llm.KindOf(err) {
	case llm.KindTransport:
		code = ExitTransport
	case llm.KindExtraction:
		code = ExitExtraction
	case llm.KindUnsupportedModel:
		code = ExitUnsupportedModel
	}
	return &exitCodeError{code: code, msg: "chatcall: " + err.Error(), err: err}
}
