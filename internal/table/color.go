// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

package table

import "github.com/fatih/color"

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
)

// ColorYesNo colors "yes" green and "no" yellow.
func ColorYesNo(val string) string {
	switch val {
	case "yes":
		return colorGreen.Sprint(val)
	case "no":
		return colorYellow.Sprint(val)
	default:
		return val
	}
}

// ColorKeyStatus colors the credential column of the models listing.
func ColorKeyStatus(val string) string {
	switch val {
	case "set":
		return colorGreen.Sprint(val)
	case "missing":
		return colorRed.Sprint(val)
	default:
		return val
	}
}
