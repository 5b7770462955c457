// Copyright 2026 The Chatcall Authors
// SPDX-License-Identifier: MIT

// Package table renders the aligned listings printed by the CLI.
package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// Placeholder stands in for empty cells.
const Placeholder = "-"

// ColorFunc maps a cell value to a colored string.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table collects rows and writes them with computed column widths.
type Table struct {
	columns []Column
	rows    [][]string
}

// New creates a table with the given columns.
func New(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Extra values are dropped and missing or empty
// values render as Placeholder.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		row[i] = Placeholder
		if i < len(values) && values[i] != "" {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Len reports the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the header, a dash separator and every row to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = width(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], width(cell))
		}
	}

	bold := color.New(color.Bold)
	header := make([]string, len(t.columns))
	dashes := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = pad(col.Header, bold.Sprint(col.Header), widths[i], col.Align)
		dashes[i] = strings.Repeat("-", widths[i])
	}
	if err := writeLine(w, header); err != nil {
		return err
	}
	if err := writeLine(w, dashes); err != nil {
		return err
	}

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			display := row[i]
			if col.Color != nil && row[i] != Placeholder {
				display = col.Color(row[i])
			}
			cells[i] = pad(row[i], display, widths[i], col.Align)
		}
		if err := writeLine(w, cells); err != nil {
			return err
		}
	}
	return nil
}

// width counts runes so CJK model names line up in monospace terminals
// that render them at single width.
func width(s string) int { return utf8.RuneCountInString(s) }

// pad justifies display using the length of the uncolored raw value.
func pad(raw, display string, w int, align Alignment) string {
	n := max(w-width(raw), 0)
	if align == AlignRight {
		return strings.Repeat(" ", n) + display
	}
	return display + strings.Repeat(" ", n)
}

func writeLine(w io.Writer, cells []string) error {
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
