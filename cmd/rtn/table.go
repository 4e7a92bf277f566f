// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"encoding/json"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one rendered column. A positive maxWidth trims longer
// cells with an ellipsis instead of wrapping them.
type column struct {
	header   string
	align    text.Align
	maxWidth int
}

var (
	fieldColumns = []column{
		{header: "Field"},
		{header: "Value", maxWidth: 100},
	}
	breakdownColumns = []column{
		{header: "Attribute"},
		{header: "Points", align: text.AlignRight},
	}
	batchColumns = []column{
		{header: "Title", maxWidth: 70},
		{header: "Resolution"},
		{header: "Rank", align: text.AlignRight},
		{header: "Fetch"},
		{header: "Failed keys"},
	}
	keyColumns = []column{
		{header: "Key"},
		{header: "Fetch"},
		{header: "Override", align: text.AlignRight},
		{header: "Weight", align: text.AlignRight},
	}
)

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.header
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.align,
			AlignHeader: text.AlignLeft,
		}
		if c.maxWidth > 0 {
			configs[i].WidthMax = c.maxWidth
			configs[i].WidthMaxEnforcer = trimCell
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// trimCell shortens s to maxLen runes, ending in "...".
func trimCell(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 3 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// keyValueTable renders a two column property table.
func keyValueTable(rows [][]string) string {
	return renderTable(fieldColumns, rows)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
