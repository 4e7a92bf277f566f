// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import "unique"

// Intern returns the canonical copy of s. Parsed labels such as "1080p",
// "BluRay" or "Atmos" repeat across every release in a batch, so interned
// labels share one backing array.
func Intern(s string) string {
	if s == "" {
		return ""
	}
	return unique.Make(s).Value()
}

// InternAll returns a new slice holding the interned values of labels.
// A nil or empty input yields nil.
func InternAll(labels []string) []string {
	if len(labels) == 0 {
		return nil
	}
	out := make([]string, len(labels))
	for i, s := range labels {
		out[i] = Intern(s)
	}
	return out
}
