// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Named language groups usable wherever a language code is accepted.
const (
	LanguageGroupAnime    = "anime"
	LanguageGroupCommon   = "common"
	LanguageGroupNonAnime = "non_anime"
	LanguageGroupAll      = "all"
)

var (
	animeLanguages  = []string{"ja", "ko", "zh"}
	commonLanguages = []string{"ar", "de", "es", "fr", "hi", "it", "ru", "ta", "th", "uk", "zh"}
	// non_anime covers common languages outside the anime set plus the long tail
	// release groups tag.
	nonAnimeLanguages = []string{
		"ar", "bg", "cs", "da", "de", "el", "es", "fa", "fi", "fr", "he", "hi", "hr",
		"hu", "id", "it", "lt", "lv", "ms", "nl", "no", "pl", "pt", "ro", "ru", "sk",
		"sl", "sr", "sv", "ta", "te", "th", "tr", "uk", "vi",
	}
)

var languageGroups = map[string][]string{
	LanguageGroupAnime:    animeLanguages,
	LanguageGroupCommon:   commonLanguages,
	LanguageGroupNonAnime: nonAnimeLanguages,
	LanguageGroupAll:      union(animeLanguages, commonLanguages, nonAnimeLanguages),
}

func union(sets ...[]string) []string {
	var out []string
	for _, s := range sets {
		out = append(out, s...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// LanguageGroups returns the group names in sorted order.
func LanguageGroups() []string {
	names := make([]string, 0, len(languageGroups))
	for name := range languageGroups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ExpandLanguages replaces group names with their member codes and returns a
// sorted, duplicate-free set. Codes are lowercased.
func ExpandLanguages(entries []string) []string {
	var out []string
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if members, ok := languageGroups[entry]; ok {
			out = append(out, members...)
			continue
		}
		out = append(out, entry)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// validateLanguage accepts group names and any well-formed, known BCP 47 tag.
func validateLanguage(entry string) error {
	entry = strings.ToLower(strings.TrimSpace(entry))
	if entry == "" {
		return fmt.Errorf("empty language code")
	}
	if _, ok := languageGroups[entry]; ok {
		return nil
	}
	if _, err := language.Parse(entry); err != nil {
		return fmt.Errorf("language %q: %w", entry, err)
	}
	return nil
}
