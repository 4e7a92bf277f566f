// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/autobrr/rtn/internal/domain"
)

// SettingsVersion is the settings document version written by this build.
// Documents with a different major version are rejected.
const SettingsVersion = "1.0.0"

const DefaultProfile = "default"

// Resolutions is the resolution acceptance map.
type Resolutions struct {
	R2160p  bool `json:"2160p" yaml:"2160p"`
	R1080p  bool `json:"1080p" yaml:"1080p"`
	R720p   bool `json:"720p" yaml:"720p"`
	R480p   bool `json:"480p" yaml:"480p"`
	R360p   bool `json:"360p" yaml:"360p"`
	Unknown bool `json:"unknown" yaml:"unknown"`
}

// Allowed reports whether releases in the resolution bucket key may be
// fetched. The second result is false for keys outside the map.
func (r Resolutions) Allowed(key string) (allowed bool, known bool) {
	switch key {
	case "2160p":
		return r.R2160p, true
	case "1080p":
		return r.R1080p, true
	case "720p":
		return r.R720p, true
	case "480p":
		return r.R480p, true
	case "360p":
		return r.R360p, true
	case "unknown":
		return r.Unknown, true
	}
	return false, false
}

// Options are the global switches of a settings profile.
type Options struct {
	TitleSimilarity         float64 `json:"title_similarity" yaml:"title_similarity"`
	RemoveAllTrash          bool    `json:"remove_all_trash" yaml:"remove_all_trash"`
	RemoveRanksUnder        int     `json:"remove_ranks_under" yaml:"remove_ranks_under"`
	RemoveUnknownLanguages  bool    `json:"remove_unknown_languages" yaml:"remove_unknown_languages"`
	AllowEnglishInLanguages bool    `json:"allow_english_in_languages" yaml:"allow_english_in_languages"`
	RemoveAdultContent      bool    `json:"remove_adult_content" yaml:"remove_adult_content"`
}

// LanguagePolicy entries are language codes or group names (anime, common,
// non_anime, all).
type LanguagePolicy struct {
	Required  []string `json:"required" yaml:"required"`
	Exclude   []string `json:"exclude" yaml:"exclude"`
	Preferred []string `json:"preferred" yaml:"preferred"`
}

// Settings is a complete ranking and filtering profile. It is built once,
// validated, and then only read.
type Settings struct {
	Profile     string         `json:"profile" yaml:"profile"`
	Version     string         `json:"version,omitempty" yaml:"version,omitempty"`
	Require     []Pattern      `json:"require" yaml:"require"`
	Exclude     []Pattern      `json:"exclude" yaml:"exclude"`
	Preferred   []Pattern      `json:"preferred" yaml:"preferred"`
	Resolutions Resolutions    `json:"resolutions" yaml:"resolutions"`
	Options     Options        `json:"options" yaml:"options"`
	Languages   LanguagePolicy `json:"languages" yaml:"languages"`
	CustomRanks CustomRanks    `json:"custom_ranks" yaml:"custom_ranks"`
}

// DefaultSettings returns the stock profile.
func DefaultSettings() *Settings {
	return &Settings{
		Profile:   DefaultProfile,
		Version:   SettingsVersion,
		Require:   []Pattern{},
		Exclude:   []Pattern{},
		Preferred: []Pattern{},
		Resolutions: Resolutions{
			R2160p:  false,
			R1080p:  true,
			R720p:   true,
			R480p:   false,
			R360p:   false,
			Unknown: true,
		},
		Options: Options{
			TitleSimilarity:         0.85,
			RemoveAllTrash:          true,
			RemoveRanksUnder:        -10000,
			RemoveUnknownLanguages:  false,
			AllowEnglishInLanguages: false,
			RemoveAdultContent:      true,
		},
		Languages: LanguagePolicy{
			Required:  []string{},
			Exclude:   []string{LanguageGroupCommon},
			Preferred: []string{},
		},
		CustomRanks: DefaultCustomRanks(),
	}
}

// Validate checks everything that cannot be enforced by the types alone.
// Pattern syntax is checked when patterns are parsed.
func (s *Settings) Validate() error {
	if s == nil {
		return domain.NewInvalidConfiguration("settings", errors.New("settings are nil"))
	}

	if t := s.Options.TitleSimilarity; t < 0 || t > 1 {
		return domain.NewInvalidConfiguration("options.title_similarity",
			fmt.Errorf("%v is outside [0, 1]", t))
	}

	for field, entries := range map[string][]string{
		"languages.required":  s.Languages.Required,
		"languages.exclude":   s.Languages.Exclude,
		"languages.preferred": s.Languages.Preferred,
	} {
		for _, entry := range entries {
			if err := validateLanguage(entry); err != nil {
				return domain.NewInvalidConfiguration(field, err)
			}
		}
	}

	for field, patterns := range map[string][]Pattern{
		"require":   s.Require,
		"exclude":   s.Exclude,
		"preferred": s.Preferred,
	} {
		for i, p := range patterns {
			if p.re == nil {
				return domain.NewInvalidConfiguration(fmt.Sprintf("%s[%d]", field, i), errors.New("pattern is not compiled"))
			}
		}
	}

	if s.Version != "" {
		if err := checkVersion(s.Version); err != nil {
			return domain.NewInvalidConfiguration("version", err)
		}
	}
	return nil
}

func checkVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("parse %q: %w", v, err)
	}
	supported := semver.MustParse(SettingsVersion)
	if version.Major() != supported.Major() {
		return fmt.Errorf("version %s is not compatible with %s", version, supported)
	}
	return nil
}

// MatchRequire returns the first require pattern matching title.
func (s *Settings) MatchRequire(title string) (Pattern, bool) {
	return matchAnyPattern(s.Require, title)
}

// MatchExclude returns the first exclude pattern matching title.
func (s *Settings) MatchExclude(title string) (Pattern, bool) {
	return matchAnyPattern(s.Exclude, title)
}

// MatchExcludeAll returns every exclude pattern matching title.
func (s *Settings) MatchExcludeAll(title string) []Pattern {
	var out []Pattern
	for _, p := range s.Exclude {
		if p.MatchString(title) {
			out = append(out, p)
		}
	}
	return out
}

// MatchPreferred reports whether any preferred pattern matches title.
func (s *Settings) MatchPreferred(title string) bool {
	_, ok := matchAnyPattern(s.Preferred, title)
	return ok
}

// ExcludedLanguages returns the expanded exclusion set.
func (s *Settings) ExcludedLanguages() []string {
	return ExpandLanguages(s.Languages.Exclude)
}

// RequiredLanguages returns the expanded required set.
func (s *Settings) RequiredLanguages() []string {
	return ExpandLanguages(s.Languages.Required)
}

// PreferredLanguages returns the expanded preferred set.
func (s *Settings) PreferredLanguages() []string {
	return ExpandLanguages(s.Languages.Preferred)
}
