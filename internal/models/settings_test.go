// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rtn/internal/domain"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	require.NoError(t, s.Validate())

	assert.Equal(t, DefaultProfile, s.Profile)
	assert.InDelta(t, 0.85, s.Options.TitleSimilarity, 1e-9)
	assert.True(t, s.Options.RemoveAllTrash)
	assert.Equal(t, -10000, s.Options.RemoveRanksUnder)
	assert.True(t, s.Options.RemoveAdultContent)
	assert.Equal(t, []string{"common"}, s.Languages.Exclude)

	for key, want := range map[string]bool{
		"2160p": false, "1080p": true, "720p": true, "480p": false, "360p": false, "unknown": true,
	} {
		allowed, known := s.Resolutions.Allowed(key)
		assert.True(t, known, key)
		assert.Equal(t, want, allowed, key)
	}
	_, known := s.Resolutions.Allowed("8k")
	assert.False(t, known)
}

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"threshold above one", func(s *Settings) { s.Options.TitleSimilarity = 1.5 }, "options.title_similarity"},
		{"negative threshold", func(s *Settings) { s.Options.TitleSimilarity = -0.1 }, "options.title_similarity"},
		{"bad language", func(s *Settings) { s.Languages.Exclude = []string{"common", "klingon!"} }, "languages.exclude"},
		{"empty language", func(s *Settings) { s.Languages.Preferred = []string{""} }, "languages.preferred"},
		{"uncompiled pattern", func(s *Settings) { s.Require = []Pattern{{}} }, "require[0]"},
		{"bad version", func(s *Settings) { s.Version = "one" }, "version"},
		{"future major", func(s *Settings) { s.Version = "2.0.0" }, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := DefaultSettings()
			tt.mutate(s)

			err := s.Validate()
			require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

			var cfgErr *domain.InvalidConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	var nilSettings *Settings
	require.ErrorIs(t, nilSettings.Validate(), domain.ErrInvalidConfiguration)
}

func TestSettings_ValidateAcceptsCompatibleVersions(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "1.0.0", "1.4.2", "v1.1"} {
		s := DefaultSettings()
		s.Version = v
		assert.NoError(t, s.Validate(), v)
	}
}

func TestSettings_PatternMatching(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	var err error
	s.Require, err = ParsePatterns(`\b2160p\b`)
	require.NoError(t, err)
	s.Exclude, err = ParsePatterns("/HDTV/", "x265")
	require.NoError(t, err)
	s.Preferred, err = ParsePatterns("/REMUX/i")
	require.NoError(t, err)

	p, ok := s.MatchRequire("Movie.2020.2160p.WEB-DL")
	require.True(t, ok)
	assert.Equal(t, `\b2160p\b`, p.String())

	_, ok = s.MatchExclude("movie.hdtv.x264")
	assert.False(t, ok, "case-sensitive exclude must not match lowercase")

	matched := s.MatchExcludeAll("Movie.HDTV.X265")
	require.Len(t, matched, 2)
	assert.Equal(t, "/HDTV/", matched[0].String())

	assert.True(t, s.MatchPreferred("movie.remux.1080p"))
	assert.False(t, s.MatchPreferred("movie.web.1080p"))
}

func TestSettings_LanguageSets(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.Languages.Required = []string{"EN"}
	s.Languages.Preferred = []string{"anime"}

	assert.Contains(t, s.ExcludedLanguages(), "fr")
	assert.Equal(t, []string{"en"}, s.RequiredLanguages())
	assert.Equal(t, []string{"ja", "ko", "zh"}, s.PreferredLanguages())
}
