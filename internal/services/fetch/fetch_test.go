// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rtn/internal/domain"
	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/releases"
)

func settingsWith(t *testing.T, mutate func(*models.Settings)) *models.Settings {
	t.Helper()
	s := models.DefaultSettings()
	if mutate != nil {
		mutate(s)
	}
	require.NoError(t, s.Validate())
	return s
}

func mustPatterns(t *testing.T, srcs ...string) []models.Pattern {
	t.Helper()
	p, err := models.ParsePatterns(srcs...)
	require.NoError(t, err)
	return p
}

func TestDecide_Accepts(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{
		RawTitle:   "The.Walking.Dead.S05E03.720p.WEB-DL.AAC.x264-ASAP",
		Resolution: "720p",
		Quality:    "WEB-DL",
		Codec:      "avc",
		Audio:      []string{"AAC"},
		Languages:  []string{"en"},
	}

	for _, mode := range []Mode{ModeFast, ModeCollect} {
		res := Decide(attrs, settingsWith(t, nil), mode)
		assert.True(t, res.Accepted)
		assert.Empty(t, res.Keys)
		assert.NotNil(t, res.Keys)
	}
}

func TestDecide_TrashQuality(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{RawTitle: "Some.Movie.2024", Quality: "CAM"}
	res := Decide(attrs, settingsWith(t, nil), ModeFast)
	assert.False(t, res.Accepted)
	assert.Equal(t, []string{KeyTrashQuality}, res.Keys)
}

func TestDecide_TrashCollectsEveryReason(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{
		RawTitle: "Some.Movie.2024.CAM",
		Quality:  "CAM",
		Audio:    []string{"HQ Clean Audio"},
		Trash:    true,
	}
	s := settingsWith(t, func(s *models.Settings) {
		s.Require = mustPatterns(t, "Some")
	})

	res := Decide(attrs, s, ModeCollect)
	assert.False(t, res.Accepted)
	assert.Equal(t, []string{KeyTrashQuality, KeyTrashAudio, KeyTrashFlag}, res.Keys)

	res = Decide(attrs, s, ModeFast)
	assert.Equal(t, []string{KeyTrashQuality}, res.Keys)
}

func TestDecide_TrashDisabledFallsBackToAttributePolicy(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{RawTitle: "Some.Movie.2024.CAM", Quality: "CAM", Trash: true}
	s := settingsWith(t, func(s *models.Settings) { s.Options.RemoveAllTrash = false })

	res := Decide(attrs, s, ModeCollect)
	assert.False(t, res.Accepted)
	assert.Equal(t, []string{"trash_cam"}, res.Keys)
}

func TestDecide_Adult(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{RawTitle: "Studio.Scene.XXX.1080p", Adult: true, Resolution: "1080p"}
	s := settingsWith(t, func(s *models.Settings) { s.Require = mustPatterns(t, "1080p") })

	res := Decide(attrs, s, ModeFast)
	assert.False(t, res.Accepted)
	assert.Equal(t, []string{KeyTrashAdult}, res.Keys)

	s.Options.RemoveAdultContent = false
	res = Decide(attrs, s, ModeFast)
	assert.True(t, res.Accepted)
}

func TestDecide_RequireOverridesLaterStages(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{
		RawTitle:   "Movie.2024.2160p.REMUX.FRENCH",
		Resolution: "2160p",
		Quality:    "REMUX",
		Languages:  []string{"fr"},
	}

	s := settingsWith(t, func(s *models.Settings) {
		s.Exclude = mustPatterns(t, "REMUX")
	})
	res := Decide(attrs, s, ModeCollect)
	require.False(t, res.Accepted)
	assert.Equal(t, []string{"exclude_regex 'REMUX'", "lang_fr", "resolution_2160p", "quality_remux"}, res.Keys)

	s.Require = mustPatterns(t, `/\b2160p\b/`)
	res = Decide(attrs, s, ModeCollect)
	assert.True(t, res.Accepted)
	assert.Empty(t, res.Keys)
}

func TestDecide_ExcludePatterns(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{RawTitle: "Movie.2024.1080p.HDTV.x265", Resolution: "1080p"}
	s := settingsWith(t, func(s *models.Settings) {
		s.Exclude = mustPatterns(t, "/HDTV/", "x265", "/x264/")
	})

	res := Decide(attrs, s, ModeFast)
	assert.Equal(t, []string{"exclude_regex '/HDTV/'"}, res.Keys)

	res = Decide(attrs, s, ModeCollect)
	assert.Equal(t, []string{"exclude_regex '/HDTV/'", "exclude_regex 'x265'"}, res.Keys)
}

func TestDecide_Languages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		languages []string
		mutate    func(*models.Settings)
		accepted  bool
		keys      []string
	}{
		{
			name:     "unknown allowed by default",
			accepted: true,
		},
		{
			name:   "unknown removed",
			mutate: func(s *models.Settings) { s.Options.RemoveUnknownLanguages = true },
			keys:   []string{KeyUnknownLanguage},
		},
		{
			name:      "common group excludes french",
			languages: []string{"fr"},
			keys:      []string{"lang_fr"},
		},
		{
			name:      "every excluded language is reported",
			languages: []string{"de", "en", "fr"},
			keys:      []string{"lang_de", "lang_fr"},
		},
		{
			name:      "english allowance",
			languages: []string{"en", "fr"},
			mutate:    func(s *models.Settings) { s.Options.AllowEnglishInLanguages = true },
			accepted:  true,
		},
		{
			name:      "required language overrides exclusion",
			languages: []string{"fr", "it"},
			mutate:    func(s *models.Settings) { s.Languages.Required = []string{"fr"} },
			accepted:  true,
		},
		{
			name:      "anime group",
			languages: []string{"ja"},
			mutate:    func(s *models.Settings) { s.Languages.Exclude = []string{"anime"} },
			keys:      []string{"lang_ja"},
		},
		{
			name:      "not excluded",
			languages: []string{"pt"},
			accepted:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attrs := &releases.Attributes{RawTitle: "Movie.2024", Languages: tt.languages}
			res := Decide(attrs, settingsWith(t, tt.mutate), ModeCollect)
			assert.Equal(t, tt.accepted, res.Accepted)
			if tt.accepted {
				assert.Empty(t, res.Keys)
			} else {
				assert.Equal(t, tt.keys, res.Keys)
			}
		})
	}
}

func TestDecide_Attributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attrs    releases.Attributes
		mutate   func(*models.Settings)
		accepted bool
		keys     []string
	}{
		{
			name:  "resolution not allowed",
			attrs: releases.Attributes{Resolution: "2160p"},
			keys:  []string{"resolution_2160p"},
		},
		{
			name:     "resolution allowed once enabled",
			attrs:    releases.Attributes{Resolution: "4k"},
			mutate:   func(s *models.Settings) { s.Resolutions.R2160p = true },
			accepted: true,
		},
		{
			name:     "missing resolution is permissive",
			attrs:    releases.Attributes{},
			mutate:   func(s *models.Settings) { s.Resolutions.Unknown = false },
			accepted: true,
		},
		{
			name:   "unrecognised resolution uses unknown",
			attrs:  releases.Attributes{Resolution: "240p"},
			mutate: func(s *models.Settings) { s.Resolutions.Unknown = false },
			keys:   []string{"resolution_unknown"},
		},
		{
			name:  "codec",
			attrs: releases.Attributes{Codec: "av1"},
			keys:  []string{"quality_av1"},
		},
		{
			name:  "audio format and channels",
			attrs: releases.Attributes{Audio: []string{"AAC", "MP3"}, Channels: []string{"mono"}},
			keys:  []string{"audio_mp3", "audio_mono"},
		},
		{
			name:  "extras",
			attrs: releases.Attributes{Upscaled: true, ThreeD: true, Proper: true},
			keys:  []string{"extras_3d", "extras_upscaled"},
		},
		{
			name:     "size never rejects",
			attrs:    releases.Attributes{Size: "700MB"},
			accepted: true,
		},
		{
			name:  "rip tier",
			attrs: releases.Attributes{Quality: "BDRip"},
			keys:  []string{"rips_bdrip"},
		},
		{
			name:     "custom fetch enables remux",
			attrs:    releases.Attributes{Quality: "BluRay REMUX"},
			mutate:   func(s *models.Settings) { s.CustomRanks.Quality.Remux.Fetch = true },
			accepted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attrs := tt.attrs
			attrs.RawTitle = "Synthetic.Release"
			res := Decide(&attrs, settingsWith(t, tt.mutate), ModeCollect)
			assert.Equal(t, tt.accepted, res.Accepted)
			if tt.accepted {
				assert.Empty(t, res.Keys)
			} else {
				assert.Equal(t, tt.keys, res.Keys)
			}
		})
	}
}

func TestDecide_FastModeStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	attrs := &releases.Attributes{
		RawTitle:   "Synthetic.Release",
		Resolution: "2160p",
		Codec:      "av1",
		Upscaled:   true,
	}
	res := Decide(attrs, settingsWith(t, nil), ModeFast)
	assert.Equal(t, []string{"resolution_2160p"}, res.Keys)

	res = Decide(attrs, settingsWith(t, nil), ModeCollect)
	assert.Equal(t, []string{"resolution_2160p", "quality_av1", "extras_upscaled"}, res.Keys)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	s := settingsWith(t, nil)

	require.NoError(t, Check(&releases.Attributes{RawTitle: "Movie.1080p", Resolution: "1080p"}, s))

	err := Check(&releases.Attributes{RawTitle: "Movie.CAM", Quality: "CAM"}, s)
	require.ErrorIs(t, err, domain.ErrUnacceptableRelease)

	var unacceptable *domain.UnacceptableReleaseError
	require.ErrorAs(t, err, &unacceptable)
	assert.Equal(t, "Movie.CAM", unacceptable.Title)
	assert.True(t, unacceptable.HasKey(KeyTrashQuality))
}
