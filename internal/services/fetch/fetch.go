// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package fetch decides whether a release satisfies a settings profile.
//
// Gates run in a fixed order: trash, adult content, required patterns,
// excluded patterns, languages, then per-attribute policy. A required
// pattern match accepts the release outright but never bypasses the
// trash and adult gates, which always run first.
package fetch

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/autobrr/rtn/internal/domain"
	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/releases"
)

// Violated keys that are not attribute keys.
const (
	KeyTrashQuality    = "trash_quality"
	KeyTrashAudio      = "trash_audio"
	KeyTrashFlag       = "trash_flag"
	KeyTrashAdult      = "trash_adult"
	KeyUnknownLanguage = "unknown_language"
)

// Mode selects how much diagnostic detail a rejection carries.
type Mode uint8

const (
	// ModeFast stops at the first failing check.
	ModeFast Mode = iota
	// ModeCollect records every failing check of the deciding stage and the
	// later non-decisive stages.
	ModeCollect
)

// Result is the outcome of a fetch decision. Keys is empty if and only if
// Accepted is true.
type Result struct {
	Accepted bool     `json:"accepted"`
	Keys     []string `json:"violated_keys"`
}

type decision struct {
	mode Mode
	keys []string
}

func (d *decision) reject(key string) {
	if !slices.Contains(d.keys, key) {
		d.keys = append(d.keys, key)
	}
}

func (d *decision) rejected() bool {
	return len(d.keys) > 0
}

// stop reports whether evaluation can end after the current check.
func (d *decision) stop() bool {
	return d.mode == ModeFast && d.rejected()
}

func (d *decision) result() Result {
	if !d.rejected() {
		return Result{Accepted: true, Keys: []string{}}
	}
	return Result{Accepted: false, Keys: d.keys}
}

// Decide evaluates attrs against settings. It never mutates either.
func Decide(attrs *releases.Attributes, settings *models.Settings, mode Mode) Result {
	d := &decision{mode: mode}

	if settings.Options.RemoveAllTrash {
		checkTrash(d, attrs)
		if d.rejected() {
			return d.logged(attrs, "trash")
		}
	}

	if settings.Options.RemoveAdultContent && attrs.Adult {
		d.reject(KeyTrashAdult)
		return d.logged(attrs, "adult")
	}

	if p, ok := settings.MatchRequire(attrs.RawTitle); ok {
		log.Trace().Str("title", attrs.RawTitle).Str("pattern", p.String()).Msg("fetch: accepted by required pattern")
		return d.result()
	}

	checkExclude(d, attrs, settings)
	if d.stop() {
		return d.logged(attrs, "exclude")
	}

	checkLanguages(d, attrs, settings)
	if d.stop() {
		return d.logged(attrs, "language")
	}

	checkAttributes(d, attrs, settings)
	if d.rejected() {
		return d.logged(attrs, "attributes")
	}
	return d.result()
}

// Check is the strict form of Decide: a rejection is returned as a
// *domain.UnacceptableReleaseError carrying every violated key.
func Check(attrs *releases.Attributes, settings *models.Settings) error {
	res := Decide(attrs, settings, ModeCollect)
	if res.Accepted {
		return nil
	}
	return domain.NewUnacceptableRelease(attrs.RawTitle, res.Keys)
}

func (d *decision) logged(attrs *releases.Attributes, stage string) Result {
	log.Debug().
		Str("title", attrs.RawTitle).
		Str("stage", stage).
		Strs("keys", d.keys).
		Msg("fetch: release rejected")
	return d.result()
}

func checkTrash(d *decision, attrs *releases.Attributes) {
	if releases.IsTrashQuality(attrs.Quality) {
		d.reject(KeyTrashQuality)
		if d.stop() {
			return
		}
	}
	for _, label := range attrs.Audio {
		if k, ok := releases.AudioKey(label); ok && k.Category == releases.CategoryTrash {
			d.reject(KeyTrashAudio)
			if d.stop() {
				return
			}
			break
		}
	}
	if attrs.Trash {
		d.reject(KeyTrashFlag)
	}
}

func checkExclude(d *decision, attrs *releases.Attributes, settings *models.Settings) {
	if d.mode == ModeFast {
		if p, ok := settings.MatchExclude(attrs.RawTitle); ok {
			d.reject(excludeKey(p))
		}
		return
	}
	for _, p := range settings.MatchExcludeAll(attrs.RawTitle) {
		d.reject(excludeKey(p))
	}
}

func excludeKey(p models.Pattern) string {
	return "exclude_regex '" + p.String() + "'"
}

func checkLanguages(d *decision, attrs *releases.Attributes, settings *models.Settings) {
	if len(attrs.Languages) == 0 {
		if settings.Options.RemoveUnknownLanguages {
			d.reject(KeyUnknownLanguage)
		}
		return
	}

	for _, lang := range settings.RequiredLanguages() {
		if attrs.HasLanguage(lang) {
			return
		}
	}
	if settings.Options.AllowEnglishInLanguages && attrs.HasLanguage("en") {
		return
	}

	excluded := settings.ExcludedLanguages()
	for _, lang := range attrs.Languages {
		if _, found := slices.BinarySearch(excluded, lang); found {
			d.reject("lang_" + lang)
			if d.stop() {
				return
			}
		}
	}
}

func checkAttributes(d *decision, attrs *releases.Attributes, settings *models.Settings) {
	if key, ok := attrs.ResolutionKey(); ok {
		if allowed, known := settings.Resolutions.Allowed(key); known && !allowed {
			d.reject(string(releases.CategoryResolution) + "_" + key)
			if d.stop() {
				return
			}
		}
	}

	for _, k := range attrs.Keys() {
		// Embedded sizes only lower the rank.
		if k == releases.SizeKey {
			continue
		}
		if rank, ok := settings.CustomRanks.Get(k); ok && !rank.Fetch {
			d.reject(k.String())
			if d.stop() {
				return
			}
		}
	}
}
