// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"slices"
	"strconv"
	"strings"

	ptt "github.com/MunifTanjim/go-ptt"
	"github.com/moistari/rls"

	"github.com/autobrr/rtn/internal/domain"
	"github.com/autobrr/rtn/pkg/stringutils"
)

// Parse tokenizes a raw release title and fuses the result with the
// classifiers and the episode/season cascades into one Attributes record.
//
// go-ptt provides the label vocabulary (quality tiers, audio formats, HDR,
// languages). rls fills metadata go-ptt leaves out: release type, site,
// region, edition and cut, and the REMUX/RETAiL style "other" flags.
func Parse(raw string) (Attributes, error) {
	if strings.TrimSpace(raw) == "" {
		return Attributes{}, domain.NewInvalidInput("title", "must not be empty")
	}

	info := ptt.Parse(raw)
	release := rls.ParseString(raw)

	attrs := Attributes{
		RawTitle:    raw,
		ParsedTitle: strings.TrimSpace(info.Title),
		ReleaseType: stringutils.Intern(release.Type.String()),
		Resolution:  stringutils.Intern(info.Resolution),
		Quality:     stringutils.Intern(info.Quality),
		Codec:       NormalizeVideoCodec(info.Codec),
		Audio:       stringutils.InternAll(info.Audio),
		Channels:    stringutils.InternAll(info.Channels),
		HDR:         stringutils.InternAll(info.HDR),
		BitDepth:    stringutils.Intern(info.BitDepth),
		Languages:   stringutils.InternAll(info.Languages),

		Proper:    info.Proper || hasOther(release.Other, "PROPER"),
		Repack:    info.Repack || hasOther(release.Other, "REPACK", "RERiP"),
		Dubbed:    info.Dubbed,
		Hardcoded: info.Hardcoded,
		ThreeD:    info.ThreeD != "",
		Extended:  info.Extended,
		Unrated:   info.Unrated,

		Network:   info.Network,
		Size:      info.Size,
		Group:     firstNonEmpty(info.Group, release.Group),
		Container: firstNonEmpty(info.Container, release.Container),
		Region:    release.Region,
		Site:      release.Site,
	}

	if attrs.ParsedTitle == "" {
		attrs.ParsedTitle = strings.TrimSpace(release.Title)
	}
	attrs.NormalizedTitle = stringutils.NormalizeTitle(attrs.ParsedTitle)

	if year, err := strconv.Atoi(strings.TrimSpace(info.Year)); err == nil {
		attrs.Year = year
	} else if release.Year > 0 {
		attrs.Year = release.Year
	}

	if attrs.Resolution == "" {
		attrs.Resolution = stringutils.Intern(release.Resolution)
	}
	if attrs.Codec == "" && len(release.Codec) > 0 {
		attrs.Codec = NormalizeVideoCodec(release.Codec[0])
	}

	applyClassification(&attrs, raw)
	applyFlags(&attrs, raw, &release)
	applyNumbering(&attrs, raw, info.Seasons, info.Episodes)

	return attrs, nil
}

func applyClassification(attrs *Attributes, raw string) {
	attrs.Trash = IsTrash(raw)
	attrs.Adult = IsAdult(raw)
	attrs.Complete = IsComplete(raw)
	attrs.MultiAudio = IsMultiAudio(raw)
	attrs.MultiSubtitle = IsMultiSubtitle(raw)
	attrs.Is4K = Is4K(raw)

	if tag := HDRTag(raw); tag != "" && !slices.Contains(attrs.HDR, tag) {
		attrs.HDR = append(attrs.HDR, tag)
	}
	if attrs.Resolution == "" && attrs.Is4K {
		attrs.Resolution = "2160p"
	}
}

func applyFlags(attrs *Attributes, raw string, release *rls.Release) {
	attrs.Remux = matches(remuxPattern, raw) || hasOther(release.Other, "REMUX") ||
		strings.Contains(strings.ToUpper(attrs.Quality), "REMUX")
	attrs.Retail = matches(retailPattern, raw) || hasOther(release.Other, "RETAiL")
	attrs.Upscaled = matches(upscaledPattern, raw)
	attrs.Converted = matches(convertedPattern, raw)
	attrs.Documentary = matches(documentaryPattern, raw)
	attrs.Subbed = matches(subbedPattern, raw)
	attrs.Remastered = matches(remasteredPattern, raw) || hasOther(release.Other, "REMASTERED")
	attrs.Scene = matchAny(scenePatterns, raw)

	switch {
	case len(release.Edition) > 0:
		attrs.Edition = strings.Join(release.Edition, " ")
	case len(release.Cut) > 0:
		attrs.Edition = strings.Join(release.Cut, " ")
	default:
		if m, err := editionPattern.FindStringMatch(raw); err == nil && m != nil {
			attrs.Edition = m.String()
		}
	}

	if attrs.Site == "" {
		if m, err := sitePattern.FindStringMatch(raw); err == nil && m != nil {
			attrs.Site = strings.Trim(m.String(), " []-")
		}
	}
}

// applyNumbering prefers the tokenizer's numbering and falls back to the rule
// cascades when it found nothing.
func applyNumbering(attrs *Attributes, raw string, seasons, episodes []int) {
	attrs.Seasons = sortedUnique(seasons)
	if len(attrs.Seasons) == 0 {
		attrs.Seasons = runRules(raw, seasonRules)
	}

	attrs.Episodes = sortedUnique(episodes)
	if len(attrs.Episodes) == 0 {
		attrs.Episodes = runRules(raw, episodeRules)
	}
}

func sortedUnique(in []int) []int {
	out := slices.Clone(in)
	if out == nil {
		return []int{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func hasOther(other []string, values ...string) bool {
	for _, o := range other {
		for _, v := range values {
			if strings.EqualFold(o, v) {
				return true
			}
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
