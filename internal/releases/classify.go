// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"strings"

	"github.com/autobrr/rtn/internal/domain"
)

// Classification holds the boolean and tag attributes detected directly from
// a raw title by pattern tables.
type Classification struct {
	Trash         bool   `json:"trash"`
	Adult         bool   `json:"adult"`
	Complete      bool   `json:"complete"`
	MultiAudio    bool   `json:"multi_audio"`
	MultiSubtitle bool   `json:"multi_subtitle"`
	HDR           string `json:"hdr,omitempty"`
	Is4K          bool   `json:"is_4k"`
}

// Classify runs every classifier over title.
func Classify(title string) (Classification, error) {
	if strings.TrimSpace(title) == "" {
		return Classification{}, domain.NewInvalidInput("title", "must not be empty")
	}

	return Classification{
		Trash:         IsTrash(title),
		Adult:         IsAdult(title),
		Complete:      IsComplete(title),
		MultiAudio:    IsMultiAudio(title),
		MultiSubtitle: IsMultiSubtitle(title),
		HDR:           HDRTag(title),
		Is4K:          Is4K(title),
	}, nil
}

// IsTrash reports whether the title carries a low-quality marker such as CAM,
// TeleSync, screeners, trailers or non-video extensions.
func IsTrash(title string) bool {
	return matchAny(trashPatterns, title)
}

// IsComplete reports whether the title looks like a complete series, box set or collection.
func IsComplete(title string) bool {
	return matchAny(completePatterns, title)
}

func IsMultiAudio(title string) bool {
	return matchAny(multiAudioPatterns, title)
}

func IsMultiSubtitle(title string) bool {
	return matchAny(multiSubtitlePatterns, title)
}

// HDRTag returns "DV", "HDR10+" or "HDR" in that priority, or "" when none match.
func HDRTag(title string) string {
	for _, p := range hdrTagPatterns {
		if matches(p.re, title) {
			return p.tag
		}
	}
	return ""
}

func Is4K(title string) bool {
	return matches(fourKPattern, title)
}
