// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"slices"
)

// Media types derived from extracted numbering.
const (
	TypeMovie = "movie"
	TypeShow  = "show"
)

// Attributes is everything extracted from one release title. Values are
// produced by Parse and must be treated as read-only; slices may be shared
// with the parser cache.
type Attributes struct {
	RawTitle        string `json:"raw_title"`
	ParsedTitle     string `json:"parsed_title"`
	NormalizedTitle string `json:"normalized_title"`
	ReleaseType     string `json:"release_type,omitempty"`

	Year       int      `json:"year,omitempty"`
	Resolution string   `json:"resolution,omitempty"`
	Quality    string   `json:"quality,omitempty"`
	Codec      string   `json:"codec,omitempty"`
	Audio      []string `json:"audio,omitempty"`
	Channels   []string `json:"channels,omitempty"`
	HDR        []string `json:"hdr,omitempty"`
	BitDepth   string   `json:"bit_depth,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Seasons    []int    `json:"seasons"`
	Episodes   []int    `json:"episodes"`

	Trash         bool `json:"trash"`
	Adult         bool `json:"adult"`
	Complete      bool `json:"complete"`
	MultiAudio    bool `json:"multi_audio"`
	MultiSubtitle bool `json:"multi_subtitle"`
	Is4K          bool `json:"is_4k"`

	Remux       bool `json:"remux,omitempty"`
	Proper      bool `json:"proper,omitempty"`
	Repack      bool `json:"repack,omitempty"`
	Retail      bool `json:"retail,omitempty"`
	Upscaled    bool `json:"upscaled,omitempty"`
	Converted   bool `json:"converted,omitempty"`
	Documentary bool `json:"documentary,omitempty"`
	Dubbed      bool `json:"dubbed,omitempty"`
	Subbed      bool `json:"subbed,omitempty"`
	Hardcoded   bool `json:"hardcoded,omitempty"`
	ThreeD      bool `json:"3d,omitempty"`
	Extended    bool `json:"extended,omitempty"`
	Unrated     bool `json:"unrated,omitempty"`
	Remastered  bool `json:"remastered,omitempty"`
	Scene       bool `json:"scene,omitempty"`

	Edition   string `json:"edition,omitempty"`
	Network   string `json:"network,omitempty"`
	Site      string `json:"site,omitempty"`
	Size      string `json:"size,omitempty"`
	Group     string `json:"group,omitempty"`
	Region    string `json:"region,omitempty"`
	Container string `json:"container,omitempty"`
}

// SizeKey marks titles that embed a file size. It only affects ranking.
var SizeKey = AttributeKey{Category: CategoryTrash, Key: "size"}

// Type returns "show" when any season or episode was extracted, otherwise "movie".
func (a Attributes) Type() string {
	if len(a.Seasons) == 0 && len(a.Episodes) == 0 {
		return TypeMovie
	}
	return TypeShow
}

// HasLanguage reports whether code is among the detected languages.
func (a Attributes) HasLanguage(code string) bool {
	return slices.Contains(a.Languages, code)
}

// ResolutionKey returns the resolution acceptance key, or false when no
// resolution was detected.
func (a Attributes) ResolutionKey() (string, bool) {
	return ResolutionKey(a.Resolution)
}

// Keys lists the attribute keys of every recognised label in the release, in
// a stable order: quality tier, codec, audio formats, channel layouts, HDR
// tags, bit depth, then boolean extras. Multi-valued attributes contribute
// one key per value. Unrecognised labels are skipped.
func (a Attributes) Keys() []AttributeKey {
	keys := make([]AttributeKey, 0, 8)

	if k, ok := QualityKey(a.Quality); ok {
		keys = append(keys, k)
	} else if a.Quality == "" && a.Remux {
		keys = append(keys, key(CategoryQuality, "remux"))
	}
	if k, ok := CodecKey(a.Codec); ok {
		keys = append(keys, k)
	}
	for _, label := range a.Audio {
		if k, ok := AudioKey(label); ok {
			keys = append(keys, k)
		}
	}
	for _, label := range a.Channels {
		if k, ok := ChannelKey(label); ok {
			keys = append(keys, k)
		}
	}
	for _, label := range a.HDR {
		if k, ok := HDRKey(label); ok {
			keys = append(keys, k)
		}
	}
	if k, ok := BitDepthKey(a.BitDepth); ok {
		keys = append(keys, k)
	}

	return append(keys, a.extraKeys()...)
}

func (a Attributes) extraKeys() []AttributeKey {
	flags := []struct {
		present bool
		key     AttributeKey
	}{
		{a.ThreeD, key(CategoryExtras, "3d")},
		{a.Converted, key(CategoryExtras, "converted")},
		{a.Documentary, key(CategoryExtras, "documentary")},
		{a.Dubbed, key(CategoryExtras, "dubbed")},
		{a.Edition != "", key(CategoryExtras, "edition")},
		{a.Hardcoded, key(CategoryExtras, "hardcoded")},
		{a.Network != "", key(CategoryExtras, "network")},
		{a.Proper, key(CategoryExtras, "proper")},
		{a.Repack, key(CategoryExtras, "repack")},
		{a.Retail, key(CategoryExtras, "retail")},
		{a.Scene, key(CategoryExtras, "scene")},
		{a.Site != "", key(CategoryExtras, "site")},
		{a.Subbed, key(CategoryExtras, "subbed")},
		{a.Upscaled, key(CategoryExtras, "upscaled")},
		{a.Size != "", SizeKey},
	}

	var keys []AttributeKey
	for _, f := range flags {
		if f.present {
			keys = append(keys, f.key)
		}
	}
	return keys
}
