// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"strings"
)

// Category groups attribute keys the way settings and ranking weights do.
type Category string

const (
	CategoryQuality    Category = "quality"
	CategoryRips       Category = "rips"
	CategoryHDR        Category = "hdr"
	CategoryAudio      Category = "audio"
	CategoryExtras     Category = "extras"
	CategoryTrash      Category = "trash"
	CategoryResolution Category = "resolution"
)

// AttributeKey identifies one rankable attribute, e.g. quality/webdl or audio/atmos.
type AttributeKey struct {
	Category Category
	Key      string
}

func (k AttributeKey) String() string {
	return string(k.Category) + "_" + k.Key
}

// IsZero reports whether the key is the unknown label sentinel.
func (k AttributeKey) IsZero() bool {
	return k.Category == "" && k.Key == ""
}

func key(c Category, k string) AttributeKey {
	return AttributeKey{Category: c, Key: k}
}

// qualityLabels maps the tokenizer's quality tiers to attribute keys.
// Rips and trash tiers live in their own categories.
var qualityLabels = map[string]AttributeKey{
	"WEB":          key(CategoryQuality, "web"),
	"WEB-DL":       key(CategoryQuality, "webdl"),
	"BLURAY":       key(CategoryQuality, "bluray"),
	"HDTV":         key(CategoryQuality, "hdtv"),
	"VHS":          key(CategoryQuality, "vhs"),
	"WEBMUX":       key(CategoryQuality, "webmux"),
	"BLURAY REMUX": key(CategoryQuality, "remux"),
	"REMUX":        key(CategoryQuality, "remux"),
	"DVD":          key(CategoryQuality, "dvd"),

	"WEBRIP":    key(CategoryRips, "webrip"),
	"WEB-DLRIP": key(CategoryRips, "webdlrip"),
	"UHDRIP":    key(CategoryRips, "uhdrip"),
	"HDRIP":     key(CategoryRips, "hdrip"),
	"DVDRIP":    key(CategoryRips, "dvdrip"),
	"BDRIP":     key(CategoryRips, "bdrip"),
	"BRRIP":     key(CategoryRips, "brrip"),
	"VHSRIP":    key(CategoryRips, "vhsrip"),
	"PPVRIP":    key(CategoryRips, "ppvrip"),
	"SATRIP":    key(CategoryRips, "satrip"),
	"TVRIP":     key(CategoryRips, "tvrip"),

	"TELECINE": key(CategoryTrash, "telecine"),
	"TELESYNC": key(CategoryTrash, "telesync"),
	"SCR":      key(CategoryTrash, "screener"),
	"R5":       key(CategoryTrash, "r5"),
	"CAM":      key(CategoryTrash, "cam"),
	"PDTV":     key(CategoryTrash, "pdtv"),
}

// trashQualities are the tiers the trash gate rejects outright.
var trashQualities = map[string]struct{}{
	"CAM":      {},
	"PDTV":     {},
	"R5":       {},
	"SCR":      {},
	"TELECINE": {},
	"TELESYNC": {},
}

// videoCodecAliases maps equivalent video codec names to a canonical key.
// x264, H.264, H264 and AVC all refer to the same underlying codec.
var videoCodecAliases = map[string]string{
	"X264":   "avc",
	"H.264":  "avc",
	"H264":   "avc",
	"AVC":    "avc",
	"X265":   "hevc",
	"H.265":  "hevc",
	"H265":   "hevc",
	"HEVC":   "hevc",
	"AV1":    "av1",
	"XVID":   "xvid",
	"DIVX":   "xvid",
	"MPEG":   "mpeg",
	"MPEG2":  "mpeg",
	"MPEG-2": "mpeg",
}

var audioLabels = map[string]AttributeKey{
	"AAC":                key(CategoryAudio, "aac"),
	"AC3":                key(CategoryAudio, "ac3"),
	"ATMOS":              key(CategoryAudio, "atmos"),
	"DOLBY DIGITAL":      key(CategoryAudio, "dolby_digital"),
	"DOLBY DIGITAL PLUS": key(CategoryAudio, "dolby_digital_plus"),
	"DTS LOSSY":          key(CategoryAudio, "dts_lossy"),
	"DTS LOSSLESS":       key(CategoryAudio, "dts_lossless"),
	"EAC3":               key(CategoryAudio, "eac3"),
	"FLAC":               key(CategoryAudio, "flac"),
	"MP3":                key(CategoryAudio, "mp3"),
	"TRUEHD":             key(CategoryAudio, "truehd"),
	"HQ CLEAN AUDIO":     key(CategoryTrash, "clean_audio"),
}

var channelLabels = map[string]AttributeKey{
	"5.1":    key(CategoryAudio, "surround"),
	"7.1":    key(CategoryAudio, "surround"),
	"STEREO": key(CategoryAudio, "stereo"),
	"2.0":    key(CategoryAudio, "stereo"),
	"MONO":   key(CategoryAudio, "mono"),
	"1.0":    key(CategoryAudio, "mono"),
}

var hdrLabels = map[string]AttributeKey{
	"DV":     key(CategoryHDR, "dolby_vision"),
	"HDR":    key(CategoryHDR, "hdr"),
	"HDR10":  key(CategoryHDR, "hdr"),
	"HDR10+": key(CategoryHDR, "hdr10plus"),
	"SDR":    key(CategoryHDR, "sdr"),
}

// resolutionKeys buckets tokenizer resolutions into the keys used by the
// resolution acceptance map.
var resolutionKeys = map[string]string{
	"4K":    "2160p",
	"2160P": "2160p",
	"1440P": "2160p",
	"1080P": "1080p",
	"1080I": "1080p",
	"720P":  "720p",
	"576P":  "480p",
	"480P":  "480p",
	"360P":  "360p",
}

func lookup(labels map[string]AttributeKey, label string) (AttributeKey, bool) {
	k, ok := labels[strings.ToUpper(strings.TrimSpace(label))]
	return k, ok
}

// QualityKey maps a quality tier label ("WEB-DL", "BluRay REMUX", "CAM") to its attribute key.
// Unknown labels report false and contribute nothing.
func QualityKey(label string) (AttributeKey, bool) {
	return lookup(qualityLabels, label)
}

// IsTrashQuality reports whether label is one of the trash tiers (CAM, PDTV, R5, SCR, TeleCine, TeleSync).
func IsTrashQuality(label string) bool {
	_, ok := trashQualities[strings.ToUpper(strings.TrimSpace(label))]
	return ok
}

// NormalizeVideoCodec converts a video codec string to its canonical lowercase form.
// Returns the lowercased input if no alias mapping exists.
func NormalizeVideoCodec(codec string) string {
	upper := strings.ToUpper(strings.TrimSpace(codec))
	if canonical, ok := videoCodecAliases[upper]; ok {
		return canonical
	}
	return strings.ToLower(upper)
}

// CodecKey maps a codec label to its attribute key in the quality category.
func CodecKey(label string) (AttributeKey, bool) {
	upper := strings.ToUpper(strings.TrimSpace(label))
	canonical, ok := videoCodecAliases[upper]
	if !ok {
		return AttributeKey{}, false
	}
	return key(CategoryQuality, canonical), true
}

// AudioKey maps an audio format label ("Atmos", "DTS Lossless") to its attribute key.
func AudioKey(label string) (AttributeKey, bool) {
	return lookup(audioLabels, label)
}

// ChannelKey maps a channel layout ("5.1", "stereo", "mono") to its attribute key.
func ChannelKey(label string) (AttributeKey, bool) {
	return lookup(channelLabels, label)
}

// HDRKey maps an HDR label ("DV", "HDR10+", "HDR", "SDR") to its attribute key.
func HDRKey(label string) (AttributeKey, bool) {
	return lookup(hdrLabels, label)
}

// BitDepthKey returns the hdr/10bit key for bit depths of ten or more.
func BitDepthKey(bitDepth string) (AttributeKey, bool) {
	digits := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(bitDepth)), "bit")
	switch strings.TrimSpace(digits) {
	case "10", "12", "16":
		return key(CategoryHDR, "10bit"), true
	}
	return AttributeKey{}, false
}

// ResolutionKey buckets a resolution label into a resolution acceptance key.
// Present but unrecognised labels map to "unknown"; an empty label reports false.
func ResolutionKey(label string) (string, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false
	}
	if k, ok := resolutionKeys[strings.ToUpper(label)]; ok {
		return k, true
	}
	return "unknown", true
}
