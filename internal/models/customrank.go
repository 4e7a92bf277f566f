// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"slices"
	"strings"

	"github.com/autobrr/rtn/internal/releases"
)

// CustomRank overrides the preset weight of one attribute and controls
// whether releases carrying it may be fetched.
type CustomRank struct {
	Fetch        bool `json:"fetch" yaml:"fetch"`
	UseOverride  bool `json:"use_custom_rank" yaml:"use_custom_rank"`
	OverrideRank int  `json:"rank" yaml:"rank"`
}

type QualityRanks struct {
	AV1    CustomRank `json:"av1" yaml:"av1"`
	AVC    CustomRank `json:"avc" yaml:"avc"`
	BluRay CustomRank `json:"bluray" yaml:"bluray"`
	DVD    CustomRank `json:"dvd" yaml:"dvd"`
	HDTV   CustomRank `json:"hdtv" yaml:"hdtv"`
	HEVC   CustomRank `json:"hevc" yaml:"hevc"`
	MPEG   CustomRank `json:"mpeg" yaml:"mpeg"`
	Remux  CustomRank `json:"remux" yaml:"remux"`
	VHS    CustomRank `json:"vhs" yaml:"vhs"`
	Web    CustomRank `json:"web" yaml:"web"`
	WebDL  CustomRank `json:"webdl" yaml:"webdl"`
	WebMux CustomRank `json:"webmux" yaml:"webmux"`
	XviD   CustomRank `json:"xvid" yaml:"xvid"`
}

type RipsRanks struct {
	BDRip    CustomRank `json:"bdrip" yaml:"bdrip"`
	BRRip    CustomRank `json:"brrip" yaml:"brrip"`
	DVDRip   CustomRank `json:"dvdrip" yaml:"dvdrip"`
	HDRip    CustomRank `json:"hdrip" yaml:"hdrip"`
	PPVRip   CustomRank `json:"ppvrip" yaml:"ppvrip"`
	SATRip   CustomRank `json:"satrip" yaml:"satrip"`
	TVRip    CustomRank `json:"tvrip" yaml:"tvrip"`
	UHDRip   CustomRank `json:"uhdrip" yaml:"uhdrip"`
	VHSRip   CustomRank `json:"vhsrip" yaml:"vhsrip"`
	WebDLRip CustomRank `json:"webdlrip" yaml:"webdlrip"`
	WebRip   CustomRank `json:"webrip" yaml:"webrip"`
}

type HDRRanks struct {
	Bit10       CustomRank `json:"10bit" yaml:"10bit"`
	DolbyVision CustomRank `json:"dolby_vision" yaml:"dolby_vision"`
	HDR         CustomRank `json:"hdr" yaml:"hdr"`
	HDR10Plus   CustomRank `json:"hdr10plus" yaml:"hdr10plus"`
	SDR         CustomRank `json:"sdr" yaml:"sdr"`
}

type AudioRanks struct {
	AAC              CustomRank `json:"aac" yaml:"aac"`
	AC3              CustomRank `json:"ac3" yaml:"ac3"`
	Atmos            CustomRank `json:"atmos" yaml:"atmos"`
	DolbyDigital     CustomRank `json:"dolby_digital" yaml:"dolby_digital"`
	DolbyDigitalPlus CustomRank `json:"dolby_digital_plus" yaml:"dolby_digital_plus"`
	DTSLossy         CustomRank `json:"dts_lossy" yaml:"dts_lossy"`
	DTSLossless      CustomRank `json:"dts_lossless" yaml:"dts_lossless"`
	EAC3             CustomRank `json:"eac3" yaml:"eac3"`
	FLAC             CustomRank `json:"flac" yaml:"flac"`
	Mono             CustomRank `json:"mono" yaml:"mono"`
	MP3              CustomRank `json:"mp3" yaml:"mp3"`
	Stereo           CustomRank `json:"stereo" yaml:"stereo"`
	Surround         CustomRank `json:"surround" yaml:"surround"`
	TrueHD           CustomRank `json:"truehd" yaml:"truehd"`
}

type ExtrasRanks struct {
	ThreeD      CustomRank `json:"3d" yaml:"3d"`
	Converted   CustomRank `json:"converted" yaml:"converted"`
	Documentary CustomRank `json:"documentary" yaml:"documentary"`
	Dubbed      CustomRank `json:"dubbed" yaml:"dubbed"`
	Edition     CustomRank `json:"edition" yaml:"edition"`
	Hardcoded   CustomRank `json:"hardcoded" yaml:"hardcoded"`
	Network     CustomRank `json:"network" yaml:"network"`
	Proper      CustomRank `json:"proper" yaml:"proper"`
	Repack      CustomRank `json:"repack" yaml:"repack"`
	Retail      CustomRank `json:"retail" yaml:"retail"`
	Scene       CustomRank `json:"scene" yaml:"scene"`
	Site        CustomRank `json:"site" yaml:"site"`
	Subbed      CustomRank `json:"subbed" yaml:"subbed"`
	Upscaled    CustomRank `json:"upscaled" yaml:"upscaled"`
}

type TrashRanks struct {
	CAM        CustomRank `json:"cam" yaml:"cam"`
	CleanAudio CustomRank `json:"clean_audio" yaml:"clean_audio"`
	PDTV       CustomRank `json:"pdtv" yaml:"pdtv"`
	R5         CustomRank `json:"r5" yaml:"r5"`
	Screener   CustomRank `json:"screener" yaml:"screener"`
	Size       CustomRank `json:"size" yaml:"size"`
	TeleCine   CustomRank `json:"telecine" yaml:"telecine"`
	TeleSync   CustomRank `json:"telesync" yaml:"telesync"`
}

// CustomRanks holds one CustomRank per attribute key, grouped by category.
type CustomRanks struct {
	Quality QualityRanks `json:"quality" yaml:"quality"`
	Rips    RipsRanks    `json:"rips" yaml:"rips"`
	HDR     HDRRanks     `json:"hdr" yaml:"hdr"`
	Audio   AudioRanks   `json:"audio" yaml:"audio"`
	Extras  ExtrasRanks  `json:"extras" yaml:"extras"`
	Trash   TrashRanks   `json:"trash" yaml:"trash"`
}

type customRankField func(*CustomRanks) *CustomRank

func attr(c releases.Category, k string) releases.AttributeKey {
	return releases.AttributeKey{Category: c, Key: k}
}

// customRankFields maps every attribute key to its field. Keys the
// tokenizer can emit but that are missing here have no policy.
var customRankFields = map[releases.AttributeKey]customRankField{
	attr(releases.CategoryQuality, "av1"):    func(c *CustomRanks) *CustomRank { return &c.Quality.AV1 },
	attr(releases.CategoryQuality, "avc"):    func(c *CustomRanks) *CustomRank { return &c.Quality.AVC },
	attr(releases.CategoryQuality, "bluray"): func(c *CustomRanks) *CustomRank { return &c.Quality.BluRay },
	attr(releases.CategoryQuality, "dvd"):    func(c *CustomRanks) *CustomRank { return &c.Quality.DVD },
	attr(releases.CategoryQuality, "hdtv"):   func(c *CustomRanks) *CustomRank { return &c.Quality.HDTV },
	attr(releases.CategoryQuality, "hevc"):   func(c *CustomRanks) *CustomRank { return &c.Quality.HEVC },
	attr(releases.CategoryQuality, "mpeg"):   func(c *CustomRanks) *CustomRank { return &c.Quality.MPEG },
	attr(releases.CategoryQuality, "remux"):  func(c *CustomRanks) *CustomRank { return &c.Quality.Remux },
	attr(releases.CategoryQuality, "vhs"):    func(c *CustomRanks) *CustomRank { return &c.Quality.VHS },
	attr(releases.CategoryQuality, "web"):    func(c *CustomRanks) *CustomRank { return &c.Quality.Web },
	attr(releases.CategoryQuality, "webdl"):  func(c *CustomRanks) *CustomRank { return &c.Quality.WebDL },
	attr(releases.CategoryQuality, "webmux"): func(c *CustomRanks) *CustomRank { return &c.Quality.WebMux },
	attr(releases.CategoryQuality, "xvid"):   func(c *CustomRanks) *CustomRank { return &c.Quality.XviD },

	attr(releases.CategoryRips, "bdrip"):    func(c *CustomRanks) *CustomRank { return &c.Rips.BDRip },
	attr(releases.CategoryRips, "brrip"):    func(c *CustomRanks) *CustomRank { return &c.Rips.BRRip },
	attr(releases.CategoryRips, "dvdrip"):   func(c *CustomRanks) *CustomRank { return &c.Rips.DVDRip },
	attr(releases.CategoryRips, "hdrip"):    func(c *CustomRanks) *CustomRank { return &c.Rips.HDRip },
	attr(releases.CategoryRips, "ppvrip"):   func(c *CustomRanks) *CustomRank { return &c.Rips.PPVRip },
	attr(releases.CategoryRips, "satrip"):   func(c *CustomRanks) *CustomRank { return &c.Rips.SATRip },
	attr(releases.CategoryRips, "tvrip"):    func(c *CustomRanks) *CustomRank { return &c.Rips.TVRip },
	attr(releases.CategoryRips, "uhdrip"):   func(c *CustomRanks) *CustomRank { return &c.Rips.UHDRip },
	attr(releases.CategoryRips, "vhsrip"):   func(c *CustomRanks) *CustomRank { return &c.Rips.VHSRip },
	attr(releases.CategoryRips, "webdlrip"): func(c *CustomRanks) *CustomRank { return &c.Rips.WebDLRip },
	attr(releases.CategoryRips, "webrip"):   func(c *CustomRanks) *CustomRank { return &c.Rips.WebRip },

	attr(releases.CategoryHDR, "10bit"):        func(c *CustomRanks) *CustomRank { return &c.HDR.Bit10 },
	attr(releases.CategoryHDR, "dolby_vision"): func(c *CustomRanks) *CustomRank { return &c.HDR.DolbyVision },
	attr(releases.CategoryHDR, "hdr"):          func(c *CustomRanks) *CustomRank { return &c.HDR.HDR },
	attr(releases.CategoryHDR, "hdr10plus"):    func(c *CustomRanks) *CustomRank { return &c.HDR.HDR10Plus },
	attr(releases.CategoryHDR, "sdr"):          func(c *CustomRanks) *CustomRank { return &c.HDR.SDR },

	attr(releases.CategoryAudio, "aac"):                func(c *CustomRanks) *CustomRank { return &c.Audio.AAC },
	attr(releases.CategoryAudio, "ac3"):                func(c *CustomRanks) *CustomRank { return &c.Audio.AC3 },
	attr(releases.CategoryAudio, "atmos"):              func(c *CustomRanks) *CustomRank { return &c.Audio.Atmos },
	attr(releases.CategoryAudio, "dolby_digital"):      func(c *CustomRanks) *CustomRank { return &c.Audio.DolbyDigital },
	attr(releases.CategoryAudio, "dolby_digital_plus"): func(c *CustomRanks) *CustomRank { return &c.Audio.DolbyDigitalPlus },
	attr(releases.CategoryAudio, "dts_lossy"):          func(c *CustomRanks) *CustomRank { return &c.Audio.DTSLossy },
	attr(releases.CategoryAudio, "dts_lossless"):       func(c *CustomRanks) *CustomRank { return &c.Audio.DTSLossless },
	attr(releases.CategoryAudio, "eac3"):               func(c *CustomRanks) *CustomRank { return &c.Audio.EAC3 },
	attr(releases.CategoryAudio, "flac"):               func(c *CustomRanks) *CustomRank { return &c.Audio.FLAC },
	attr(releases.CategoryAudio, "mono"):               func(c *CustomRanks) *CustomRank { return &c.Audio.Mono },
	attr(releases.CategoryAudio, "mp3"):                func(c *CustomRanks) *CustomRank { return &c.Audio.MP3 },
	attr(releases.CategoryAudio, "stereo"):             func(c *CustomRanks) *CustomRank { return &c.Audio.Stereo },
	attr(releases.CategoryAudio, "surround"):           func(c *CustomRanks) *CustomRank { return &c.Audio.Surround },
	attr(releases.CategoryAudio, "truehd"):             func(c *CustomRanks) *CustomRank { return &c.Audio.TrueHD },

	attr(releases.CategoryExtras, "3d"):          func(c *CustomRanks) *CustomRank { return &c.Extras.ThreeD },
	attr(releases.CategoryExtras, "converted"):   func(c *CustomRanks) *CustomRank { return &c.Extras.Converted },
	attr(releases.CategoryExtras, "documentary"): func(c *CustomRanks) *CustomRank { return &c.Extras.Documentary },
	attr(releases.CategoryExtras, "dubbed"):      func(c *CustomRanks) *CustomRank { return &c.Extras.Dubbed },
	attr(releases.CategoryExtras, "edition"):     func(c *CustomRanks) *CustomRank { return &c.Extras.Edition },
	attr(releases.CategoryExtras, "hardcoded"):   func(c *CustomRanks) *CustomRank { return &c.Extras.Hardcoded },
	attr(releases.CategoryExtras, "network"):     func(c *CustomRanks) *CustomRank { return &c.Extras.Network },
	attr(releases.CategoryExtras, "proper"):      func(c *CustomRanks) *CustomRank { return &c.Extras.Proper },
	attr(releases.CategoryExtras, "repack"):      func(c *CustomRanks) *CustomRank { return &c.Extras.Repack },
	attr(releases.CategoryExtras, "retail"):      func(c *CustomRanks) *CustomRank { return &c.Extras.Retail },
	attr(releases.CategoryExtras, "scene"):       func(c *CustomRanks) *CustomRank { return &c.Extras.Scene },
	attr(releases.CategoryExtras, "site"):        func(c *CustomRanks) *CustomRank { return &c.Extras.Site },
	attr(releases.CategoryExtras, "subbed"):      func(c *CustomRanks) *CustomRank { return &c.Extras.Subbed },
	attr(releases.CategoryExtras, "upscaled"):    func(c *CustomRanks) *CustomRank { return &c.Extras.Upscaled },

	attr(releases.CategoryTrash, "cam"):         func(c *CustomRanks) *CustomRank { return &c.Trash.CAM },
	attr(releases.CategoryTrash, "clean_audio"): func(c *CustomRanks) *CustomRank { return &c.Trash.CleanAudio },
	attr(releases.CategoryTrash, "pdtv"):        func(c *CustomRanks) *CustomRank { return &c.Trash.PDTV },
	attr(releases.CategoryTrash, "r5"):          func(c *CustomRanks) *CustomRank { return &c.Trash.R5 },
	attr(releases.CategoryTrash, "screener"):    func(c *CustomRanks) *CustomRank { return &c.Trash.Screener },
	attr(releases.CategoryTrash, "size"):        func(c *CustomRanks) *CustomRank { return &c.Trash.Size },
	attr(releases.CategoryTrash, "telecine"):    func(c *CustomRanks) *CustomRank { return &c.Trash.TeleCine },
	attr(releases.CategoryTrash, "telesync"):    func(c *CustomRanks) *CustomRank { return &c.Trash.TeleSync },
}

// Get returns the CustomRank configured for k.
func (c *CustomRanks) Get(k releases.AttributeKey) (CustomRank, bool) {
	field, ok := customRankFields[k]
	if !ok {
		return CustomRank{}, false
	}
	return *field(c), true
}

// Set replaces the CustomRank for k. It reports false for unknown keys.
func (c *CustomRanks) Set(k releases.AttributeKey, rank CustomRank) bool {
	field, ok := customRankFields[k]
	if !ok {
		return false
	}
	*field(c) = rank
	return true
}

// CustomRankKeys lists every configurable attribute key ordered by category then key.
func CustomRankKeys() []releases.AttributeKey {
	keys := make([]releases.AttributeKey, 0, len(customRankFields))
	for k := range customRankFields {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b releases.AttributeKey) int {
		if c := strings.Compare(string(a.Category), string(b.Category)); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return keys
}

func fetchOnly(fetch bool) CustomRank {
	return CustomRank{Fetch: fetch}
}

// DefaultCustomRanks returns the stock fetch policy: every key uses its preset
// weight, and low value sources, lossy legacy audio and trash tiers are not fetched.
func DefaultCustomRanks() CustomRanks {
	var c CustomRanks
	for k := range customRankFields {
		c.Set(k, fetchOnly(true))
	}

	for _, k := range []releases.AttributeKey{
		attr(releases.CategoryQuality, "av1"),
		attr(releases.CategoryQuality, "dvd"),
		attr(releases.CategoryQuality, "mpeg"),
		attr(releases.CategoryQuality, "remux"),
		attr(releases.CategoryQuality, "vhs"),
		attr(releases.CategoryQuality, "webmux"),
		attr(releases.CategoryQuality, "xvid"),
		attr(releases.CategoryAudio, "mono"),
		attr(releases.CategoryAudio, "mp3"),
		attr(releases.CategoryExtras, "3d"),
		attr(releases.CategoryExtras, "converted"),
		attr(releases.CategoryExtras, "documentary"),
		attr(releases.CategoryExtras, "site"),
		attr(releases.CategoryExtras, "upscaled"),
	} {
		c.Set(k, fetchOnly(false))
	}

	for k := range customRankFields {
		switch {
		case k.Category == releases.CategoryTrash:
			c.Set(k, fetchOnly(false))
		case k.Category == releases.CategoryRips && k.Key != "webrip":
			c.Set(k, fetchOnly(false))
		}
	}
	return c
}
