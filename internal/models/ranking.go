// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"fmt"
	"strings"

	"github.com/autobrr/rtn/internal/domain"
	"github.com/autobrr/rtn/internal/releases"
)

// Ranking preset names.
const (
	PresetDefault = "default"
	PresetBest    = "best"
)

// RankingModel holds the signed weight of every attribute key. A weight is
// used whenever the matching CustomRank does not override it.
type RankingModel struct {
	// quality
	AV1    int `json:"av1" yaml:"av1"`
	AVC    int `json:"avc" yaml:"avc"`
	BluRay int `json:"bluray" yaml:"bluray"`
	DVD    int `json:"dvd" yaml:"dvd"`
	HDTV   int `json:"hdtv" yaml:"hdtv"`
	HEVC   int `json:"hevc" yaml:"hevc"`
	MPEG   int `json:"mpeg" yaml:"mpeg"`
	Remux  int `json:"remux" yaml:"remux"`
	VHS    int `json:"vhs" yaml:"vhs"`
	Web    int `json:"web" yaml:"web"`
	WebDL  int `json:"webdl" yaml:"webdl"`
	WebMux int `json:"webmux" yaml:"webmux"`
	XviD   int `json:"xvid" yaml:"xvid"`
	PDTV   int `json:"pdtv" yaml:"pdtv"`

	// rips
	BDRip    int `json:"bdrip" yaml:"bdrip"`
	BRRip    int `json:"brrip" yaml:"brrip"`
	DVDRip   int `json:"dvdrip" yaml:"dvdrip"`
	HDRip    int `json:"hdrip" yaml:"hdrip"`
	PPVRip   int `json:"ppvrip" yaml:"ppvrip"`
	TVRip    int `json:"tvrip" yaml:"tvrip"`
	UHDRip   int `json:"uhdrip" yaml:"uhdrip"`
	VHSRip   int `json:"vhsrip" yaml:"vhsrip"`
	WebDLRip int `json:"webdlrip" yaml:"webdlrip"`
	WebRip   int `json:"webrip" yaml:"webrip"`

	// hdr
	Bit10       int `json:"bit_10" yaml:"bit_10"`
	DolbyVision int `json:"dolby_vision" yaml:"dolby_vision"`
	HDR         int `json:"hdr" yaml:"hdr"`
	HDR10Plus   int `json:"hdr10plus" yaml:"hdr10plus"`
	SDR         int `json:"sdr" yaml:"sdr"`

	// audio
	AAC              int `json:"aac" yaml:"aac"`
	AC3              int `json:"ac3" yaml:"ac3"`
	Atmos            int `json:"atmos" yaml:"atmos"`
	DolbyDigital     int `json:"dolby_digital" yaml:"dolby_digital"`
	DolbyDigitalPlus int `json:"dolby_digital_plus" yaml:"dolby_digital_plus"`
	DTSLossy         int `json:"dts_lossy" yaml:"dts_lossy"`
	DTSLossless      int `json:"dts_lossless" yaml:"dts_lossless"`
	EAC3             int `json:"eac3" yaml:"eac3"`
	FLAC             int `json:"flac" yaml:"flac"`
	Mono             int `json:"mono" yaml:"mono"`
	MP3              int `json:"mp3" yaml:"mp3"`
	Stereo           int `json:"stereo" yaml:"stereo"`
	Surround         int `json:"surround" yaml:"surround"`
	TrueHD           int `json:"truehd" yaml:"truehd"`

	// extras
	ThreeD      int `json:"three_d" yaml:"three_d"`
	Converted   int `json:"converted" yaml:"converted"`
	Documentary int `json:"documentary" yaml:"documentary"`
	Dubbed      int `json:"dubbed" yaml:"dubbed"`
	Edition     int `json:"edition" yaml:"edition"`
	Hardcoded   int `json:"hardcoded" yaml:"hardcoded"`
	Network     int `json:"network" yaml:"network"`
	Proper      int `json:"proper" yaml:"proper"`
	Repack      int `json:"repack" yaml:"repack"`
	Retail      int `json:"retail" yaml:"retail"`
	Scene       int `json:"scene" yaml:"scene"`
	Site        int `json:"site" yaml:"site"`
	Subbed      int `json:"subbed" yaml:"subbed"`
	Upscaled    int `json:"upscaled" yaml:"upscaled"`

	// trash
	CAM        int `json:"cam" yaml:"cam"`
	CleanAudio int `json:"clean_audio" yaml:"clean_audio"`
	R5         int `json:"r5" yaml:"r5"`
	SATRip     int `json:"satrip" yaml:"satrip"`
	Screener   int `json:"screener" yaml:"screener"`
	Size       int `json:"size" yaml:"size"`
	TeleCine   int `json:"telecine" yaml:"telecine"`
	TeleSync   int `json:"telesync" yaml:"telesync"`

	// Resolution weights keyed by resolution acceptance key.
	Resolutions map[string]int `json:"resolutions,omitempty" yaml:"resolutions,omitempty"`
}

type weightField func(*RankingModel) int

var weightFields = map[releases.AttributeKey]weightField{
	attr(releases.CategoryQuality, "av1"):    func(m *RankingModel) int { return m.AV1 },
	attr(releases.CategoryQuality, "avc"):    func(m *RankingModel) int { return m.AVC },
	attr(releases.CategoryQuality, "bluray"): func(m *RankingModel) int { return m.BluRay },
	attr(releases.CategoryQuality, "dvd"):    func(m *RankingModel) int { return m.DVD },
	attr(releases.CategoryQuality, "hdtv"):   func(m *RankingModel) int { return m.HDTV },
	attr(releases.CategoryQuality, "hevc"):   func(m *RankingModel) int { return m.HEVC },
	attr(releases.CategoryQuality, "mpeg"):   func(m *RankingModel) int { return m.MPEG },
	attr(releases.CategoryQuality, "remux"):  func(m *RankingModel) int { return m.Remux },
	attr(releases.CategoryQuality, "vhs"):    func(m *RankingModel) int { return m.VHS },
	attr(releases.CategoryQuality, "web"):    func(m *RankingModel) int { return m.Web },
	attr(releases.CategoryQuality, "webdl"):  func(m *RankingModel) int { return m.WebDL },
	attr(releases.CategoryQuality, "webmux"): func(m *RankingModel) int { return m.WebMux },
	attr(releases.CategoryQuality, "xvid"):   func(m *RankingModel) int { return m.XviD },

	attr(releases.CategoryRips, "bdrip"):    func(m *RankingModel) int { return m.BDRip },
	attr(releases.CategoryRips, "brrip"):    func(m *RankingModel) int { return m.BRRip },
	attr(releases.CategoryRips, "dvdrip"):   func(m *RankingModel) int { return m.DVDRip },
	attr(releases.CategoryRips, "hdrip"):    func(m *RankingModel) int { return m.HDRip },
	attr(releases.CategoryRips, "ppvrip"):   func(m *RankingModel) int { return m.PPVRip },
	attr(releases.CategoryRips, "satrip"):   func(m *RankingModel) int { return m.SATRip },
	attr(releases.CategoryRips, "tvrip"):    func(m *RankingModel) int { return m.TVRip },
	attr(releases.CategoryRips, "uhdrip"):   func(m *RankingModel) int { return m.UHDRip },
	attr(releases.CategoryRips, "vhsrip"):   func(m *RankingModel) int { return m.VHSRip },
	attr(releases.CategoryRips, "webdlrip"): func(m *RankingModel) int { return m.WebDLRip },
	attr(releases.CategoryRips, "webrip"):   func(m *RankingModel) int { return m.WebRip },

	attr(releases.CategoryHDR, "10bit"):        func(m *RankingModel) int { return m.Bit10 },
	attr(releases.CategoryHDR, "dolby_vision"): func(m *RankingModel) int { return m.DolbyVision },
	attr(releases.CategoryHDR, "hdr"):          func(m *RankingModel) int { return m.HDR },
	attr(releases.CategoryHDR, "hdr10plus"):    func(m *RankingModel) int { return m.HDR10Plus },
	attr(releases.CategoryHDR, "sdr"):          func(m *RankingModel) int { return m.SDR },

	attr(releases.CategoryAudio, "aac"):                func(m *RankingModel) int { return m.AAC },
	attr(releases.CategoryAudio, "ac3"):                func(m *RankingModel) int { return m.AC3 },
	attr(releases.CategoryAudio, "atmos"):              func(m *RankingModel) int { return m.Atmos },
	attr(releases.CategoryAudio, "dolby_digital"):      func(m *RankingModel) int { return m.DolbyDigital },
	attr(releases.CategoryAudio, "dolby_digital_plus"): func(m *RankingModel) int { return m.DolbyDigitalPlus },
	attr(releases.CategoryAudio, "dts_lossy"):          func(m *RankingModel) int { return m.DTSLossy },
	attr(releases.CategoryAudio, "dts_lossless"):       func(m *RankingModel) int { return m.DTSLossless },
	attr(releases.CategoryAudio, "eac3"):               func(m *RankingModel) int { return m.EAC3 },
	attr(releases.CategoryAudio, "flac"):               func(m *RankingModel) int { return m.FLAC },
	attr(releases.CategoryAudio, "mono"):               func(m *RankingModel) int { return m.Mono },
	attr(releases.CategoryAudio, "mp3"):                func(m *RankingModel) int { return m.MP3 },
	attr(releases.CategoryAudio, "stereo"):             func(m *RankingModel) int { return m.Stereo },
	attr(releases.CategoryAudio, "surround"):           func(m *RankingModel) int { return m.Surround },
	attr(releases.CategoryAudio, "truehd"):             func(m *RankingModel) int { return m.TrueHD },

	attr(releases.CategoryExtras, "3d"):          func(m *RankingModel) int { return m.ThreeD },
	attr(releases.CategoryExtras, "converted"):   func(m *RankingModel) int { return m.Converted },
	attr(releases.CategoryExtras, "documentary"): func(m *RankingModel) int { return m.Documentary },
	attr(releases.CategoryExtras, "dubbed"):      func(m *RankingModel) int { return m.Dubbed },
	attr(releases.CategoryExtras, "edition"):     func(m *RankingModel) int { return m.Edition },
	attr(releases.CategoryExtras, "hardcoded"):   func(m *RankingModel) int { return m.Hardcoded },
	attr(releases.CategoryExtras, "network"):     func(m *RankingModel) int { return m.Network },
	attr(releases.CategoryExtras, "proper"):      func(m *RankingModel) int { return m.Proper },
	attr(releases.CategoryExtras, "repack"):      func(m *RankingModel) int { return m.Repack },
	attr(releases.CategoryExtras, "retail"):      func(m *RankingModel) int { return m.Retail },
	attr(releases.CategoryExtras, "scene"):       func(m *RankingModel) int { return m.Scene },
	attr(releases.CategoryExtras, "site"):        func(m *RankingModel) int { return m.Site },
	attr(releases.CategoryExtras, "subbed"):      func(m *RankingModel) int { return m.Subbed },
	attr(releases.CategoryExtras, "upscaled"):    func(m *RankingModel) int { return m.Upscaled },

	attr(releases.CategoryTrash, "cam"):         func(m *RankingModel) int { return m.CAM },
	attr(releases.CategoryTrash, "clean_audio"): func(m *RankingModel) int { return m.CleanAudio },
	attr(releases.CategoryTrash, "pdtv"):        func(m *RankingModel) int { return m.PDTV },
	attr(releases.CategoryTrash, "r5"):          func(m *RankingModel) int { return m.R5 },
	attr(releases.CategoryTrash, "screener"):    func(m *RankingModel) int { return m.Screener },
	attr(releases.CategoryTrash, "size"):        func(m *RankingModel) int { return m.Size },
	attr(releases.CategoryTrash, "telecine"):    func(m *RankingModel) int { return m.TeleCine },
	attr(releases.CategoryTrash, "telesync"):    func(m *RankingModel) int { return m.TeleSync },
}

// Weight returns the preset weight for k, or 0 for keys without one.
func (m *RankingModel) Weight(k releases.AttributeKey) int {
	if m == nil {
		return 0
	}
	if field, ok := weightFields[k]; ok {
		return field(m)
	}
	return 0
}

// ResolutionWeight returns the weight of a resolution acceptance key.
func (m *RankingModel) ResolutionWeight(key string) int {
	if m == nil {
		return 0
	}
	return m.Resolutions[key]
}

// DefaultRanking covers the most common use cases: 1080p web releases first.
func DefaultRanking() RankingModel {
	return RankingModel{
		AV1: 0, AVC: 500, BluRay: 100, DVD: -1000, HDTV: -1000, HEVC: 500,
		MPEG: -100, Remux: -10000, VHS: -10000, Web: 150, WebDL: 5000,
		WebMux: -10000, XviD: -10000, PDTV: -10000,

		BDRip: -1000, BRRip: -1000, DVDRip: -1000, HDRip: -1000, PPVRip: -1000,
		TVRip: -10000, UHDRip: -1000, VHSRip: -10000, WebDLRip: -10000, WebRip: 30,

		Bit10: 5, DolbyVision: 50, HDR: 50, HDR10Plus: 0, SDR: 0,

		AAC: 250, AC3: 30, Atmos: 400, DolbyDigital: 0, DolbyDigitalPlus: 0,
		DTSLossy: 600, DTSLossless: 0, EAC3: 250, FLAC: 0, Mono: -10000,
		MP3: -10000, Stereo: 0, Surround: 0, TrueHD: -100,

		ThreeD: -10000, Converted: -1250, Documentary: -250, Dubbed: 0,
		Edition: 100, Hardcoded: 0, Network: 300, Proper: 1000, Repack: 1000,
		Retail: 0, Scene: 0, Site: -10000, Subbed: 0, Upscaled: -10000,

		CAM: -10000, CleanAudio: -10000, R5: -10000, SATRip: -10000,
		Screener: -10000, Size: -10000, TeleCine: -10000, TeleSync: -10000,
	}
}

// BestRanking favours the highest qualities: remuxes, 4K HDR and lossless audio.
func BestRanking() RankingModel {
	return RankingModel{
		AV1: 0, AVC: 500, BluRay: 100, DVD: -5000, HDTV: -5000, HEVC: 500,
		MPEG: -1000, Remux: 10000, VHS: -10000, Web: 100, WebDL: 200,
		WebMux: -10000, XviD: -10000, PDTV: -10000,

		BDRip: -5000, BRRip: -10000, DVDRip: -5000, HDRip: -10000, PPVRip: -10000,
		TVRip: -10000, UHDRip: -5000, VHSRip: -10000, WebDLRip: -10000, WebRip: -1000,

		Bit10: 100, DolbyVision: 1000, HDR: 500, HDR10Plus: 1000, SDR: 0,

		AAC: 100, AC3: 50, Atmos: 1000, DolbyDigital: 0, DolbyDigitalPlus: 0,
		DTSLossy: 100, DTSLossless: 1000, EAC3: 150, FLAC: 0, Mono: -1000,
		MP3: -1000, Stereo: 0, Surround: 0, TrueHD: 1000,

		ThreeD: -10000, Converted: -1000, Documentary: -250, Dubbed: -1000,
		Edition: 100, Hardcoded: 0, Network: 0, Proper: 20, Repack: 20,
		Retail: 0, Scene: 0, Site: -10000, Subbed: 0, Upscaled: -10000,

		CAM: -10000, CleanAudio: -10000, R5: -10000, SATRip: -10000,
		Screener: -10000, Size: -10000, TeleCine: -10000, TeleSync: -10000,
	}
}

// Preset returns the named ranking preset.
func Preset(name string) (RankingModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetDefault:
		return DefaultRanking(), nil
	case PresetBest:
		return BestRanking(), nil
	default:
		return RankingModel{}, domain.NewInvalidConfiguration("ranking_preset", fmt.Errorf("unknown preset %q", name))
	}
}
