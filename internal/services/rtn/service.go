// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package rtn ties parsing, fetch decisions and ranking together into
// Torrent records.
package rtn

import (
	"errors"
	"regexp"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/rtn/internal/domain"
	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/releases"
	"github.com/autobrr/rtn/internal/services/fetch"
	"github.com/autobrr/rtn/internal/services/ranker"
	"github.com/autobrr/rtn/pkg/titles"
)

// Violated keys added on top of the fetch decision.
const (
	KeyTitleMismatch = "title_mismatch"
	KeyRankUnder     = "rank_under"
)

var (
	md5Hash = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)

	errNilSettings = errors.New("settings are required")
)

// Torrent is a ranked release.
type Torrent struct {
	InfoHash   string              `json:"infohash"`
	RawTitle   string              `json:"raw_title"`
	Data       releases.Attributes `json:"data"`
	Fetch      bool                `json:"fetch"`
	Rank       int                 `json:"rank"`
	LevRatio   float64             `json:"lev_ratio"`
	FailedKeys []string            `json:"failed_keys"`
}

// RankOptions tunes a single Rank call.
type RankOptions struct {
	// CorrectTitle enables the title similarity check when set.
	CorrectTitle string
	Aliases      []string
	// Strict turns any rejection into a *domain.UnacceptableReleaseError.
	Strict bool
	// SpeedMode stops at the first violated key instead of collecting all.
	SpeedMode bool
}

// Recorder observes ranking outcomes.
type Recorder interface {
	Accepted()
	Rejected(keys []string)
	Failed()
}

type Service struct {
	settings *models.Settings
	weights  *models.RankingModel
	parser   *releases.Parser
	matcher  *titles.Matcher
	recorder Recorder

	transliterate bool
}

type Option func(*Service)

// WithParser shares a parser cache between services.
func WithParser(p *releases.Parser) Option {
	return func(s *Service) {
		s.parser = p
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithTransliteration makes title matching fold non-Latin scripts.
func WithTransliteration() Option {
	return func(s *Service) {
		s.transliterate = true
	}
}

// New validates settings and builds a service. A nil weights model uses
// the default ranking preset.
func New(settings *models.Settings, weights *models.RankingModel, opts ...Option) (*Service, error) {
	if settings == nil {
		return nil, domain.NewInvalidConfiguration("settings", errNilSettings)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if weights == nil {
		defaults := models.DefaultRanking()
		weights = &defaults
	}

	s := &Service{settings: settings, weights: weights}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = releases.NewParser(0)
	}

	var matcherOpts []titles.Option
	if s.transliterate {
		matcherOpts = append(matcherOpts, titles.WithTransliteration())
	}
	matcher, err := titles.NewMatcher(settings.Options.TitleSimilarity, matcherOpts...)
	if err != nil {
		return nil, domain.NewInvalidConfiguration("options.title_similarity", err)
	}
	s.matcher = matcher

	return s, nil
}

func (s *Service) Settings() *models.Settings {
	return s.settings
}

func (s *Service) Weights() *models.RankingModel {
	return s.weights
}

// Parse returns the cached attributes of raw.
func (s *Service) Parse(raw string) (releases.Attributes, error) {
	if strings.TrimSpace(raw) == "" {
		return releases.Attributes{}, domain.NewInvalidInput("title", "must not be empty")
	}
	return s.parser.Parse(raw)
}

// Rank parses raw, decides whether it should be fetched and scores it.
// In lenient mode rejections are reported through Fetch and FailedKeys.
func (s *Service) Rank(raw, infohash string, opts RankOptions) (Torrent, error) {
	hash, err := normalizeInfoHash(infohash)
	if err != nil {
		s.failed()
		return Torrent{}, err
	}

	attrs, err := s.Parse(raw)
	if err != nil {
		s.failed()
		return Torrent{}, err
	}

	mode := fetch.ModeCollect
	if opts.SpeedMode {
		mode = fetch.ModeFast
	}

	t := Torrent{InfoHash: hash, RawTitle: raw, Data: attrs}
	keys := []string{}

	if opts.CorrectTitle != "" {
		ok, ratio := s.matchParsed(opts.CorrectTitle, &attrs, opts.Aliases)
		t.LevRatio = ratio
		if !ok {
			keys = append(keys, KeyTitleMismatch)
		}
	}

	if mode == fetch.ModeCollect || len(keys) == 0 {
		res := fetch.Decide(&attrs, s.settings, mode)
		keys = append(keys, res.Keys...)
	}

	t.Rank = ranker.Score(&attrs, s.settings, s.weights)
	if t.Rank < s.settings.Options.RemoveRanksUnder && (mode == fetch.ModeCollect || len(keys) == 0) {
		keys = append(keys, KeyRankUnder)
	}

	t.Fetch = len(keys) == 0
	t.FailedKeys = keys

	if t.Fetch {
		s.accepted()
	} else {
		s.rejected(keys)
		log.Debug().Str("title", raw).Strs("keys", keys).Int("rank", t.Rank).Msg("rtn: release not fetched")
	}

	if opts.Strict && !t.Fetch {
		return Torrent{}, domain.NewUnacceptableRelease(raw, keys)
	}
	return t, nil
}

// TitleMatch compares the correct title (and aliases) against the title the
// tokenizer extracts from raw.
func (s *Service) TitleMatch(correct, raw string, aliases ...string) (bool, float64, error) {
	if strings.TrimSpace(correct) == "" {
		return false, 0, domain.NewInvalidInput("correct_title", "must not be empty")
	}
	attrs, err := s.Parse(raw)
	if err != nil {
		return false, 0, err
	}
	ok, ratio := s.matchParsed(correct, &attrs, aliases)
	return ok, ratio, nil
}

func (s *Service) matchParsed(correct string, attrs *releases.Attributes, aliases []string) (bool, float64) {
	candidate := attrs.ParsedTitle
	if strings.TrimSpace(candidate) == "" {
		candidate = attrs.RawTitle
	}
	ok, ratio, err := s.matcher.Match(correct, candidate, aliases...)
	if err != nil {
		return false, 0
	}
	return ok, ratio
}

// EpisodesFromSeason returns the episodes of raw only when season is one of
// the seasons found in the title.
func (s *Service) EpisodesFromSeason(raw string, season int) ([]int, error) {
	if season <= 0 {
		return nil, domain.NewInvalidInput("season", "must be a positive integer")
	}
	attrs, err := s.Parse(raw)
	if err != nil {
		return nil, err
	}
	for _, n := range attrs.Seasons {
		if n == season {
			return attrs.Episodes, nil
		}
	}
	return []int{}, nil
}

// normalizeInfoHash accepts an empty hash, a 40 character SHA-1 hex string or
// a 32 character MD5 hex string. Hashes are returned lowercase.
func normalizeInfoHash(infohash string) (string, error) {
	infohash = strings.TrimSpace(infohash)
	switch len(infohash) {
	case 0:
		return "", nil
	case 40:
		var h metainfo.Hash
		if err := h.FromHexString(infohash); err != nil {
			return "", domain.NewInvalidInput("infohash", err.Error())
		}
		return h.HexString(), nil
	case 32:
		if md5Hash.MatchString(infohash) {
			return strings.ToLower(infohash), nil
		}
	}
	return "", domain.NewInvalidInput("infohash", "must be a 40 or 32 character hex string")
}

func (s *Service) accepted() {
	if s.recorder != nil {
		s.recorder.Accepted()
	}
}

func (s *Service) rejected(keys []string) {
	if s.recorder != nil {
		s.recorder.Rejected(keys)
	}
}

func (s *Service) failed() {
	if s.recorder != nil {
		s.recorder.Failed()
	}
}
