// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package titles compares release titles against a known correct title.
package titles

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"
	"github.com/mozillazg/go-unidecode"

	"github.com/autobrr/rtn/pkg/stringutils"
)

// DefaultThreshold is the minimum ratio for two titles to be considered the same.
const DefaultThreshold = 0.85

var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
)

// indel counts insertions and deletions only; a substitution costs one of each.
var indel = &metrics.Levenshtein{
	CaseSensitive: true,
	InsertCost:    1,
	DeleteCost:    1,
	ReplaceCost:   2,
}

// Ratio returns the indel similarity of a and b in [0, 1]:
// 1 - distance / (len(a) + len(b)), measured in runes. Two empty strings are identical.
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	return 1 - float64(indel.Distance(a, b))/float64(total)
}

// Matcher decides whether a candidate title refers to a correct title.
type Matcher struct {
	threshold     float64
	transliterate bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithTransliteration also compares ASCII transliterations of both titles,
// so "Игра престолов" can match an alias spelled "Igra prestolov".
func WithTransliteration() Option {
	return func(m *Matcher) {
		m.transliterate = true
	}
}

// NewMatcher returns a matcher for the given threshold.
func NewMatcher(threshold float64, opts ...Option) (*Matcher, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}

	m := &Matcher{threshold: threshold}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Threshold returns the configured match threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Ratio returns the best similarity between candidate and the correct title or
// any alias, after normalization. Ratios below the threshold are reported as 0.
func (m *Matcher) Ratio(correct, candidate string, aliases ...string) (float64, error) {
	_, ratio, err := m.Match(correct, candidate, aliases...)
	return ratio, err
}

// Match reports whether candidate matches correct or one of its aliases.
// The returned ratio is the best one found, or 0 when it falls below the threshold.
func (m *Matcher) Match(correct, candidate string, aliases ...string) (bool, float64, error) {
	if strings.TrimSpace(correct) == "" || strings.TrimSpace(candidate) == "" {
		return false, 0, ErrEmptyTitle
	}

	normalizedCandidate := stringutils.NormalizeTitle(candidate)

	best := m.compare(stringutils.NormalizeTitle(correct), normalizedCandidate)
	for _, alias := range aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		if r := m.compare(stringutils.NormalizeTitle(alias), normalizedCandidate); r > best {
			best = r
		}
	}

	if best < m.threshold {
		return false, 0, nil
	}
	return true, best, nil
}

func (m *Matcher) compare(a, b string) float64 {
	ratio := Ratio(a, b)
	if !m.transliterate {
		return ratio
	}

	ta := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(a)))
	tb := strings.ToLower(strings.TrimSpace(unidecode.Unidecode(b)))
	if ta == "" || tb == "" {
		return ratio
	}
	if r := Ratio(ta, tb); r > ratio {
		return r
	}
	return ratio
}
