// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package ranker computes the additive quality rank of a release.
package ranker

import (
	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/releases"
)

// PreferredBonus is added once when any preferred pattern matches, and once
// more when any preferred language is present.
const PreferredBonus = 10000

// Contribution is one term of a rank.
type Contribution struct {
	Key    string `json:"key"`
	Points int    `json:"points"`
}

// Score returns the rank of attrs. Every recognised attribute contributes
// its CustomRank override when enabled, otherwise its preset weight;
// multi-valued attributes contribute once per value. Absent attributes add 0.
func Score(attrs *releases.Attributes, settings *models.Settings, weights *models.RankingModel) int {
	total := 0
	for _, c := range Breakdown(attrs, settings, weights) {
		total += c.Points
	}
	return total
}

// Breakdown returns the individual terms that Score sums, in evaluation order.
func Breakdown(attrs *releases.Attributes, settings *models.Settings, weights *models.RankingModel) []Contribution {
	var terms []Contribution

	if key, ok := attrs.ResolutionKey(); ok {
		if w := weights.ResolutionWeight(key); w != 0 {
			terms = append(terms, Contribution{Key: string(releases.CategoryResolution) + "_" + key, Points: w})
		}
	}

	for _, k := range attrs.Keys() {
		terms = append(terms, Contribution{Key: k.String(), Points: attributeRank(k, settings, weights)})
	}

	if settings.MatchPreferred(attrs.RawTitle) {
		terms = append(terms, Contribution{Key: "preferred_pattern", Points: PreferredBonus})
	}
	if hasPreferredLanguage(attrs, settings) {
		terms = append(terms, Contribution{Key: "preferred_language", Points: PreferredBonus})
	}
	return terms
}

func attributeRank(k releases.AttributeKey, settings *models.Settings, weights *models.RankingModel) int {
	if rank, ok := settings.CustomRanks.Get(k); ok && rank.UseOverride {
		return rank.OverrideRank
	}
	return weights.Weight(k)
}

func hasPreferredLanguage(attrs *releases.Attributes, settings *models.Settings) bool {
	for _, lang := range settings.PreferredLanguages() {
		if attrs.HasLanguage(lang) {
			return true
		}
	}
	return false
}
