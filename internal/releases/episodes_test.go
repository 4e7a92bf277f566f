// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rtn/internal/domain"
)

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

type numberCase struct {
	title    string
	expected []int
}

var episodeCases = []numberCase{
	{"The.Walking.Dead.S05E03.720p.HDTV.x264-ASAP", []int{3}},
	{"Show.S01E01.1080p", []int{1}},
	{"Show.S01E01E02.1080p", []int{1, 2}},
	{"Show.S01E01-E02.1080p", []int{1, 2}},
	{"Show.S01E01-E02-E03-E04-E05.1080p", seq(1, 5)},
	{"Show.S01E01E02E03E04E05.1080p", seq(1, 5)},
	{"Show E1-200 Complete", seq(1, 200)},
	{"The Simpsons S01E01E02 1080p BluRay x265 HEVC 10bit AAC 5.1", []int{1, 2}},
	{"The Simpsons E1-200 1080p BluRay", seq(1, 200)},
	{"House MD All Seasons (1-8) 720p Ultra-Compressed", []int{}},
	{"The Avengers (EMH) - S01 E15 - 459 (1080p - BluRay)", []int{15}},
	{"Witches Of Salem - 2Of4 - Road To Hell - Great Mysteries Of The World", []int{2}},
	{"Lost.[Perdidos].6x05.HDTV.XviD.[www.DivxTotaL.com]", []int{5}},
	{"4-13 Cursed (HD)", []int{13}},
	{"Dragon Ball Z Movie - 09 - Bojack Unbound - 1080p BluRay x264 DTS 5.1 -DDR", []int{}},
	{"[F-D] Fairy Tail Season 1 - 6 + Extras [480P][Dual-Audio]", []int{}},
	{"BoJack Horseman [06x01-08 of 16] (2019-2020) WEB-DLRip 720p", seq(1, 8)},
	{"[HR] Boku no Hero Academia 87 (S4-24) [1080p HEVC Multi-Subs] HR-GZ", []int{24}},
	{"Bleach 10º Temporada - 215 ao 220 - [DB-BR]", seq(215, 220)},
	{"Some Movie 2020 1080p BluRay", []int{}},
	// markers directly after a digit
	{"Show S02E05&E06 720p", []int{5, 6}},
	{"Show S01EP01EP02 720p", []int{1, 2}},
	{"Lost 1x01x02 HDTV", []int{1, 2}},
	{"Show Episode 3 & 4 720p", []int{3, 4}},
	{"Show.S01E01-03.720p", []int{1, 2, 3}},
	// known misses, kept as is
	{"Naruto Shippuden - 107 - Strange Bedfellows", []int{}},
	{"[224] Shingeki no Kyojin - S03 - Part 1 - 13 [BDRip.1080p.x265.FLAC]", []int{}},
	{"[Erai-raws] Shingeki no Kyojin Season 3 - 11 [1080p][Multiple Subtitle]", []int{}},
}

func TestExtractEpisodes(t *testing.T) {
	t.Parallel()

	for _, tt := range episodeCases {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			episodes, err := ExtractEpisodes(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, episodes)
		})
	}
}

var seasonCases = []numberCase{
	{"The.Walking.Dead.S05E03.720p.HDTV.x264-ASAP", []int{5}},
	{"Friends S01-S10 Complete", seq(1, 10)},
	{"House MD All Seasons (1-8) 720p Ultra-Compressed", seq(1, 8)},
	{"Breaking Bad Season 2 Complete", []int{2}},
	{"Lost.[Perdidos].6x05.HDTV.XviD.[www.DivxTotaL.com]", []int{6}},
	{"BoJack Horseman [06x01-08 of 16] (2019-2020) WEB-DLRip 720p", []int{6}},
	{"[HR] Boku no Hero Academia 87 (S4-24) [1080p HEVC Multi-Subs] HR-GZ", []int{4}},
	{"Friends [S01-08]", seq(1, 8)},
	{"La Casa de Papel Temporada 3", []int{3}},
	{"Attack on Titan 2nd Season", []int{2}},
	{"Some Movie 2020 1080p", []int{}},
	{"[Erai-raws] Shingeki no Kyojin Season 3 - 11 [1080p][Multiple Subtitle]", seq(3, 11)},
}

func TestExtractSeasons(t *testing.T) {
	t.Parallel()

	for _, tt := range seasonCases {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			seasons, err := ExtractSeasons(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, seasons)
		})
	}
}

func TestExtractNumbers_EmptyTitle(t *testing.T) {
	t.Parallel()

	_, err := ExtractEpisodes("")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ExtractSeasons(" ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpandRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected []int
	}{
		{"1-3", []int{1, 2, 3}},
		{"215 ao 220", seq(215, 220)},
		{"3-1", []int{1, 3}},
		{"1E2E3", []int{1, 2, 3}},
		{"7", []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			found := make(map[int]struct{})
			expandRange(tt.in, found)
			assert.Len(t, found, len(tt.expected))
			for _, n := range tt.expected {
				assert.Contains(t, found, n)
			}
		})
	}
}

func TestExtractNumbers_SortedUniqueIdempotent(t *testing.T) {
	t.Parallel()

	extractors := map[string]func(string) ([]int, error){
		"episodes": ExtractEpisodes,
		"seasons":  ExtractSeasons,
	}

	var titles []string
	for _, c := range episodeCases {
		titles = append(titles, c.title)
	}
	for _, c := range seasonCases {
		titles = append(titles, c.title)
	}

	for name, extract := range extractors {
		for _, title := range titles {
			first, err := extract(title)
			require.NoError(t, err)
			for i := 1; i < len(first); i++ {
				assert.Less(t, first[i-1], first[i], "%s of %q", name, title)
			}

			second, err := extract(title)
			require.NoError(t, err)
			assert.Equal(t, first, second, "%s of %q", name, title)
		}
	}
}
