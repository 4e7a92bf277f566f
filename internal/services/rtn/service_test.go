// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package rtn

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autobrr/rtn/internal/domain"
	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/services/ranker"
)

const walkingDead = "The.Walking.Dead.S05E03.720p.HDTV.x264-ASAP"

// permissiveSettings accepts anything that is not trash.
func permissiveSettings() *models.Settings {
	s := models.DefaultSettings()
	for _, k := range models.CustomRankKeys() {
		s.CustomRanks.Set(k, models.CustomRank{Fetch: true})
	}
	s.Resolutions = models.Resolutions{
		R2160p: true, R1080p: true, R720p: true, R480p: true, R360p: true, Unknown: true,
	}
	s.Languages.Exclude = []string{}
	s.Options.RemoveRanksUnder = math.MinInt32
	return s
}

func newService(t *testing.T, s *models.Settings, opts ...Option) *Service {
	t.Helper()
	svc, err := New(s, nil, opts...)
	require.NoError(t, err)
	return svc
}

type countingRecorder struct {
	mu       sync.Mutex
	accepted int
	rejected int
	failed   int
	keys     []string
}

func (r *countingRecorder) Accepted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
}

func (r *countingRecorder) Rejected(keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.keys = append(r.keys, keys...)
}

func (r *countingRecorder) Failed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed++
}

func TestNew_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := New(nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	s := models.DefaultSettings()
	s.Options.TitleSimilarity = 1.5
	_, err = New(s, nil)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestNew_DefaultWeights(t *testing.T) {
	t.Parallel()

	svc := newService(t, models.DefaultSettings())
	assert.Equal(t, models.DefaultRanking(), *svc.Weights())
}

func TestRank_Accepted(t *testing.T) {
	t.Parallel()

	svc := newService(t, permissiveSettings())

	torrent, err := svc.Rank(walkingDead, "", RankOptions{})
	require.NoError(t, err)

	assert.True(t, torrent.Fetch)
	assert.Empty(t, torrent.FailedKeys)
	assert.Equal(t, walkingDead, torrent.RawTitle)
	assert.Equal(t, "The Walking Dead", torrent.Data.ParsedTitle)
	assert.Equal(t, ranker.Score(&torrent.Data, svc.Settings(), svc.Weights()), torrent.Rank)
	assert.Zero(t, torrent.LevRatio)
}

func TestRank_InvalidInput(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	svc := newService(t, permissiveSettings(), WithRecorder(rec))

	tests := []struct {
		name     string
		title    string
		infohash string
	}{
		{name: "empty title", title: ""},
		{name: "blank title", title: "   "},
		{name: "short hash", title: walkingDead, infohash: "abc123"},
		{name: "non hex sha1", title: walkingDead, infohash: "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{name: "non hex md5", title: walkingDead, infohash: "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
	}

	for _, tt := range tests {
		_, err := svc.Rank(tt.title, tt.infohash, RankOptions{})
		require.ErrorIs(t, err, domain.ErrInvalidInput, tt.name)
		assert.NotErrorIs(t, err, domain.ErrUnacceptableRelease, tt.name)
	}
	assert.Equal(t, len(tests), rec.failed)
}

func TestRank_InfoHash(t *testing.T) {
	t.Parallel()

	svc := newService(t, permissiveSettings())

	torrent, err := svc.Rank(walkingDead, "C9E15763F722F23E98A29DECDFAE341B98D53056", RankOptions{})
	require.NoError(t, err)
	assert.Equal(t, "c9e15763f722f23e98a29decdfae341b98d53056", torrent.InfoHash)

	torrent, err = svc.Rank(walkingDead, "D41D8CD98F00B204E9800998ECF8427E", RankOptions{})
	require.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", torrent.InfoHash)
}

func TestRank_TitleMatch(t *testing.T) {
	t.Parallel()

	svc := newService(t, permissiveSettings())

	torrent, err := svc.Rank(walkingDead, "", RankOptions{CorrectTitle: "The Walking Dead"})
	require.NoError(t, err)
	assert.True(t, torrent.Fetch)
	assert.InDelta(t, 1.0, torrent.LevRatio, 1e-9)

	torrent, err = svc.Rank(walkingDead, "", RankOptions{CorrectTitle: "Breaking Bad"})
	require.NoError(t, err)
	assert.False(t, torrent.Fetch)
	assert.Equal(t, []string{KeyTitleMismatch}, torrent.FailedKeys)
	assert.Zero(t, torrent.LevRatio)

	torrent, err = svc.Rank(walkingDead, "", RankOptions{
		CorrectTitle: "Breaking Bad",
		Aliases:      []string{"Walking Dead, The", "The Walking Dead"},
	})
	require.NoError(t, err)
	assert.True(t, torrent.Fetch)
}

func TestRank_RankUnder(t *testing.T) {
	t.Parallel()

	s := permissiveSettings()
	s.Options.RemoveRanksUnder = math.MaxInt32
	svc := newService(t, s)

	torrent, err := svc.Rank(walkingDead, "", RankOptions{})
	require.NoError(t, err)
	assert.False(t, torrent.Fetch)
	assert.Equal(t, []string{KeyRankUnder}, torrent.FailedKeys)

	// Collect mode keeps gathering after a mismatch, fast mode does not.
	torrent, err = svc.Rank(walkingDead, "", RankOptions{CorrectTitle: "Breaking Bad"})
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTitleMismatch, KeyRankUnder}, torrent.FailedKeys)

	torrent, err = svc.Rank(walkingDead, "", RankOptions{CorrectTitle: "Breaking Bad", SpeedMode: true})
	require.NoError(t, err)
	assert.Equal(t, []string{KeyTitleMismatch}, torrent.FailedKeys)
}

func TestRank_Strict(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	svc := newService(t, models.DefaultSettings(), WithRecorder(rec))
	title := "Guardians of the Galaxy (CamRip / 2014)"

	torrent, err := svc.Rank(title, "", RankOptions{})
	require.NoError(t, err)
	assert.False(t, torrent.Fetch)
	assert.NotEmpty(t, torrent.FailedKeys)

	_, err = svc.Rank(title, "", RankOptions{Strict: true})
	require.ErrorIs(t, err, domain.ErrUnacceptableRelease)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)

	var unacceptable *domain.UnacceptableReleaseError
	require.True(t, errors.As(err, &unacceptable))
	assert.Equal(t, title, unacceptable.Title)
	assert.ElementsMatch(t, torrent.FailedKeys, unacceptable.Keys)

	assert.Equal(t, 2, rec.rejected)
	assert.Zero(t, rec.accepted)
}

func TestTitleMatch(t *testing.T) {
	t.Parallel()

	svc := newService(t, models.DefaultSettings())

	ok, ratio, err := svc.TitleMatch("The Walking Dead", "the walking dead s05e03 720p hdtv x264-asap")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, ratio, 0.85)

	ok, ratio, err = svc.TitleMatch("Game of Thrones", walkingDead)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, ratio)

	_, _, err = svc.TitleMatch("", walkingDead)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = svc.TitleMatch("The Walking Dead", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEpisodesFromSeason(t *testing.T) {
	t.Parallel()

	svc := newService(t, models.DefaultSettings())

	episodes, err := svc.EpisodesFromSeason(walkingDead, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, episodes)

	episodes, err = svc.EpisodesFromSeason(walkingDead, 4)
	require.NoError(t, err)
	assert.Empty(t, episodes)

	for _, season := range []int{0, -1} {
		_, err = svc.EpisodesFromSeason(walkingDead, season)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err = svc.EpisodesFromSeason("", 1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBatchRank(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	svc := newService(t, permissiveSettings(), WithRecorder(rec))

	items := []Item{
		{RawTitle: walkingDead},
		{RawTitle: ""},
		{RawTitle: "Oppenheimer.2023.1080p.BluRay.REMUX.AVC.DTS-HD.MA.5.1-FGT"},
		{RawTitle: walkingDead, InfoHash: "not-a-hash"},
		{RawTitle: "The.Walking.Dead.S05E04.720p.HDTV.x264-ASAP"},
	}

	results := svc.BatchRank(context.Background(), items, RankOptions{}, 2)
	require.Len(t, results, len(items))

	for i, r := range results {
		assert.Equal(t, items[i], r.Item)
		switch i {
		case 1, 3:
			require.ErrorIs(t, r.Err, domain.ErrInvalidInput, i)
		default:
			require.NoError(t, r.Err, i)
			assert.Equal(t, items[i].RawTitle, r.Torrent.RawTitle)
			assert.True(t, r.Torrent.Fetch, i)
		}
	}

	sum := Summarize(results)
	assert.Equal(t, BatchSummary{Total: 5, Accepted: 3, Failed: 2}, sum)
	assert.Equal(t, 3, rec.accepted)
	assert.Equal(t, 2, rec.failed)
}

type panickingRecorder struct {
	countingRecorder
	panicOn int
	calls   int
}

func (r *panickingRecorder) Accepted() {
	r.mu.Lock()
	r.calls++
	n := r.calls
	r.mu.Unlock()
	if n == r.panicOn {
		panic("recorder exploded")
	}
	r.countingRecorder.Accepted()
}

func TestBatchRank_PanicStaysWithItem(t *testing.T) {
	t.Parallel()

	rec := &panickingRecorder{panicOn: 2}
	svc := newService(t, permissiveSettings(), WithRecorder(rec))

	items := []Item{
		{RawTitle: walkingDead},
		{RawTitle: "Oppenheimer.2023.1080p.BluRay.REMUX.AVC.DTS-HD.MA.5.1-FGT"},
		{RawTitle: "The.Walking.Dead.S05E04.720p.HDTV.x264-ASAP"},
	}

	// A single worker runs items in order, so the second item panics.
	results := svc.BatchRank(context.Background(), items, RankOptions{}, 1)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
	assert.Contains(t, results[1].Err.Error(), "recorder exploded")
	assert.Equal(t, items[1], results[1].Item)
	assert.Empty(t, results[1].Torrent.RawTitle)
	require.NoError(t, results[2].Err)
	assert.True(t, results[2].Torrent.Fetch)

	assert.Equal(t, BatchSummary{Total: 3, Accepted: 2, Failed: 1}, Summarize(results))
}

func TestSummarize_StrictRejectionsCountAsRejected(t *testing.T) {
	t.Parallel()

	rec := &countingRecorder{}
	svc := newService(t, models.DefaultSettings(), WithRecorder(rec))

	items := []Item{
		{RawTitle: "Guardians of the Galaxy (CamRip / 2014)"},
		{RawTitle: ""},
	}
	results := svc.BatchRank(context.Background(), items, RankOptions{Strict: true}, 2)

	require.ErrorIs(t, results[0].Err, domain.ErrUnacceptableRelease)
	require.ErrorIs(t, results[1].Err, domain.ErrInvalidInput)

	sum := Summarize(results)
	assert.Equal(t, BatchSummary{Total: 2, Rejected: 1, Failed: 1}, sum)
	assert.Equal(t, rec.rejected, sum.Rejected)
	assert.Equal(t, rec.failed, sum.Failed)
}

func TestBatchRank_Cancelled(t *testing.T) {
	t.Parallel()

	svc := newService(t, permissiveSettings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := svc.BatchRank(ctx, []Item{{RawTitle: walkingDead}, {RawTitle: walkingDead}}, RankOptions{}, 0)
	require.Len(t, results, 2)
	for _, r := range results {
		require.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestSettingsRoundTripKeepsDecisions(t *testing.T) {
	t.Parallel()

	corpus := []string{
		walkingDead,
		"Oppenheimer.2023.1080p.BluRay.REMUX.AVC.DTS-HD.MA.5.1-FGT",
		"Guardians of the Galaxy (CamRip / 2014)",
		"Dune.Part.Two.2024.2160p.WEB-DL.DV.HDR10+.MULTi.x265-GROUP",
		"The Simpsons S01E01E02 1080p BluRay x265 HEVC 10bit AAC 5.1",
		"Shogun.2024.S01.COMPLETE.1080p.WEB.H264-NTb",
	}

	original := models.DefaultSettings()
	var err error
	original.Preferred, err = models.ParsePatterns(`/\bHDR10\+?\b/`, "remux")
	require.NoError(t, err)
	original.Exclude, err = models.ParsePatterns(`/\bH264\b/`)
	require.NoError(t, err)
	original.Languages.Preferred = []string{"fr"}

	for _, format := range []models.Format{models.FormatJSON, models.FormatYAML} {
		data, err := models.EncodeSettings(original, format)
		require.NoError(t, err)
		decoded, err := models.DecodeSettings(data, format)
		require.NoError(t, err)

		before := newService(t, original)
		after := newService(t, decoded)

		for _, title := range corpus {
			want, err := before.Rank(title, "", RankOptions{})
			require.NoError(t, err, title)
			got, err := after.Rank(title, "", RankOptions{})
			require.NoError(t, err, title)

			assert.Equal(t, want.Fetch, got.Fetch, title)
			assert.Equal(t, want.Rank, got.Rank, title)
			assert.Equal(t, want.FailedKeys, got.FailedKeys, title)
		}
	}
}
