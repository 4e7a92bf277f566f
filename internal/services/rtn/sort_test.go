// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package rtn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autobrr/rtn/internal/releases"
)

func torrent(hash, resolution string, rank int) Torrent {
	return Torrent{
		InfoHash: hash,
		RawTitle: hash,
		Rank:     rank,
		Data:     releases.Attributes{Resolution: resolution},
	}
}

func hashes(torrents []Torrent) []string {
	out := make([]string, 0, len(torrents))
	for _, t := range torrents {
		out = append(out, t.InfoHash)
	}
	return out
}

func TestResolutionBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		resolution string
		want       string
	}{
		{"2160p", Bucket2160p},
		{"4K", Bucket2160p},
		{"1440p", Bucket1440p},
		{"1080p", Bucket1080p},
		{"1080i", Bucket1080p},
		{"720p", Bucket720p},
		{"576p", Bucket576p},
		{"480p", Bucket480p},
		{"360p", Bucket360p},
		{"", BucketUnknown},
		{"240p", BucketUnknown},
	}

	for _, tt := range tests {
		tr := torrent("h", tt.resolution, 0)
		assert.Equal(t, tt.want, ResolutionBucket(&tr), tt.resolution)
	}
}

func TestSortTorrents(t *testing.T) {
	t.Parallel()

	input := []Torrent{
		torrent("a", "720p", 500),
		torrent("b", "1080p", 100),
		torrent("c", "2160p", -50),
		torrent("d", "1080p", 900),
		torrent("e", "", 5000),
		torrent("f", "480p", 10),
		torrent("g", "4k", 20),
	}

	tests := []struct {
		name        string
		bucketLimit int
		resolutions []string
		want        []string
	}{
		{
			name: "bucket then rank",
			want: []string{"g", "c", "d", "b", "a", "f", "e"},
		},
		{
			name:        "bucket limit",
			bucketLimit: 1,
			want:        []string{"g", "d", "a", "f", "e"},
		},
		{
			name:        "resolution filter",
			resolutions: []string{"1080p", "unknown"},
			want:        []string{"d", "b", "e"},
		},
		{
			name:        "filter and limit",
			bucketLimit: 1,
			resolutions: []string{"2160p", "1080p"},
			want:        []string{"g", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SortTorrents(input, tt.bucketLimit, tt.resolutions)
			assert.Equal(t, tt.want, hashes(got))
		})
	}
}

func TestSortTorrents_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []Torrent{torrent("a", "720p", 1), torrent("b", "1080p", 2)}
	_ = SortTorrents(input, 0, nil)
	assert.Equal(t, []string{"a", "b"}, hashes(input))
}

func TestSortTorrents_DuplicateInfoHash(t *testing.T) {
	t.Parallel()

	input := []Torrent{
		torrent("a", "1080p", 10),
		torrent("a", "1080p", 90),
		torrent("", "1080p", 5),
		torrent("", "1080p", 1),
	}

	got := SortTorrents(input, 0, nil)
	assert.Equal(t, []string{"a", "", ""}, hashes(got))
	assert.Equal(t, 90, got[0].Rank)
}
