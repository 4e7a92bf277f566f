// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package rtn

import (
	"cmp"
	"slices"
	"strings"
)

// Resolution buckets used by SortTorrents.
const (
	Bucket2160p   = "2160p"
	Bucket1440p   = "1440p"
	Bucket1080p   = "1080p"
	Bucket720p    = "720p"
	Bucket576p    = "576p"
	Bucket480p    = "480p"
	Bucket360p    = "360p"
	BucketUnknown = "unknown"
)

var bucketPriority = map[string]int{
	Bucket2160p:   9,
	Bucket1440p:   7,
	Bucket1080p:   6,
	Bucket720p:    5,
	Bucket576p:    4,
	Bucket480p:    3,
	Bucket360p:    2,
	BucketUnknown: 1,
}

var bucketAliases = map[string]string{
	"4k":    Bucket2160p,
	"2160p": Bucket2160p,
	"uhd":   Bucket2160p,
	"1440p": Bucket1440p,
	"2k":    Bucket1440p,
	"1080p": Bucket1080p,
	"1080i": Bucket1080p,
	"720p":  Bucket720p,
	"576p":  Bucket576p,
	"576i":  Bucket576p,
	"480p":  Bucket480p,
	"480i":  Bucket480p,
	"360p":  Bucket360p,
}

// ResolutionBucket maps a torrent's resolution label to its sort bucket.
func ResolutionBucket(t *Torrent) string {
	if b, ok := bucketAliases[strings.ToLower(strings.TrimSpace(t.Data.Resolution))]; ok {
		return b
	}
	return BucketUnknown
}

// SortTorrents orders torrents by resolution bucket, best first, then by rank
// descending. A non-empty resolutions list keeps only those buckets, and a
// positive bucketLimit keeps at most that many torrents per bucket. Torrents
// sharing an info hash are collapsed to the best ranked one.
func SortTorrents(torrents []Torrent, bucketLimit int, resolutions []string) []Torrent {
	var allowed map[string]struct{}
	if len(resolutions) > 0 {
		allowed = make(map[string]struct{}, len(resolutions))
		for _, r := range resolutions {
			allowed[strings.ToLower(r)] = struct{}{}
		}
	}

	sorted := make([]Torrent, 0, len(torrents))
	for i := range torrents {
		if allowed != nil {
			if _, ok := allowed[ResolutionBucket(&torrents[i])]; !ok {
				continue
			}
		}
		sorted = append(sorted, torrents[i])
	}

	slices.SortStableFunc(sorted, func(a, b Torrent) int {
		if c := cmp.Compare(bucketPriority[ResolutionBucket(&b)], bucketPriority[ResolutionBucket(&a)]); c != 0 {
			return c
		}
		return cmp.Compare(b.Rank, a.Rank)
	})

	seen := make(map[string]struct{}, len(sorted))
	perBucket := make(map[string]int)
	out := sorted[:0]
	for _, t := range sorted {
		if t.InfoHash != "" {
			if _, dup := seen[t.InfoHash]; dup {
				continue
			}
			seen[t.InfoHash] = struct{}{}
		}
		if bucketLimit > 0 {
			b := ResolutionBucket(&t)
			if perBucket[b] >= bucketLimit {
				continue
			}
			perBucket[b]++
		}
		out = append(out, t)
	}
	return out
}
