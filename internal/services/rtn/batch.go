// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package rtn

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/autobrr/rtn/internal/domain"
)

// DefaultWorkers is the batch pool size used when none is given.
const DefaultWorkers = 4

// Item is one release to rank in a batch.
type Item struct {
	RawTitle string `json:"raw_title"`
	InfoHash string `json:"infohash,omitempty"`
}

// BatchResult pairs an item with its torrent or its own error.
type BatchResult struct {
	Item    Item
	Torrent Torrent
	Err     error
}

// BatchSummary counts batch outcomes.
type BatchSummary struct {
	Total    int
	Accepted int
	Rejected int
	Failed   int
}

// Summarize counts the outcomes in results. Strict-mode rejections count as
// rejected, matching what the recorder saw.
func Summarize(results []BatchResult) BatchSummary {
	sum := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch {
		case errors.Is(r.Err, domain.ErrUnacceptableRelease):
			sum.Rejected++
		case r.Err != nil:
			sum.Failed++
		case r.Torrent.Fetch:
			sum.Accepted++
		default:
			sum.Rejected++
		}
	}
	return sum
}

// rankItem ranks one item, turning a panic into that item's error.
func (s *Service) rankItem(item Item, opts RankOptions) (res BatchResult) {
	res.Item = item
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("title", item.RawTitle).
				Interface("recover_info", r).
				Bytes("stack", debug.Stack()).
				Msg("rtn: panic while ranking")
			res.Torrent = Torrent{}
			res.Err = fmt.Errorf("rank %q: panic: %v", item.RawTitle, r)
		}
	}()

	res.Torrent, res.Err = s.Rank(item.RawTitle, item.InfoHash, opts)
	return res
}

// BatchRank ranks items over a pool of workers. Results keep the input order
// and a failing item never affects its siblings. Items not yet started when
// ctx is cancelled report ctx.Err().
func (s *Service) BatchRank(ctx context.Context, items []Item, opts RankOptions, workers int) []BatchResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]BatchResult, len(items))
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(workers)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i] = BatchResult{Item: item, Err: err}
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Item: item, Err: err}
				return nil
			}
			results[i] = s.rankItem(item, opts)
			return nil
		})
	}
	_ = g.Wait()

	sum := Summarize(results)
	log.Debug().
		Int("total", sum.Total).
		Int("accepted", sum.Accepted).
		Int("rejected", sum.Rejected).
		Int("failed", sum.Failed).
		Int("workers", workers).
		Dur("duration", time.Since(start)).
		Msg("rtn: batch ranked")

	return results
}
