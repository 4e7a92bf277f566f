// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package stringutils canonicalizes release titles for similarity comparison.
package stringutils

import (
	"sync/atomic"
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
)

const (
	defaultNormalizerTTL = 5 * time.Minute

	// maxCachedKeyLen bounds the inputs kept in the cache. Release titles are
	// far shorter; anything longer is transformed on every call.
	maxCachedKeyLen = 512
)

// TransformFunc maps a title to its canonical form. It must be pure.
type TransformFunc func(string) string

// Normalizer memoizes a title transform for a limited time.
type Normalizer struct {
	cache     *ttlcache.Cache[string, string]
	transform TransformFunc

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewNormalizer returns a Normalizer whose entries expire after ttl.
func NewNormalizer(ttl time.Duration, transform TransformFunc) *Normalizer {
	return &Normalizer{
		cache:     ttlcache.New(ttlcache.Options[string, string]{}.SetDefaultTTL(ttl)),
		transform: transform,
	}
}

// Normalize returns transform(title), computing it at most once per title
// until the entry expires.
func (n *Normalizer) Normalize(title string) string {
	if len(title) > maxCachedKeyLen {
		n.misses.Add(1)
		return n.transform(title)
	}
	if cached, ok := n.cache.Get(title); ok {
		n.hits.Add(1)
		return cached
	}

	n.misses.Add(1)
	out := n.transform(title)
	n.cache.Set(title, out, ttlcache.DefaultTTL)
	return out
}

// Forget drops the cached form of title.
func (n *Normalizer) Forget(title string) {
	n.cache.Delete(title)
}

// Stats reports cache hits and misses since creation.
func (n *Normalizer) Stats() (hits, misses uint64) {
	return n.hits.Load(), n.misses.Load()
}
