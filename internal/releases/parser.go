// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"time"

	"github.com/autobrr/autobrr/pkg/ttlcache"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

const defaultParserTTL = 5 * time.Minute

type cachedAttributes struct {
	raw   string
	attrs Attributes
}

// Parser memoizes Parse. Results are identical to calling Parse directly;
// concurrent requests for the same title share one parse.
type Parser struct {
	cache *ttlcache.Cache[uint64, cachedAttributes]
	group singleflight.Group
}

// NewParser creates a parser whose cache entries expire after ttl.
// A non-positive ttl uses the five minute default.
func NewParser(ttl time.Duration) *Parser {
	if ttl <= 0 {
		ttl = defaultParserTTL
	}
	return &Parser{
		cache: ttlcache.New(ttlcache.Options[uint64, cachedAttributes]{}.
			SetDefaultTTL(ttl)),
	}
}

// Parse returns the attributes of raw, from cache when available.
func (p *Parser) Parse(raw string) (Attributes, error) {
	key := xxhash.Sum64String(raw)

	// Entries carry the raw title so a hash collision falls through to a parse.
	if cached, found := p.cache.Get(key); found && cached.raw == raw {
		return cached.attrs, nil
	}

	v, err, _ := p.group.Do(raw, func() (any, error) {
		attrs, err := Parse(raw)
		if err != nil {
			return Attributes{}, err
		}
		p.cache.Set(key, cachedAttributes{raw: raw, attrs: attrs}, ttlcache.DefaultTTL)
		return attrs, nil
	})
	if err != nil {
		return Attributes{}, err
	}
	return v.(Attributes), nil
}

// Clear removes a specific entry from cache.
func (p *Parser) Clear(raw string) {
	p.cache.Delete(xxhash.Sum64String(raw))
}
