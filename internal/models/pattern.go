// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"

	"github.com/autobrr/rtn/internal/domain"
)

// patternMatchTimeout bounds a single user pattern evaluation.
const patternMatchTimeout = 250 * time.Millisecond

// Pattern is a compiled require/exclude/preferred expression.
//
// Patterns written as /expr/ are case-sensitive and /expr/i explicitly
// case-insensitive. Anything else is compiled case-insensitively as written.
// The source form is kept so documents re-serialize unchanged.
type Pattern struct {
	source        string
	expr          string
	caseSensitive bool
	re            *regexp2.Regexp
}

// ParsePattern compiles src. Empty or malformed expressions return an
// *domain.InvalidConfigurationError.
func ParsePattern(src string) (Pattern, error) {
	expr, caseSensitive := splitDelimiters(src)
	if strings.TrimSpace(expr) == "" {
		return Pattern{}, domain.NewInvalidConfiguration("pattern", fmt.Errorf("empty pattern %q", src))
	}

	opts := regexp2.IgnoreCase
	if caseSensitive {
		opts = regexp2.None
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return Pattern{}, domain.NewInvalidConfiguration("pattern", fmt.Errorf("compile %q: %w", src, err))
	}
	re.MatchTimeout = patternMatchTimeout

	return Pattern{source: src, expr: expr, caseSensitive: caseSensitive, re: re}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(src string) Pattern {
	p, err := ParsePattern(src)
	if err != nil {
		panic(err)
	}
	return p
}

func splitDelimiters(src string) (expr string, caseSensitive bool) {
	if len(src) >= 3 && strings.HasPrefix(src, "/") && strings.HasSuffix(src, "/i") {
		return src[1 : len(src)-2], false
	}
	if len(src) >= 2 && strings.HasPrefix(src, "/") && strings.HasSuffix(src, "/") {
		return src[1 : len(src)-1], true
	}
	return src, false
}

// String returns the pattern as written, delimiters included.
func (p Pattern) String() string { return p.source }

// Expr returns the expression without delimiters.
func (p Pattern) Expr() string { return p.expr }

func (p Pattern) CaseSensitive() bool { return p.caseSensitive }

// MatchString reports whether the pattern matches anywhere in s. A zero
// Pattern or a timed out evaluation never matches.
func (p Pattern) MatchString(s string) bool {
	if p.re == nil {
		return false
	}
	ok, err := p.re.MatchString(s)
	return err == nil && ok
}

func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.source)
}

func (p *Pattern) UnmarshalJSON(data []byte) error {
	var src string
	if err := json.Unmarshal(data, &src); err != nil {
		return err
	}
	parsed, err := ParsePattern(src)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p Pattern) MarshalYAML() (any, error) {
	return p.source, nil
}

func (p *Pattern) UnmarshalYAML(value *yaml.Node) error {
	var src string
	if err := value.Decode(&src); err != nil {
		return err
	}
	parsed, err := ParsePattern(src)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// matchAnyPattern returns the first pattern matching s.
func matchAnyPattern(patterns []Pattern, s string) (Pattern, bool) {
	for _, p := range patterns {
		if p.MatchString(s) {
			return p, true
		}
	}
	return Pattern{}, false
}

// ParsePatterns compiles every source, stopping at the first invalid one.
func ParsePatterns(srcs ...string) ([]Pattern, error) {
	out := make([]Pattern, 0, len(srcs))
	for _, src := range srcs {
		p, err := ParsePattern(src)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
