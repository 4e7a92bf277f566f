// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"

	"github.com/autobrr/rtn/internal/domain"
)

// numberTransform turns the first capture group of a rule match into numbers.
type numberTransform int

const (
	// transformRange expands "1-3", "1E2E3" or "215 ao 220" into a range when
	// exactly two ascending numbers are present, otherwise keeps each number.
	transformRange numberTransform = iota
	// transformInts takes the captured digits as a single number.
	transformInts
)

type numberRule struct {
	re        *regexp2.Regexp
	transform numberTransform
}

func rangeRule(pattern string) numberRule {
	return numberRule{re: mustCompile(pattern), transform: transformRange}
}

func intRule(pattern string) numberRule {
	return numberRule{re: mustCompile(pattern), transform: transformInts}
}

func intRuleCase(pattern string) numberRule {
	return numberRule{re: mustCompileCase(pattern), transform: transformInts}
}

// episodeRules is an ordered cascade; every rule runs and the results are unioned.
// Hyphenated anime numbering ("Naruto Shippuden - 107 - ...") is a known miss.
// Prefixes use (?:\W|\d|^) since regexp2 with IgnoreCase never matches a
// digit through a [\W\d] class.
var episodeRules = []numberRule{
	rangeRule(`(?:\W|\d|^)e[ .]?[([]?(\d{1,3}(?:[ .-]*(?:[&+]|e){1,2}[ .]?\d{1,3})+)(?:\W|$)`),
	rangeRule(`(?:\W|\d|^)ep[ .]?[([]?(\d{1,3}(?:[ .-]*(?:[&+]|ep){1,2}[ .]?\d{1,3})+)(?:\W|$)`),
	rangeRule(`(?:\W|\d|^)\d+[xх][ .]?[([]?(\d{1,3}(?:[ .]?[xх][ .]?\d{1,3})+)(?:\W|$)`),
	rangeRule(`(?:\W|\d|^)(?:episodes?|[Сс]ерии:?)[ .]?[([]?(\d{1,3}(?:[ .+]*[&+][ .]?\d{1,3})+)(?:\W|$)`),
	rangeRule(`[([]?(?:\D|^)(\d{1,3}[ .]?ao[ .]?\d{1,3})[)\]]?(?:\W|$)`),
	rangeRule(`(?:\W|\d|^)(?:e|eps?|episodes?|[Сс]ерии:?|\d+[xх])[ .]*[([]?(\d{1,3}(?:-\d{1,3})+)(?:\W|$)`),
	intRule(`(?:\W|^)[st]\d{1,2}[. ]?[xх-]?[. ]?(?:e|x|х|ep|-|\.)[. ]?(\d{1,3})(?:[abc]|v0?[1-4]|\D|$)`),
	intRule(`\b[st]\d{2}(\d{2})\b`),
	rangeRule(`(?:\W|^)(\d{1,3}(?:[ .]*~[ .]*\d{1,3})+)(?:\W|$)`),
	rangeRule(`-\s(\d{1,3}[ .]*-[ .]*\d{1,3})(?!-\d)(?:\W|$)`),
	rangeRule(`s\d{1,2}\s?\((\d{1,3}[ .]*-[ .]*\d{1,3})\)`),
	intRuleCase(`(?:^|\/)\d{1,2}-(\d{2})\b(?!-\d)`),
	intRuleCase(`(?<!\d-)\b\d{1,2}-(\d{2})(?=\.\w{2,4}$)`),
	rangeRule(`(?<!seasons?|[Сс]езони?)\W(?:[ .([-]|^)(\d{1,3}(?:[ .]?[,&+~][ .]?\d{1,3})+)(?:[ .)\]-]|$)`),
	rangeRule(`(?<!seasons?|[Сс]езони?)\W(?:[ .([-]|^)(\d{1,3}(?:-\d{1,3})+)(?:[ .)(\]]|-\D|$)`),
	intRule(`\bEp(?:isode)?\W+\d{1,2}\.(\d{1,3})\b`),
	intRule(`(?:\b[ée]p?(?:isode)?|[Ээ]пизод|[Сс]ер(?:ии|ия|\.)?|cap(?:itulo)?|epis[oó]dio)[. ]?[-:#№]?[. ]?(\d{1,4})(?:[abc]|v0?[1-4]|\W|$)`),
	intRule(`\b(\d{1,3})(?:-?я)?[ ._-]*(?:ser(?:i?[iyj]a|\b)|[Сс]ер(?:ии|ия|\.)?)`),
	// Requires a non-digit before the season so "1.x265" is not read as an episode.
	intRuleCase(`(?:\D|^)\d{1,2}[. ]?[xх][. ]?(\d{1,2})(?:[abc]|v0?[1-4]|\D|$)`),
	intRuleCase(`[[(]\d{1,2}\.(\d{1,3})[)\]]`),
	intRuleCase(`\b[Ss]\d{1,2}[ .](\d{1,2})\b`),
	intRuleCase(`-\s?\d{1,2}\.(\d{2,3})\s?-`),
	intRule(`(?<=\D|^)(\d{1,3})[. ]?(?:of|из|iz)[. ]?\d{1,3}(?=\D|$)`),
	intRuleCase(`\b\d{2}[ ._-](\d{2})(?:.F)?\.\w{2,4}$`),
	intRuleCase(`(?<!^)\[(\d{2,3})\](?!(?:\.\w{2,4})?$)`),
}

// seasonRules mirror episodeRules for season numbers.
var seasonRules = []numberRule{
	rangeRule(`(s\d{1,2}(?:[ .]*(?:-|~|to|thru|&|\+)[ .]*s\d{1,2})+)(?=(?:\W|_)|e\d|$)`),
	rangeRule(`(?:^|[\s.\[_])(s\d{1,2}[ .]*(?:-|~|to|thru)[ .]*\d{1,2})(?=[\s.\]_]|$)`),
	intRule(`(?:^|(?:\W|_))s(\d{1,2})(?=e\d|x\d|(?:\W|_)|$)`),
	rangeRule(`\bseasons?[ .([:#-]*(\d{1,2}(?:[ .]*(?:-|~|to|thru|&|\+|,|and)[ .]*\d{1,2})+)(?!\d)`),
	intRule(`\b(?:seasons?|saisons?|temporadas?|stagion[ei]|staffel|сезоны?)[ .:#-]*(\d{1,2})(?!\d)`),
	intRule(`\b(\d{1,2})(?:st|nd|rd|th|ª|º)?[ .-]*(?:season|saison|temporada|сезон)\b`),
	rangeRule(`\b(\d{1,2}[ªº]?[ .]*a[ .]*\d{1,2})[ªº]?[ .]*temporadas?\b`),
	intRule(`(?:^|\D)(\d{1,2})[xх]\d{1,3}(?=\D|$)`),
	intRule(`[([]s(\d{1,2})-\d{1,3}[)\]]`),
}

// captures yields the first capture group of every non-overlapping match.
func (r numberRule) captures(s string) []string {
	var out []string
	m, err := r.re.FindStringMatch(s)
	for err == nil && m != nil {
		if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
			out = append(out, g.String())
		}
		m, err = r.re.FindNextMatch(m)
	}
	return out
}

// splitNumbers returns the decimal numbers in s, splitting on any run of non-digits.
func splitNumbers(s string) []int {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func expandRange(s string, into map[int]struct{}) {
	nums := splitNumbers(s)
	if len(nums) == 2 && nums[0] < nums[1] {
		for n := nums[0]; n <= nums[1]; n++ {
			into[n] = struct{}{}
		}
		return
	}
	for _, n := range nums {
		into[n] = struct{}{}
	}
}

func runRules(title string, rules []numberRule) []int {
	found := make(map[int]struct{})
	for _, rule := range rules {
		for _, capture := range rule.captures(title) {
			switch rule.transform {
			case transformRange:
				expandRange(capture, found)
			case transformInts:
				if isDigits(capture) {
					if n, err := strconv.Atoi(capture); err == nil {
						found[n] = struct{}{}
					}
				}
			}
		}
	}

	out := make([]int, 0, len(found))
	for n := range found {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ExtractEpisodes returns the sorted, duplicate-free episode numbers found in title.
func ExtractEpisodes(title string) ([]int, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewInvalidInput("title", "must not be empty")
	}
	return runRules(title, episodeRules), nil
}

// ExtractSeasons returns the sorted, duplicate-free season numbers found in title.
func ExtractSeasons(title string) ([]int, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewInvalidInput("title", "must not be empty")
	}
	return runRules(title, seasonRules), nil
}
