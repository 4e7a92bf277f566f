// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"github.com/dlclark/regexp2"
)

// Rule tables use regexp2 rather than regexp: several rules depend on
// lookaround and all of them rely on Unicode word boundaries.

func mustCompile(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.IgnoreCase)
}

func mustCompileCase(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.None)
}

func mustCompileAll(patterns ...string) []*regexp2.Regexp {
	compiled := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, mustCompile(p))
	}
	return compiled
}

// matchAny reports whether any pattern matches s. Match errors count as no match.
func matchAny(patterns []*regexp2.Regexp, s string) bool {
	for _, re := range patterns {
		if ok, err := re.MatchString(s); err == nil && ok {
			return true
		}
	}
	return false
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

var trashPatterns = mustCompileAll(
	`\b(?:H[DQ][ .-]*)?CAM(?:H[DQ])?(?:[ .-]*Rip)?\b`,
	`\b(?:H[DQ][ .-]*)?S[ .-]*print\b`,
	`\b(?:HD[ .-]*)?T(?:ELE)?S(?:YNC)?(?:Rip)?\b`,
	`\b(?:HD[ .-]*)?T(?:ELE)?C(?:INE)?(?:Rip)?\b`,
	`\bP(?:re)?DVD(?:Rip)?\b`,
	`\b(?:DVD?|BD|BR)?[ .-]*Scr(?:eener)?\b`,
	`\bVHS\b`,
	`\bHD[ .-]*TV(?:Rip)\b`,
	`\bDVB[ .-]*(?:Rip)?\b`,
	`\bSAT[ .-]*Rips?\b`,
	`\bTVRips?\b`,
	`\bR5|R6\b`,
	`\b(DivX|XviD)\b`,
	`\b(?:Deleted[ .-]*)?Scene(?:s)?\b`,
	`\bTrailers?\b`,
	`\b((Half.)?SBS|3D)\b`,
	`\bWEB[ .-]?DL[ .-]?Rip\b`,
	`\b(iso|rar|mp3|ogg|txt|nfo|ts|m2ts)$\b`,
	`\bLeaked\b`,
)

var multiAudioPatterns = mustCompileAll(
	`\bmulti(?:ple)?[ .-]*(?:lang(?:uages?)?|audio|VF2)?\b`,
	`\btri(?:ple)?[ .-]*(?:audio|dub\w*)\b`,
	`\bdual[ .-]*(?:au?$|[aá]udio|line)\b`,
	`\b(?:audio|dub(?:bed)?)[ .-]*dual\b`,
	`\b(?:DUBBED|dublado|dubbing|DUBS?)\b`,
)

var multiSubtitlePatterns = mustCompileAll(
	`\bmulti(?:ple)?[ .-]*(?:lang(?:uages?)?)?\b`,
	`\bdual\b(?![ .-]*sub)`,
	`\bengl?(?:sub[A-Z]*)?\b`,
	`\beng?sub[A-Z]*\b`,
)

// hdrTagPatterns are checked in priority order; the first hit wins.
var hdrTagPatterns = []struct {
	re  *regexp2.Regexp
	tag string
}{
	{mustCompile(`\bDV\b|dolby.?vision|\bDoVi\b`), "DV"},
	{mustCompile(`HDR10(?:\+|plus)`), "HDR10+"},
	{mustCompile(`\bHDR(?:10)?\b`), "HDR"},
}

var completePatterns = mustCompileAll(
	`(?:\bthe\W)?(?:\bcomplete|collection|dvd)?\b[ .]?\bbox[ .-]?set\b`,
	`(?:\bthe\W)?(?:\bcomplete|collection|dvd)?\b[ .]?\bmini[ .-]?series\b`,
	`(?:\bthe\W)?(?:\bcomplete|full|all)\b.*\b(?:series|seasons|collection|episodes|set|pack|movies)\b`,
	`\b(?:series|seasons|movies?)\b.*\b(?:complete|collection)\b`,
	`(?:\bthe\W)?\bultimate\b[ .]\bcollection\b`,
	`\bcollection\b.*\b(?:set|pack|movies)\b`,
	`\bcollection\b`,
	`duology|trilogy|quadr[oi]logy|tetralogy|pentalogy|hexalogy|heptalogy|anthology|saga`,
)

var fourKPattern = mustCompile(`\b4K|2160p\b`)

// Flags the tokenizers do not report on their own.
var (
	retailPattern      = mustCompile(`\bRetail\b`)
	upscaledPattern    = mustCompile(`\b(?:up(?:scaled?|conv(?:ert(?:ed)?)?)|AI[ .-]?(?:upscal\w*|enhanced))\b`)
	convertedPattern   = mustCompile(`\bCONVERT(?:ED)?\b`)
	documentaryPattern = mustCompile(`\bDOCU(?:MENTAR(?:Y|IO|IES))?\b`)
	subbedPattern      = mustCompile(`\b(?:SUBBED|SUBTITLED|VOSTFR|LEGENDADO|(?:ENG?|MULTI|DK|NL|KOR|CHS|CHT)?[ .-]?SUBS)\b`)
	remuxPattern       = mustCompile(`\bREMUX\b`)
	remasteredPattern  = mustCompile(`\bRemaster(?:ed)?\b`)
	editionPattern     = mustCompile(`\b(?:Director'?s[ .]Cut|Extended[ .](?:Cut|Edition)|Theatrical(?:[ .]Cut)?|Ultimate[ .](?:Cut|Edition)|Collector'?s[ .]Edition|Special[ .]Edition|Anniversary[ .]Edition|Criterion|IMAX|Uncut)\b`)
	sitePattern        = mustCompile(`^\s*\[?\s*(?:www\.)?[\w-]+\.(?:com|org|net|to|io|me|cc|tv|xyz|li|ws|is|in|ru|mx|club)\s*(?:\]|\s-\s)`)
)

var scenePatterns = []*regexp2.Regexp{
	mustCompileCase(`^(?=.*\b\d{3,4}p\b)(?=.*[_. ]WEB[_. ](?!DL)).*$`),
	mustCompileCase(`-(?:CAKES|GGEZ|GGWP|GLHF|GOSSIP|NAISU|KOGI|PECULATE|SLOT|EDITH|ETHEL|ELEANOR|B2B|SPAMnEGGS|FTP|DiRT|SYNCOPY|BAE|SuccessfulCrab|NHTFS|SURCODE|B0MBARDIERS)\b`),
}
