// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package releases

import (
	"regexp"
	"strings"

	"github.com/moistari/rls"
)

var (
	reRIAJ = regexp.MustCompile(`(?i)\b[A-Z]{4}-?\d{3,5}\b`)
	// JAV product codes are uppercase studio prefixes; lowercase tokens such
	// as "x264-720" never qualify.
	reJAV = regexp.MustCompile(`\b[A-Z]{2,5}-\d{3,4}\b`)

	reAdultDate   = regexp.MustCompile(`\b\d{6}[_-]\d{3}\b`)
	reBracketDate = regexp.MustCompile(`\[[12]\d{3}\.\d{2}\.\d{2}\]`)
	reAdultXXX    = regexp.MustCompile(`(?i)\bxxx\b`)

	reAdultKeywords = regexp.MustCompile(`(?i)\b(?:porn\w*|xvideos|xhamster|brazzers|bangbros|onlyfans|naughty[ .]?america|reality[ .]?kings|vrporn|tushy|nubiles|faketaxi|hentai|nsfw)\b`)
)

// RIAJ media type mapping based on the 3rd character of the 4-letter manufacturer code.
var riajMediaTypes = map[byte]string{
	'A': "dvd-audio",
	'B': "dvd-video",
	'C': "cd",
	'D': "cd-single",
	'F': "cd-video",
	'G': "sacd",
	'H': "hd-dvd",
	'I': "video-cd",
	'J': "vinyl-lp",
	'K': "vinyl-ep",
	'L': "ld-30cm",
	'M': "ld-20cm",
	'N': "cd-g",
	'P': "ps-game",
	'R': "cd-rom",
	'S': "cassette-single",
	'T': "cassette-album",
	'U': "umd-video",
	'V': "vhs",
	'W': "dvd-music",
	'X': "bluray",
	'Y': "md",
	'Z': "multi-format",
}

func detectRIAJMediaType(title string) string {
	match := reRIAJ.FindString(title)
	if match == "" {
		return ""
	}
	code := strings.ToUpper(strings.ReplaceAll(match, "-", ""))
	if len(code) < 4 {
		return ""
	}
	return riajMediaTypes[code[2]]
}

// IsAdult reports whether title appears to be adult content.
func IsAdult(title string) bool {
	if reAdultKeywords.MatchString(title) {
		return true
	}
	release := rls.ParseString(title)
	return isAdultRelease(&release, title)
}

func isAdultRelease(release *rls.Release, raw string) bool {
	titleLower := strings.ToLower(release.Title)
	subtitleLower := strings.ToLower(release.Subtitle)
	collectionLower := strings.ToLower(release.Collection)

	if (reAdultXXX.MatchString(raw) || reAdultXXX.MatchString(release.Title) || reAdultXXX.MatchString(release.Subtitle)) &&
		!isBenignXXXContent(release, titleLower, subtitleLower, collectionLower) {
		return true
	}

	// Studio product codes, unless the code is a RIAJ catalogue number.
	if reJAV.MatchString(raw) && detectRIAJMediaType(raw) == "" {
		return true
	}

	for _, s := range []string{titleLower, subtitleLower, collectionLower} {
		if reAdultDate.MatchString(s) || reBracketDate.MatchString(s) {
			return true
		}
	}
	return reBracketDate.MatchString(raw)
}

// isBenignXXXContent avoids flagging the mainstream xXx film franchise.
func isBenignXXXContent(release *rls.Release, titleLower, subtitleLower, collectionLower string) bool {
	if !strings.HasPrefix(titleLower, "xxx") && !strings.HasPrefix(subtitleLower, "xxx") && !strings.HasPrefix(collectionLower, "xxx") {
		return false
	}
	switch release.Year {
	case 2002, 2005, 2017:
		return true
	}
	for _, s := range []string{titleLower, subtitleLower, collectionLower} {
		if strings.Contains(s, "xander cage") || strings.Contains(s, "state of the union") {
			return true
		}
	}
	return false
}
