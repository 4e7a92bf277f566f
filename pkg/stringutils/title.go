// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package stringutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titleNormalizer caches NormalizeTitle results; batch ranking compares the
// same correct title against every candidate.
var titleNormalizer = NewNormalizer(defaultNormalizerTTL, normalizeTitle)

// transliterations covers letters that NFKD does not decompose to a base
// letter (distinct letters in Nordic, Germanic, Slavic and Icelandic
// orthographies) plus the common precomposed Latin forms. Input is already
// lowercased when this runs.
var transliterations = strings.NewReplacer(
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"ß", "ss",
	"ð", "d",
	"þ", "th",
	"ł", "l",
	"đ", "d",
	"ħ", "h",
	"ı", "i",
	"ŀ", "l",
	"ŋ", "n",
	"ŧ", "t",
	"ſ", "s",
	"à", "a", "á", "a", "â", "a", "ã", "a", "ä", "a", "å", "a", "ā", "a", "ă", "a", "ą", "a",
	"ç", "c", "ć", "c", "č", "c",
	"ď", "d",
	"è", "e", "é", "e", "ê", "e", "ë", "e", "ē", "e", "ė", "e", "ę", "e", "ě", "e",
	"ğ", "g",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ī", "i", "į", "i",
	"ñ", "n", "ń", "n", "ň", "n",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o", "ō", "o", "ő", "o",
	"ř", "r",
	"ś", "s", "š", "s", "ş", "s",
	"ť", "t", "ţ", "t",
	"ù", "u", "ú", "u", "û", "u", "ü", "u", "ū", "u", "ů", "u", "ű", "u", "ų", "u",
	"ý", "y", "ÿ", "y",
	"ź", "z", "ż", "z", "ž", "z",
)

// titlePunctuation lists the characters dropped from titles. Apostrophe
// variants are included so "Marvel’s" and "Marvel's" agree.
var titlePunctuation = strings.NewReplacer(
	"!", "",
	"?", "",
	",", "",
	".", "",
	":", "",
	";", "",
	"'", "",
	"’", "",
	"‘", "",
	"`", "",
)

// latinFolder decomposes Latin-script runs and strips combining marks.
// Other scripts are left untouched so Cyrillic or Japanese titles keep their
// letters. A fresh chain is built per call since transformers are stateful.
func latinFolder() transform.Transformer {
	return transform.Chain(
		runes.If(runes.In(unicode.Latin), norm.NFKD, nil),
		runes.Remove(runes.In(unicode.Mn)),
	)
}

func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = transliterations.Replace(s)

	if folded, _, err := transform.String(latinFolder(), s); err == nil {
		s = folded
	}

	s = titlePunctuation.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeTitle returns the canonical comparison form of a title:
//   - lowercase
//   - Latin diacritics folded to base letters ("Amélie" → "amelie", "Straße" → "strasse")
//   - the punctuation ! ? , . : ; ' removed
//   - whitespace collapsed to single spaces and trimmed
//
// Non-Latin scripts are preserved. The function is idempotent and never fails;
// results are cached per input.
func NormalizeTitle(s string) string {
	return titleNormalizer.Normalize(s)
}
