// Package normalizer cleans a raw pasted price list before structural
// parsing. It strips byte-order artifacts, collapses non-breaking spaces
// and discards known-noise lines (export banners, bare dates, store/branch
// title lines) so the tokenizer only ever sees candidate content lines.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Export banner keywords, matched case-insensitively by containment. These
// come from the sharing format the mobile app exports.
var bannerKeywords = []string{"PRICELIST", "SHARED VIA PRESYOHAN"}

var (
	dateLine   = regexp.MustCompile(`^\s*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\s*$`)
	priceToken = regexp.MustCompile(`(?:₱\s*)?[0-9]+(?:[.,][0-9]{1,2})?`)
)

// spaceFolder maps the various non-breaking space code points onto a plain
// space and drops the BOM, then recomposes to NFC.
var spaceFolder = transform.Chain(
	runes.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u202f', '\u2007':
			return ' '
		}
		return r
	}),
	runes.Remove(runes.Predicate(func(r rune) bool { return r == '\ufeff' })),
	norm.NFC,
)

// CleanLines splits the raw text blob into trimmed lines with blanks and
// noise removed. It is purely functional over the input.
func CleanLines(raw string) []string {
	folded, _, err := transform.String(spaceFolder, raw)
	if err != nil {
		// transform only fails on invalid UTF-8; keep the raw text and let
		// the tokenizer surface unparseable lines as error items.
		folded = raw
	}

	var out []string
	for _, lineRaw := range strings.Split(folded, "\n") {
		line := strings.TrimSpace(lineRaw)
		if line == "" {
			continue
		}
		if isBanner(line) || dateLine.MatchString(line) {
			continue
		}
		if isStoreTitle(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isBanner(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range bannerKeywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

// isStoreTitle recognizes the "StoreName — Branch" line that exported lists
// often begin with. It must not be mistaken for a category header: em-dash
// present, no digit, not bulleted, not bracketed. The dash-less keyword
// form is only noise before the first category header, so the tokenizer
// handles it where that state is known.
func isStoreTitle(line string) bool {
	if !strings.ContainsRune(line, '—') {
		return false
	}
	if strings.ContainsFunc(line, unicode.IsDigit) {
		return false
	}
	if IsBulleted(line) || IsBracketed(line) {
		return false
	}
	return true
}

// IsBulleted reports whether the trimmed line starts with a bullet
// character (-, • or *).
func IsBulleted(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	switch t[0] {
	case '-', '*':
		return true
	}
	return strings.HasPrefix(t, "•")
}

// IsBracketed reports whether the line is a [NAME] category header form.
func IsBracketed(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") && len(t) > 2
}

// HasPriceToken reports whether the line contains anything matching the
// numeric price grammar.
func HasPriceToken(line string) bool {
	return priceToken.MatchString(line)
}
