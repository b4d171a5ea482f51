package tokenizer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// priceToken matches a numeric price with an optional currency mark and an
// optional 1-2 digit fractional part. The fractional separator may be "."
// or ","; thousands grouping is not distinguished from a decimal separator
// by this grammar.
var priceToken = regexp.MustCompile(`(?:₱\s*)?([0-9]+(?:[.,][0-9]{1,2})?)`)

var (
	parenGroup = regexp.MustCompile(`\((.*?)\)`)
	numberUnit = regexp.MustCompile(`^([0-9]+\s*[a-zA-Z]+(?:\s*[a-zA-Z]+)*)`)
)

// knownUnits is the vocabulary used to recognize a unit token sitting
// before the price (e.g. "Eggs pc - 8").
var knownUnits = map[string]bool{
	"pc": true, "1pc": true, "pcs": true, "piece": true, "pieces": true,
	"pack": true, "cup": true, "stick": true, "box": true, "bottle": true,
	"can": true, "kg": true, "g": true, "lb": true, "l": true, "ml": true,
}

const bulletCutset = "-•*"

// structural separators that split a name span from a price span
var separators = []string{"—", "-", ":", ">"}

// firstSeparatorIndex returns the byte index of the earliest structural
// separator at or after offset, or -1. The offset lets callers skip a
// leading bullet so a "- Coke ..." line is not split at position zero.
func firstSeparatorIndex(line string, offset int) int {
	if offset > len(line) {
		return -1
	}
	min := -1
	for _, sep := range separators {
		if i := strings.Index(line[offset:], sep); i >= 0 {
			abs := offset + i
			if min == -1 || abs < min {
				min = abs
			}
		}
	}
	return min
}

// bulletEnd returns the byte index just past a leading bullet and its
// surrounding spaces, or 0 when the line is not bulleted.
func bulletEnd(line string) int {
	t := strings.TrimLeft(line, " \t")
	lead := len(line) - len(t)
	switch {
	case strings.HasPrefix(t, "•"):
		return lead + len("•")
	case t != "" && (t[0] == '-' || t[0] == '*'):
		return lead + 1
	}
	return 0
}

// pricePosition locates the price token the line should be read with. When
// a structural separator exists past any leading bullet, the first numeric
// token after it wins; otherwise the last numeric token on the line wins.
// The asymmetry keeps digits embedded in descriptions (package counts,
// volumes) from being misread as the price. Returns the whole-match byte
// range and the captured numeric text, or ok=false.
func pricePosition(line string) (start, end int, raw string, ok bool) {
	matches := priceToken.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return 0, 0, "", false
	}

	sep := firstSeparatorIndex(line, bulletEnd(line))
	var m []int
	if sep >= 0 {
		for _, cand := range matches {
			if cand[0] > sep {
				m = cand
				break
			}
		}
	} else {
		m = matches[len(matches)-1]
	}
	if m == nil {
		return 0, 0, "", false
	}
	return m[0], m[1], line[m[2]:m[3]], true
}

// parsePrice converts a captured numeric token to a decimal. A comma is
// treated as the fractional separator, matching the price grammar.
func parsePrice(raw string) (decimal.Decimal, bool) {
	normalized := strings.ReplaceAll(raw, ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// extractPrice returns the line's price per pricePosition, or ok=false.
func extractPrice(line string) (decimal.Decimal, bool) {
	_, _, raw, ok := pricePosition(line)
	if !ok {
		return decimal.Decimal{}, false
	}
	return parsePrice(raw)
}

// extractUnitAfterPrice pulls a unit from the text following the price.
// The token after the last pipe wins when present, so exports carrying two
// price columns ("— ₱100.00 | — ₱1.00 | pc") resolve to the real unit.
// Otherwise a leading "number + unit word" pattern is tried, then the first
// alphabetic token.
func extractUnitAfterPrice(line string, priceEnd int) string {
	if priceEnd >= len(line) {
		return ""
	}
	after := strings.TrimSpace(line[priceEnd:])
	if after == "" {
		return ""
	}

	if i := strings.LastIndex(after, "|"); i >= 0 {
		return strings.TrimSpace(after[i+1:])
	}

	if m := numberUnit.FindString(after); m != "" {
		return strings.ToLower(strings.TrimSpace(m))
	}

	token := strings.Fields(after)[0]
	if strings.ContainsFunc(token, isLetter) {
		return strings.ToLower(token)
	}
	return ""
}

// splitUnitBeforePrice recognizes a trailing known-unit token in the name
// span ("Eggs pc - 8") and returns it together with the remaining name text.
func splitUnitBeforePrice(nameSpan string) (unit, remainder string) {
	fields := strings.Fields(nameSpan)
	if len(fields) == 0 {
		return "", nameSpan
	}
	candidate := strings.ToLower(fields[len(fields)-1])
	if knownUnits[candidate] {
		return candidate, strings.Join(fields[:len(fields)-1], " ")
	}
	return "", nameSpan
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// stripLeadingBullet removes a leading bullet plus any further bullet or
// separator characters from a name span.
func stripLeadingBullet(text string) string {
	t := strings.TrimSpace(text)
	t = strings.TrimLeft(t, bulletCutset)
	t = strings.TrimLeft(strings.TrimSpace(t), "-•*:—")
	return strings.TrimSpace(t)
}

// stripTrailingSeparators removes dangling separator characters left over
// once the price span is cut off.
func stripTrailingSeparators(text string) string {
	t := strings.TrimSpace(text)
	t = strings.TrimRight(t, "—-=>:")
	return strings.TrimSpace(t)
}

// extractName returns the name span with any parenthesized groups removed.
func extractName(nameSpan string) string {
	return strings.TrimSpace(parenGroup.ReplaceAllString(nameSpan, ""))
}

// extractDescription returns the first parenthesized group in the name
// span, or "".
func extractDescription(nameSpan string) string {
	m := parenGroup.FindStringSubmatch(nameSpan)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
