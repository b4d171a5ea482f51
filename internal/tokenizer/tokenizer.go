// Package tokenizer turns cleaned price-list lines into structured
// category/item records. It is a line-oriented state machine: every line is
// classified as a category header, a price continuation for a pending
// multi-line item, an inline item, the start of a multi-line item, noise,
// or an unrecognized error row. The tokenizer assigns only parse-time error
// statuses; batch classification (NEW/UPDATE/DUPLICATE) happens in the
// classifier package.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"
	"presyohan/pricelist/internal/normalizer"
)

// state names the three positions the line scanner can be in. Keeping them
// explicit makes the two-line continuation logic auditable on its own.
type state int

const (
	stateNoCategory state = iota
	stateInCategory
	stateAwaitingPrice
)

var bracketHeader = regexp.MustCompile(`^\s*\[\s*(.+?)\s*]\s*$`)

// pendingItem holds the name span parsed from a bulleted line whose price
// is expected on the following line.
type pendingItem struct {
	name        string
	description string
	bucket      *models.ParsedCategory
}

// Tokenizer scans lines into category buckets.
type Tokenizer struct {
	logger logging.Logger
}

// New creates a Tokenizer. A nil logger falls back to the default adapter.
func New(logger logging.Logger) *Tokenizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Tokenizer{logger: logger.WithField("component", "tokenizer")}
}

// Tokenize parses the cleaned lines into ordered category buckets. Items
// that failed to parse carry an ERROR_* status already; well-formed items
// are left unclassified for the classifier. Items seen before any category
// header land in the synthetic INVALID ITEMS bucket, which is appended last
// and only when non-empty.
func (t *Tokenizer) Tokenize(lines []string) []models.ParsedCategory {
	run := &tokenizeRun{
		invalid: &models.ParsedCategory{Name: models.InvalidItemsCategory, Synthetic: true},
	}

	for _, line := range run.cleanup(lines) {
		t.scanLine(run, line)
	}
	// EOF abandons any pending multi-line item.
	t.abandonPending(run)

	var out []models.ParsedCategory
	for _, c := range run.categories {
		if len(c.Items) > 0 {
			out = append(out, *c)
		}
	}
	if len(run.invalid.Items) > 0 {
		out = append(out, *run.invalid)
	}
	t.logger.WithField("categories", len(out)).Debug("Tokenized pasted text")
	return out
}

type tokenizeRun struct {
	state      state
	categories []*models.ParsedCategory
	current    *models.ParsedCategory
	invalid    *models.ParsedCategory
	pending    *pendingItem
}

// cleanup trims and drops blank lines so Tokenize behaves the same whether
// it receives normalizer output or raw splits.
func (r *tokenizeRun) cleanup(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// bucket returns the destination for an item parsed right now.
func (r *tokenizeRun) bucket() *models.ParsedCategory {
	if r.current != nil {
		return r.current
	}
	return r.invalid
}

func (t *Tokenizer) scanLine(run *tokenizeRun, line string) {
	// 1. Store/branch noise. The em-dash form is dropped by the normalizer
	// already; the keyword form ("Aling Nena Store Main Branch") carries no
	// punctuation and is only recognized before the first category header.
	// Both guards must run before header detection or the line would open a
	// bogus category.
	if looksLikeStoreHeader(line) {
		return
	}
	if run.current == nil && looksLikeStoreBanner(line) {
		return
	}

	// 2. Category header.
	if name, ok := headerName(line); ok {
		t.abandonPending(run)
		run.current = &models.ParsedCategory{Name: name}
		run.categories = append(run.categories, run.current)
		run.state = stateInCategory
		return
	}

	// 3. Price continuation for a pending multi-line item. Only a
	// price-only line (no name span of its own) continues the pending item;
	// anything else abandons it and is re-scanned on its own.
	if run.state == stateAwaitingPrice {
		if start, end, raw, ok := pricePosition(line); ok && extractName(stripTrailingSeparators(stripLeadingBullet(line[:start]))) == "" {
			if price, ok := parsePrice(raw); ok {
				unit := extractUnitAfterPrice(line, end)
				if unit == "" {
					unit = models.DefaultUnit
				}
				run.pending.bucket.Items = append(run.pending.bucket.Items, models.ParsedItem{
					Name:        run.pending.name,
					Description: run.pending.description,
					Unit:        unit,
					Price:       &price,
				})
				t.clearPending(run)
				return
			}
		}
		// Not a price line: the pending item is abandoned and the current
		// line is re-examined on its own.
		t.abandonPending(run)
	}

	// 4. Inline single-line item.
	if t.scanInlineItem(run, line) {
		return
	}

	// 5. Bulleted line without a price starts a multi-line item.
	if normalizer.IsBulleted(line) {
		nameSpan := stripTrailingSeparators(stripLeadingBullet(line))
		run.pending = &pendingItem{
			name:        extractName(nameSpan),
			description: extractDescription(nameSpan),
			bucket:      run.bucket(),
		}
		run.state = stateAwaitingPrice
		return
	}

	// 6. Unrecognized line becomes an error row for the preview.
	t.addErrorItem(run, line)
}

// scanInlineItem handles a line carrying both a name span and a price.
// Returns false when the line has no resolvable price or no usable name.
func (t *Tokenizer) scanInlineItem(run *tokenizeRun, line string) bool {
	start, end, raw, ok := pricePosition(line)
	if !ok {
		return false
	}
	price, ok := parsePrice(raw)
	if !ok {
		return false
	}

	nameSpan := stripTrailingSeparators(stripLeadingBullet(line[:start]))
	unit := extractUnitAfterPrice(line, end)
	if unit == "" {
		unit, nameSpan = splitUnitBeforePrice(nameSpan)
	}
	if unit == "" {
		unit = models.DefaultUnit
	}

	name := extractName(nameSpan)
	if name == "" {
		// Orphaned price line ("₱85 | bottle" with nothing pending): there
		// is no name to attach the price to, so surface it as an error row.
		t.addErrorItem(run, line)
		return true
	}

	run.bucket().Items = append(run.bucket().Items, models.ParsedItem{
		Name:        name,
		Description: extractDescription(nameSpan),
		Unit:        unit,
		Price:       &price,
	})
	return true
}

// abandonPending converts a pending multi-line item that never resolved a
// price into an error row instead of dropping it silently, so the operator
// sees it in the preview.
func (t *Tokenizer) abandonPending(run *tokenizeRun) {
	if run.pending == nil {
		return
	}
	t.logger.WithField("item", run.pending.name).Debug("Pending item never resolved a price")
	run.pending.bucket.Items = append(run.pending.bucket.Items, models.ParsedItem{
		Name:        run.pending.name,
		Description: run.pending.description,
		Unit:        models.DefaultUnit,
	})
	t.clearPending(run)
}

func (t *Tokenizer) clearPending(run *tokenizeRun) {
	run.pending = nil
	if run.current != nil {
		run.state = stateInCategory
	} else {
		run.state = stateNoCategory
	}
}

// addErrorItem records an unrecognized line as an item named after the raw
// text. The status depends on whether a category is active yet.
func (t *Tokenizer) addErrorItem(run *tokenizeRun, line string) {
	status := models.StatusInvalidFormat
	if run.current == nil {
		status = models.StatusNoCategory
	}
	run.bucket().Items = append(run.bucket().Items, models.ParsedItem{
		Name:   line,
		Unit:   models.DefaultUnit,
		Status: status,
	})
}

// headerName recognizes a category header line: the bracketed [NAME] form,
// or a bare/dashed line with no leading bullet and no digits. The name is
// trimmed and upper-cased.
func headerName(line string) (string, bool) {
	if m := bracketHeader.FindStringSubmatch(line); m != nil {
		name := strings.ToUpper(strings.TrimSpace(m[1]))
		if name != "" {
			return name, true
		}
		return "", false
	}
	if normalizer.IsBulleted(line) {
		return "", false
	}
	if strings.ContainsFunc(line, unicode.IsDigit) {
		return "", false
	}
	name := strings.ToUpper(stripTrailingSeparators(line))
	if name == "" {
		return "", false
	}
	return name, true
}

// looksLikeStoreHeader matches a "Store — Branch" style line: em-dash, no
// price token, not bulleted, not bracketed. The normalizer drops these
// already; the guard stays for callers feeding raw splits.
func looksLikeStoreHeader(line string) bool {
	return strings.ContainsRune(line, '—') &&
		!normalizer.HasPriceToken(line) &&
		!normalizer.IsBulleted(line) &&
		!normalizer.IsBracketed(line)
}

// looksLikeStoreBanner matches a store title line by keyword: the exported
// lists open with a "<name> Store ... Branch" line even when no em-dash is
// present. Valid only before the first header; past that point the words
// are just item text.
func looksLikeStoreBanner(line string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "STORE") &&
		strings.Contains(upper, "BRANCH") &&
		!normalizer.IsBulleted(line) &&
		!normalizer.IsBracketed(line)
}
