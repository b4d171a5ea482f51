// Package models defines the core data structures shared by the pricelist
// import pipeline: parsed items and categories, catalog rows, diff previews
// and the final import result.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ItemStatus is the closed set of classifications a parsed item can carry.
// NEW and UPDATE are the only statuses eligible for the diff/apply stages;
// every other value is informational for the preview and excluded from writes.
type ItemStatus string

const (
	StatusNew           ItemStatus = "NEW"
	StatusUpdate        ItemStatus = "UPDATE"
	StatusDuplicate     ItemStatus = "DUPLICATE"
	StatusNoPrice       ItemStatus = "ERROR_NO_PRICE"
	StatusInvalidFormat ItemStatus = "ERROR_INVALID_FORMAT"
	StatusNoCategory    ItemStatus = "ERROR_NO_CATEGORY"
)

// IsError reports whether the status is one of the ERROR_* variants.
// Error statuses are parse-time classifications, not faults; they exist so
// the operator can fix the source text and re-paste.
func (s ItemStatus) IsError() bool {
	return strings.HasPrefix(string(s), "ERROR_")
}

// IsEligible reports whether an item with this status participates in the
// diff and apply stages.
func (s ItemStatus) IsEligible() bool {
	return s == StatusNew || s == StatusUpdate
}

// DefaultUnit is the sentinel unit assigned when none can be extracted.
const DefaultUnit = "1pc"

// InvalidItemsCategory names the synthetic bucket that collects items
// parsed before any category header has been seen.
const InvalidItemsCategory = "INVALID ITEMS"

// ParsedItem is one product row recognized in the pasted text. Price is nil
// only for error rows. Status is set once by the classifier and must not be
// mutated afterward.
type ParsedItem struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Unit        string           `json:"unit"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Status      ItemStatus       `json:"status"`
}

// ParsedCategory groups the items parsed under one category header, in the
// order they appeared. Each header line starts a fresh bucket, so duplicate
// header names yield multiple buckets; this matches the append-only shape of
// the exported lists being pasted.
type ParsedCategory struct {
	Name  string       `json:"name"`
	Items []ParsedItem `json:"items"`

	// Synthetic marks the no-category bucket the tokenizer creates for
	// items seen before any header. A pasted header that happens to spell
	// the same display name is a regular category and leaves this false.
	Synthetic bool `json:"synthetic,omitempty"`
}

// EligibleItems returns the items in this category with status NEW or UPDATE.
func (c *ParsedCategory) EligibleItems() []ParsedItem {
	var out []ParsedItem
	for _, it := range c.Items {
		if it.Status.IsEligible() {
			out = append(out, it)
		}
	}
	return out
}

// EligibleCategoryCount returns how many categories hold at least one
// eligible item. This is the category figure an import result reports,
// independent of whether the diff later finds anything to write.
func EligibleCategoryCount(categories []ParsedCategory) int {
	n := 0
	for i := range categories {
		if len(categories[i].EligibleItems()) > 0 {
			n++
		}
	}
	return n
}

// CatalogProduct is one existing product row from the remote catalog
// snapshot.
type CatalogProduct struct {
	ID          string          `json:"id" yaml:"id" csv:"id"`
	Name        string          `json:"name" yaml:"name" csv:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty" csv:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price" csv:"price"`
	Unit        string          `json:"unit" yaml:"unit" csv:"unit"`
	Category    string          `json:"category,omitempty" yaml:"category,omitempty" csv:"category"`
}

// Category is one existing category row from the remote catalog.
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
