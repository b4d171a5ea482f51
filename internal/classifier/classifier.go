// Package classifier assigns each tokenized item its batch status. It runs
// with no knowledge of the remote catalog beyond an externally supplied set
// of existing product names, so it stays pure, in-memory and deterministic.
package classifier

import (
	"presyohan/pricelist/internal/models"
)

// ExistingNames is the set of normalized product names already present in
// the remote catalog, as supplied by the caller before classification.
type ExistingNames map[string]bool

// NewExistingNames normalizes a list of raw product names into a lookup set.
func NewExistingNames(names []string) ExistingNames {
	set := make(ExistingNames, len(names))
	for _, n := range names {
		set[models.NormalizeName(n)] = true
	}
	return set
}

// Classify walks every item in batch order and assigns exactly one status.
// Precedence, evaluated once per item:
//
//  1. tokenizer-assigned parse error (kept as-is)
//  2. absent price            -> ERROR_NO_PRICE
//  3. name already seen       -> DUPLICATE
//  4. name exists in catalog  -> UPDATE
//  5. no active category      -> ERROR_NO_CATEGORY
//  6. otherwise               -> NEW
//
// Every item's normalized name joins the seen set regardless of outcome, so
// a later duplicate of an error row is still flagged DUPLICATE. The input
// slice is mutated in place and returned for convenience.
func Classify(categories []models.ParsedCategory, existing ExistingNames) []models.ParsedCategory {
	seen := make(map[string]bool)

	for ci := range categories {
		cat := &categories[ci]
		// The synthetic no-category bucket is flagged, never matched by
		// name: a pasted "[INVALID ITEMS]" header is a regular category.
		noCategory := cat.Synthetic
		for ii := range cat.Items {
			item := &cat.Items[ii]
			if item.Status == "" {
				item.Status = statusFor(item, seen, existing, noCategory)
			}
			seen[models.NormalizeName(item.Name)] = true
		}
	}
	return categories
}

func statusFor(item *models.ParsedItem, seen map[string]bool, existing ExistingNames, noCategory bool) models.ItemStatus {
	normalized := models.NormalizeName(item.Name)
	switch {
	case item.Price == nil:
		return models.StatusNoPrice
	case seen[normalized]:
		return models.StatusDuplicate
	case existing[normalized]:
		return models.StatusUpdate
	case noCategory:
		return models.StatusNoCategory
	default:
		return models.StatusNew
	}
}
