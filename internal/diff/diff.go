// Package diff computes the create/update preview for a classified parse
// batch against a catalog snapshot. The computation is pure and
// side-effect-free so a dry run can be repeated any number of times with
// identical results.
package diff

import (
	"presyohan/pricelist/internal/models"
)

// Result holds the two disjoint preview lists computed from one batch.
type Result struct {
	Creates []models.CreatePreview `json:"creates"`
	Updates []models.UpdatePreview `json:"updates"`
}

// Compute indexes the snapshot by signature (first-seen wins on collision)
// and walks the eligible items in batch order. An item with no signature
// match becomes a CreatePreview carrying its parsed fields verbatim. A
// matched item becomes an UpdatePreview only when category, unit, price or
// description differ from the existing row; identical rows are no-ops.
// Prices compare by exact decimal equality, never approximately.
func Compute(categories []models.ParsedCategory, snapshot []models.CatalogProduct) Result {
	bySignature := make(map[models.Signature]models.CatalogProduct, len(snapshot))
	for _, p := range snapshot {
		sig := p.Signature()
		if _, ok := bySignature[sig]; !ok {
			bySignature[sig] = p
		}
	}

	var res Result
	for _, cat := range categories {
		for _, item := range cat.Items {
			if !item.Status.IsEligible() {
				continue
			}
			match, ok := bySignature[item.Signature()]
			if !ok {
				res.Creates = append(res.Creates, models.CreatePreview{
					Name:        item.Name,
					Category:    cat.Name,
					Unit:        item.Unit,
					Price:       *item.Price,
					Description: item.Description,
				})
				continue
			}
			if changed(cat.Name, item, match) {
				res.Updates = append(res.Updates, models.UpdatePreview{
					ProductID:       match.ID,
					Name:            item.Name,
					PrevCategory:    match.Category,
					PrevUnit:        match.Unit,
					PrevPrice:       match.Price,
					PrevDescription: match.Description,
					NextCategory:    cat.Name,
					NextUnit:        item.Unit,
					NextPrice:       *item.Price,
					NextDescription: item.Description,
				})
			}
		}
	}
	return res
}

func changed(category string, item models.ParsedItem, match models.CatalogProduct) bool {
	return match.Category != category ||
		match.Unit != item.Unit ||
		!match.Price.Equal(*item.Price) ||
		match.Description != item.Description
}
