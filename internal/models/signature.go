package models

import "strings"

// Signature is the normalized NAME::DESCRIPTION::UNIT key that identifies
// "the same product" both within one parse batch and against the remote
// catalog. Two records with the same signature are the same product
// regardless of price.
type Signature string

// MakeSignature builds a signature from raw field values. Fields are
// trimmed and upper-cased so the match is case- and whitespace-insensitive.
func MakeSignature(name, description, unit string) Signature {
	parts := []string{
		strings.ToUpper(strings.TrimSpace(name)),
		strings.ToUpper(strings.TrimSpace(description)),
		strings.ToUpper(strings.TrimSpace(unit)),
	}
	return Signature(strings.Join(parts, "::"))
}

// Signature returns the item's catalog-matching key.
func (i *ParsedItem) Signature() Signature {
	return MakeSignature(i.Name, i.Description, i.Unit)
}

// Signature returns the product's catalog-matching key.
func (p *CatalogProduct) Signature() Signature {
	return MakeSignature(p.Name, p.Description, p.Unit)
}

// NormalizeName is the batch-scoped duplicate-detection key for an item
// name. It is deliberately looser than Signature: the source lists repeat
// plain names, not full name/description/unit triples.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
