package models

import "github.com/shopspring/decimal"

// CreatePreview is a read-only projection of a parsed item that has no
// matching catalog row and would be created on apply.
type CreatePreview struct {
	Name        string          `json:"name" csv:"name"`
	Category    string          `json:"category" csv:"category"`
	Unit        string          `json:"unit" csv:"unit"`
	Price       decimal.Decimal `json:"price" csv:"price"`
	Description string          `json:"description,omitempty" csv:"description"`
}

// UpdatePreview is a read-only projection of a parsed item that matched an
// existing catalog row with at least one differing field. Previous values
// are carried for display.
type UpdatePreview struct {
	ProductID       string          `json:"product_id" csv:"product_id"`
	Name            string          `json:"name" csv:"name"`
	PrevCategory    string          `json:"prev_category,omitempty" csv:"prev_category"`
	PrevUnit        string          `json:"prev_unit,omitempty" csv:"prev_unit"`
	PrevPrice       decimal.Decimal `json:"prev_price" csv:"prev_price"`
	PrevDescription string          `json:"prev_description,omitempty" csv:"prev_description"`
	NextCategory    string          `json:"next_category,omitempty" csv:"next_category"`
	NextUnit        string          `json:"next_unit,omitempty" csv:"next_unit"`
	NextPrice       decimal.Decimal `json:"next_price" csv:"next_price"`
	NextDescription string          `json:"next_description,omitempty" csv:"next_description"`
}

// ImportFailure pairs a parsed item with the reason its write failed.
type ImportFailure struct {
	Item   ParsedItem `json:"item"`
	Reason string     `json:"reason"`
}

// ImportResult summarizes one executor run. It is session-scoped and never
// persisted.
type ImportResult struct {
	SavedCount     int             `json:"saved_count"`
	AttemptedCount int             `json:"attempted_count"`
	CategoryCount  int             `json:"category_count"`
	Failures       []ImportFailure `json:"failures,omitempty"`
}
