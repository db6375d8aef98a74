package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a catalog category row. Created lazily during a load and cached
// by slug, so repeated labels reuse one row.
type Category struct {
	ID   int64
	Name string
	Slug string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is the canonical catalog entity produced by the merge step and
// persisted by the loader.
//
// Invariants: Slug is unique within a run; Price and DiscountedPrice are
// always set with two-decimal precision; Thumbnails and Previews are never
// empty and Previews is a superset of Thumbnails.
type Product struct {
	ID int64

	Title       string
	Slug        string
	Description string

	Reviews  int
	Rating   *float64
	Brand    *string
	ASIN     *string
	Features []string

	Price           decimal.Decimal
	DiscountedPrice decimal.Decimal

	Thumbnails []string
	Previews   []string

	// CategoryName/CategorySlug are resolved to CategoryID by the loader.
	CategoryName string
	CategorySlug string
	CategoryID   int64

	// Match provenance, carried for reporting only.
	MatchScore float64
	MatchTier  ConfidenceTier

	CreatedAt time.Time
	UpdatedAt time.Time
}
