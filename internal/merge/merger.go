package merge

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

// PlaceholderImage is the sentinel image path used when a product ends up
// with no real image from either source. The storefront owns the asset.
const PlaceholderImage = "/images/placeholder.png"

const (
	defaultCategoryName = "Miscellaneous"
	defaultCategorySlug = "uncategorized"

	// A row description shorter than this, or one carrying export
	// boilerplate, loses to the matched record's description. Policy values;
	// do not tune without a product requirement.
	shortDescriptionLen = 100

	maxThumbnails = 4
)

// boilerplateMarkers flag inventory descriptions that are just re-exported
// field dumps rather than prose.
var boilerplateMarkers = []string{"Category:", "Condition:"}

// Merger resolves field-by-field precedence between an inventory row and its
// optional matched source record, producing the canonical product. It holds
// the per-run slug set, so one Merger serves exactly one run.
type Merger struct {
	slugs  *SlugSet
	logger *slog.Logger
}

func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{
		slugs:  NewSlugSet(),
		logger: logger,
	}
}

// Merge synthesizes the canonical product for one inventory row. The caller
// is responsible for skipping rows without a title; match may be nil.
//
// Precedence: pricing is always authoritative from the inventory row; richer
// descriptive and media fields come from the matched record when present.
func (m *Merger) Merge(row entity.InventoryRow, match *entity.MatchResult) *entity.Product {
	title := strings.TrimSpace(row.Title)

	p := &entity.Product{
		Title:        title,
		Slug:         m.assignSlug(row, title),
		CategoryName: categoryName(row.Category),
		CategorySlug: categorySlug(row.Category),
	}

	p.Price, p.DiscountedPrice = resolvePrices(row)
	p.Thumbnails, p.Previews = resolveImages(row, match)
	p.Reviews = resolveReviews(row, match)
	p.Description = resolveDescription(row, match)

	if match != nil {
		rec := match.Record.Product
		p.Rating = parseRating(rec.Rating)
		if len(rec.Features) > 0 {
			p.Features = append([]string(nil), rec.Features...)
		}
		if match.Record.ASIN != "" {
			asin := match.Record.ASIN
			p.ASIN = &asin
		}
		p.MatchScore = match.Score
		p.MatchTier = match.Tier
	}
	p.Brand = resolveBrand(row, match)

	return p
}

func (m *Merger) assignSlug(row entity.InventoryRow, title string) string {
	source := strings.TrimSpace(row.SKU)
	if source == "" {
		source = fmt.Sprintf("%s %d", title, row.Index)
	}
	base := Slugify(source)
	if base == "" {
		base = fmt.Sprintf("product-%d", row.Index)
	}
	return m.slugs.Claim(base)
}

func categoryName(label string) string {
	if strings.TrimSpace(label) == "" {
		return defaultCategoryName
	}
	return strings.TrimSpace(label)
}

func categorySlug(label string) string {
	if s := Slugify(label); s != "" {
		return s
	}
	return defaultCategorySlug
}

// resolvePrices applies the parse-precedence chains: list price from
// msrp -> price, display price from price -> cost -> discount percent. When
// nothing resolves the price is 0.00; a missing display price follows list.
func resolvePrices(row entity.InventoryRow) (price, discounted decimal.Decimal) {
	price, ok := ParsePrice(row.MSRP, row.Price)
	if !ok {
		price = decimal.Zero.Round(2)
	}
	discounted, ok = ParsePrice(row.Price, row.Cost, row.DiscountPercent)
	if !ok {
		discounted = price
	}
	return price, discounted
}

// resolveImages combines record images (first, they are higher quality) with
// the row's own references, deduplicates, and splits into thumbnails and
// previews. The placeholder survives only when no real image exists.
func resolveImages(row entity.InventoryRow, match *entity.MatchResult) (thumbnails, previews []string) {
	var combined []string
	if match != nil {
		combined = append(combined, match.Record.Product.Images...)
	}
	if row.ImageURL != "" {
		combined = append(combined, row.ImageURL)
	}
	combined = append(combined, row.ExtraImages...)

	seen := make(map[string]bool)
	var deduped []string
	hasReal := false
	for _, img := range combined {
		img = strings.TrimSpace(img)
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		deduped = append(deduped, img)
		if img != PlaceholderImage {
			hasReal = true
		}
	}

	if hasReal {
		filtered := deduped[:0]
		for _, img := range deduped {
			if img != PlaceholderImage {
				filtered = append(filtered, img)
			}
		}
		deduped = filtered
	}

	if len(deduped) == 0 {
		deduped = []string{PlaceholderImage}
	}

	n := len(deduped)
	if n > maxThumbnails {
		n = maxThumbnails
	}
	return deduped[:n], deduped
}

func resolveReviews(row entity.InventoryRow, match *entity.MatchResult) int {
	if match != nil {
		raw := strings.ReplaceAll(strings.TrimSpace(match.Record.Product.ReviewsCount), ",", "")
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}

	qty := 1.0
	if raw := strings.TrimSpace(row.Quantity); raw != "" {
		if q, err := strconv.ParseFloat(raw, 64); err == nil && q > 0 {
			qty = q
		}
	}
	n := int(math.Round(qty * 2))
	if n < 1 {
		n = 1
	}
	return n
}

// parseRating accepts only a parseable in-range rating. The scraper writes
// "0" when it found none, so non-positive values count as absent.
func parseRating(raw string) *float64 {
	r, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || r <= 0 || r > 5 {
		return nil
	}
	return &r
}

func resolveBrand(row entity.InventoryRow, match *entity.MatchResult) *string {
	if match != nil {
		// "Unknown" is the scraper's own missing-value sentinel.
		if b := strings.TrimSpace(match.Record.Product.Brand); b != "" && b != "Unknown" {
			return &b
		}
	}
	if b := strings.TrimSpace(row.Brand); b != "" {
		return &b
	}
	return nil
}

// resolveDescription prefers the matched record's description when the row's
// own description is short or boilerplate-flagged; otherwise it assembles a
// description from the row fields.
func resolveDescription(row entity.InventoryRow, match *entity.MatchResult) string {
	rowDesc := strings.TrimSpace(row.Description)

	if match != nil {
		recDesc := strings.TrimSpace(match.Record.Product.Description)
		if recDesc != "" && (len(rowDesc) < shortDescriptionLen || hasBoilerplate(rowDesc)) {
			return recDesc
		}
	}
	return buildRowDescription(row, rowDesc)
}

func hasBoilerplate(desc string) bool {
	for _, marker := range boilerplateMarkers {
		if strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}

func buildRowDescription(row entity.InventoryRow, rowDesc string) string {
	var lines []string
	if rowDesc != "" {
		lines = append(lines, rowDesc)
	}
	if b := strings.TrimSpace(row.Brand); b != "" {
		lines = append(lines, "Brand: "+b)
	}
	if c := strings.TrimSpace(row.Condition); c != "" {
		lines = append(lines, "Condition: "+c)
	}
	if t := strings.TrimSpace(row.Tags); t != "" {
		lines = append(lines, "Tags: "+t)
	}
	if len(row.InventoryIDs) > 0 {
		lines = append(lines, "Inventory IDs: "+strings.Join(row.InventoryIDs, ", "))
	}
	return strings.Join(lines, "\n")
}
