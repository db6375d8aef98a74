package merge

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var nonPriceRegex = regexp.MustCompile(`[^0-9.]`)

// ParsePrice walks the candidates in order and returns the first that parses
// to a finite non-negative number after stripping everything that is not a
// digit or decimal point. Reports false when no candidate resolves.
func ParsePrice(candidates ...string) (decimal.Decimal, bool) {
	for _, raw := range candidates {
		cleaned := nonPriceRegex.ReplaceAllString(raw, "")
		if cleaned == "" || cleaned == "." {
			continue
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			continue
		}
		if d.IsNegative() {
			continue
		}
		return d.Round(2), true
	}
	return decimal.Zero, false
}
