package merge

import (
	"fmt"
	"regexp"
	"strings"
)

var slugStripRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns free text into a URL-safe slug: lowercase, runs of
// non-alphanumerics become single hyphens, leading/trailing hyphens trimmed.
// May return the empty string for inputs with no alphanumerics.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugStripRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugSet tracks the slugs assigned during one run and resolves collisions
// with incrementing numeric suffixes.
type SlugSet struct {
	taken map[string]bool
}

func NewSlugSet() *SlugSet {
	return &SlugSet{taken: make(map[string]bool)}
}

// Claim reserves base if it is still free; otherwise it reserves and returns
// base-1, base-2, ... — the first suffixed variant not yet assigned.
func (s *SlugSet) Claim(base string) string {
	if !s.taken[base] {
		s.taken[base] = true
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !s.taken[candidate] {
			s.taken[candidate] = true
			return candidate
		}
	}
}
