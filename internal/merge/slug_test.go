package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Samsung 55in 4K TV", "samsung-55in-4k-tv"},
		{"Home & Garden", "home-garden"},
		{"  spaced  out  ", "spaced-out"},
		{"%%%", ""},
		{"", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "Slugify(%q)", tt.input)
	}
}

func TestSlugSetClaim(t *testing.T) {
	t.Run("first claim keeps the base", func(t *testing.T) {
		s := NewSlugSet()
		assert.Equal(t, "lamp", s.Claim("lamp"))
	})

	t.Run("collisions get incrementing suffixes", func(t *testing.T) {
		s := NewSlugSet()
		assert.Equal(t, "x1", s.Claim("x1"))
		assert.Equal(t, "x1-1", s.Claim("x1"))
		assert.Equal(t, "x1-2", s.Claim("x1"))
	})

	t.Run("suffixed claim does not shadow later bases", func(t *testing.T) {
		s := NewSlugSet()
		assert.Equal(t, "x1-1", s.Claim("x1-1"))
		assert.Equal(t, "x1", s.Claim("x1"))
		assert.Equal(t, "x1-2", s.Claim("x1"))
	})
}
