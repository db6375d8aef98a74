package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Samsung TV", "samsung tv"},
		{"collapses punctuation runs", "Echo Dot (3rd Gen) - Charcoal", "echo dot 3rd gen charcoal"},
		{"trims edges", "  !!Lamp!!  ", "lamp"},
		{"empty input", "", ""},
		{"only punctuation", "***", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Samsung 55in 4K TV!!",
		"  Mixed-CASE  String ",
		"",
		"already normalized key",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize(normalize(%q))", in)
	}
}

func TestTokenize(t *testing.T) {
	t.Run("drops short tokens and stop words", func(t *testing.T) {
		tokens := Tokenize("New Open Box: The Sony WH-1000XM4 of 2021")
		assert.Equal(t, []string{"sony", "1000xm4", "2021"}, tokens)
	})

	t.Run("empty input gives no tokens", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("a of in"))
	})
}
