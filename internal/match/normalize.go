package match

import (
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var nonAlnumRegex = regexp.MustCompile(`[^a-z0-9]+`)

// stopWords are dropped during tokenization: articles, prepositions,
// conjunctions, plus listing noise terms that say nothing about the product.
var stopWords = map[string]bool{
	// Articles
	"the": true,
	// Prepositions
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "into": true,
	"over": true, "under": true,
	// Conjunctions
	"and": true, "or": true, "but": true, "nor": true,
	// Listing noise
	"new": true, "open": true, "box": true,
}

// Normalize lowercases text, collapses every run of non-alphanumeric
// characters into a single space, and trims. Total over any input and
// idempotent; the empty string maps to the empty key.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokenize normalizes s and splits it into keyword tokens, dropping tokens
// of length <= 2 and stop words.
func Tokenize(s string) []string {
	words := strings.Fields(Normalize(s))

	var tokens []string
	for _, word := range words {
		if len(word) <= 2 {
			continue
		}
		if stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
