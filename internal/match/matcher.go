package match

import (
	"log/slog"
	"strings"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

// Matching policy. The floor bounds false-positive merges; the overlap boost
// recovers reordered/abbreviated titles that whole-string similarity misses.
const (
	acceptThreshold = 0.65
	boostBelow      = 0.70
	overlapGate     = 0.50
	overlapDamping  = 0.85

	tierHigh   = 0.85
	tierMedium = 0.75
)

type indexEntry struct {
	key    string
	tokens []string
	record *entity.SourceRecord
}

// Index holds all source records keyed by normalized product name. Built once
// per run before matching begins and never mutated afterwards.
type Index struct {
	entries []indexEntry
}

func NewIndex() *Index {
	return &Index{}
}

// Add indexes one record. Records without a usable name are ignored.
func (x *Index) Add(rec *entity.SourceRecord) {
	key := Normalize(rec.Product.Name)
	if key == "" {
		return
	}
	x.entries = append(x.entries, indexEntry{
		key:    key,
		tokens: Tokenize(rec.Product.Name),
		record: rec,
	})
}

func (x *Index) Len() int {
	return len(x.entries)
}

// Matcher finds the best source record for an inventory title.
type Matcher struct {
	logger *slog.Logger
}

func NewMatcher(logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{logger: logger}
}

// FindBestMatch scans the whole index for the record closest to title and
// returns it when the score clears the acceptance floor, or nil otherwise.
//
// Per candidate the score is the bigram similarity of the normalized strings;
// when that falls below 0.70 and the title has surviving keyword tokens, a
// word-overlap ratio above 0.50 raises the score to max(score, ratio*0.85).
// The scan is a deliberate O(records) pass with no early exit — ties keep the
// first-seen maximum, and the global best matters more than throughput at
// catalog scale.
func (m *Matcher) FindBestMatch(title string, idx *Index) *entity.MatchResult {
	key := Normalize(title)
	if key == "" || idx == nil || len(idx.entries) == 0 {
		return nil
	}
	tokens := Tokenize(title)

	bestScore := -1.0
	var best *indexEntry

	for i := range idx.entries {
		e := &idx.entries[i]

		score := Similarity(key, e.key)
		if score < boostBelow && len(tokens) > 0 {
			if ratio := overlapRatio(tokens, e.tokens); ratio > overlapGate {
				if boosted := ratio * overlapDamping; boosted > score {
					score = boosted
				}
			}
		}

		if score > bestScore {
			bestScore = score
			best = e
		}
	}

	if best == nil || bestScore < acceptThreshold {
		return nil
	}

	m.logger.Debug("matched title to source record",
		"title", title,
		"record", best.record.Product.Name,
		"score", bestScore)

	return &entity.MatchResult{
		Record: best.record,
		Score:  bestScore,
		Tier:   tierFor(bestScore),
	}
}

func tierFor(score float64) entity.ConfidenceTier {
	switch {
	case score >= tierHigh:
		return entity.ConfidenceHigh
	case score >= tierMedium:
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceLow
	}
}

// overlapRatio is the fraction of title tokens that appear as a substring of,
// or contain, some token of the record name.
func overlapRatio(titleTokens, nameTokens []string) float64 {
	if len(titleTokens) == 0 || len(nameTokens) == 0 {
		return 0
	}
	hits := 0
	for _, t := range titleTokens {
		for _, n := range nameTokens {
			if strings.Contains(n, t) || strings.Contains(t, n) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(titleTokens))
}

// Similarity is the Sorensen-Dice coefficient over character bigrams of the
// two strings, spaces excluded. Symmetric, in [0,1], 1.0 for identical
// inputs. Inputs are expected to be normalized already.
func Similarity(a, b string) float64 {
	a = strings.ReplaceAll(a, " ", "")
	b = strings.ReplaceAll(b, " ", "")

	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if len(a) < 2 || len(b) < 2 {
		return 0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(a)-1; i++ {
		bigrams[a[i:i+2]]++
	}

	intersection := 0
	for i := 0; i < len(b)-1; i++ {
		bg := b[i : i+2]
		if bigrams[bg] > 0 {
			bigrams[bg]--
			intersection++
		}
	}

	return 2.0 * float64(intersection) / float64(len(a)+len(b)-2)
}
