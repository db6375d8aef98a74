package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

func record(name string) *entity.SourceRecord {
	return &entity.SourceRecord{Product: entity.RecordProduct{Name: name}}
}

func indexOf(names ...string) *Index {
	idx := NewIndex()
	for _, n := range names {
		idx.Add(record(n))
	}
	return idx
}

func TestSimilarity(t *testing.T) {
	t.Run("identical strings score 1", func(t *testing.T) {
		assert.Equal(t, 1.0, Similarity("echo dot", "echo dot"))
	})

	t.Run("disjoint strings score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("abcd", "wxyz"))
	})

	t.Run("symmetric", func(t *testing.T) {
		a, b := "samsung 4k tv", "samsung tv 4k"
		assert.Equal(t, Similarity(a, b), Similarity(b, a))
	})

	t.Run("partial overlap", func(t *testing.T) {
		// bigrams ab,bc,cd vs ab,bc,ce share 2 of 3+3
		assert.InDelta(t, 2.0/3.0, Similarity("abcd", "abce"), 1e-9)
	})

	t.Run("empty inputs score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Similarity("", ""))
		assert.Equal(t, 0.0, Similarity("a", "b"))
	})
}

func TestFindBestMatchThreshold(t *testing.T) {
	m := NewMatcher(nil)

	t.Run("accepts at exactly the floor", func(t *testing.T) {
		// 21-char strings share exactly 13 of 20+20 bigrams: 26/40 = 0.65.
		title := "abcdefghijklmnopqrstu"
		idx := indexOf("abcdefghijklmnvwxyz12")
		got := m.FindBestMatch(title, idx)
		require.NotNil(t, got)
		assert.InDelta(t, 0.65, got.Score, 1e-9)
		assert.Equal(t, entity.ConfidenceLow, got.Tier)
	})

	t.Run("rejects just below the floor", func(t *testing.T) {
		// bigram overlap 3 of 5+5: score 0.60, no token overlap to boost
		got := m.FindBestMatch("abcdef", indexOf("abcdxy"))
		assert.Nil(t, got)
	})

	t.Run("zero similarity without boost is never accepted", func(t *testing.T) {
		got := m.FindBestMatch("galaxy buds", indexOf("bose quietcomfort"))
		assert.Nil(t, got)
	})
}

func TestFindBestMatchKeywordBoost(t *testing.T) {
	m := NewMatcher(nil)

	t.Run("reordered abbreviated title recovers via overlap", func(t *testing.T) {
		got := m.FindBestMatch("echo dot gen 3", indexOf("Amazon Echo Dot (3rd Gen)"))
		require.NotNil(t, got)
		// all three title tokens overlap, so the boosted score is 1.0 * 0.85
		assert.InDelta(t, 0.85, got.Score, 1e-9)
		assert.Equal(t, entity.ConfidenceHigh, got.Tier)
	})

	t.Run("weak overlap does not clear the gate", func(t *testing.T) {
		// one of three tokens overlaps: ratio 1/3 is under 0.5, no boost
		got := m.FindBestMatch("sony headphones wireless", indexOf("sony refrigerator stainless"))
		assert.Nil(t, got)
	})
}

func TestFindBestMatchPicksGlobalBest(t *testing.T) {
	m := NewMatcher(nil)

	idx := indexOf(
		"Samsung 50in 4K Smart TV",
		"Samsung 55in 4K TV",
		"LG 55in OLED TV",
	)
	got := m.FindBestMatch("Samsung 55in 4K TV", idx)
	require.NotNil(t, got)
	assert.Equal(t, "Samsung 55in 4K TV", got.Record.Product.Name)
	assert.Equal(t, 1.0, got.Score)
	assert.Equal(t, entity.ConfidenceHigh, got.Tier)
}

func TestFindBestMatchTieKeepsFirstSeen(t *testing.T) {
	m := NewMatcher(nil)

	first := record("Echo Dot 3rd Gen")
	second := record("Echo Dot 3rd Gen")
	idx := NewIndex()
	idx.Add(first)
	idx.Add(second)

	got := m.FindBestMatch("Echo Dot 3rd Gen", idx)
	require.NotNil(t, got)
	assert.Same(t, first, got.Record)
}

func TestFindBestMatchEmptyInputs(t *testing.T) {
	m := NewMatcher(nil)

	assert.Nil(t, m.FindBestMatch("", indexOf("anything")))
	assert.Nil(t, m.FindBestMatch("   ", indexOf("anything")))
	assert.Nil(t, m.FindBestMatch("lamp", NewIndex()))
}

func TestIndexSkipsNamelessRecords(t *testing.T) {
	idx := NewIndex()
	idx.Add(record(""))
	idx.Add(record("!!!"))
	idx.Add(record("Desk Lamp"))
	assert.Equal(t, 1, idx.Len())
}
