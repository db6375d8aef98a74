package entity

// ConfidenceTier buckets an accepted match score.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// MatchResult pairs an inventory row with its best source record. A record
// may be matched by multiple rows; a row gets at most one result.
type MatchResult struct {
	Record *SourceRecord
	Score  float64
	Tier   ConfidenceTier
}
