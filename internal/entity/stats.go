package entity

import (
	"time"

	"github.com/google/uuid"
)

// RunStats accumulates counters for one pipeline run.
type RunStats struct {
	RunID uuid.UUID

	RowsSeen    int
	RowsSkipped int
	Matched     int
	Unmatched   int

	RecordsScanned int
	RecordsIndexed int
	RecordsSkipped int

	HighConfidence   int
	MediumConfidence int
	LowConfidence    int

	ProductsLoaded    int
	CategoriesCreated int

	// UnmatchedTitles holds a preview of titles that found no source record,
	// capped by the driver.
	UnmatchedTitles []string

	StartedAt time.Time
	Duration  time.Duration
}
