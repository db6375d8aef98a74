package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bidfinds/catalog-importer/internal/entity"
	"github.com/bidfinds/catalog-importer/internal/match"
	"github.com/bidfinds/catalog-importer/internal/merge"
	"github.com/bidfinds/catalog-importer/internal/repository"
	"github.com/bidfinds/catalog-importer/internal/source"
)

// DefaultUnmatchedPreview caps the unmatched-title sample in the summary.
const DefaultUnmatchedPreview = 10

// Pipeline orchestrates one full catalog rebuild: read both sources, match
// each inventory row against the record index, merge, and bulk-load the
// result. Sequential and single-writer; concurrent runs must be serialized
// externally.
type Pipeline struct {
	repo    repository.CatalogRepository
	reader  *source.RecordReader
	matcher *match.Matcher
	logger  *slog.Logger

	unmatchedPreview int
}

type Option func(*Pipeline)

// WithUnmatchedPreview overrides the unmatched-title preview cap.
func WithUnmatchedPreview(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.unmatchedPreview = n
		}
	}
}

func New(repo repository.CatalogRepository, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	reader, err := source.NewRecordReader(logger)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:             repo,
		reader:           reader,
		matcher:          match.NewMatcher(logger),
		logger:           logger,
		unmatchedPreview: DefaultUnmatchedPreview,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes the full rebuild and returns the produced products alongside
// run statistics. Row-level defects are recovered locally; a store failure
// aborts the run with the error.
func (p *Pipeline) Run(ctx context.Context, inventoryPath, recordsDir string) ([]*entity.Product, *entity.RunStats, error) {
	stats := &entity.RunStats{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
	}
	p.logger.Info("starting catalog import", "run_id", stats.RunID,
		"inventory", inventoryPath, "records", recordsDir)

	rows, err := source.ReadInventory(inventoryPath, p.logger)
	if err != nil {
		return nil, stats, err
	}

	records, recStats, err := p.reader.LoadDirectory(recordsDir)
	if err != nil {
		return nil, stats, err
	}
	stats.RecordsScanned = recStats.Scanned
	stats.RecordsIndexed = recStats.Indexed
	stats.RecordsSkipped = recStats.Skipped

	index := match.NewIndex()
	for _, rec := range records {
		index.Add(rec)
	}

	merger := merge.NewMerger(p.logger)
	products := make([]*entity.Product, 0, len(rows))

	for _, row := range rows {
		stats.RowsSeen++
		if !row.HasTitle() {
			stats.RowsSkipped++
			continue
		}

		result := p.matcher.FindBestMatch(row.Title, index)
		if result != nil {
			stats.Matched++
			switch result.Tier {
			case entity.ConfidenceHigh:
				stats.HighConfidence++
			case entity.ConfidenceMedium:
				stats.MediumConfidence++
			case entity.ConfidenceLow:
				stats.LowConfidence++
			}
		} else {
			stats.Unmatched++
			if len(stats.UnmatchedTitles) < p.unmatchedPreview {
				stats.UnmatchedTitles = append(stats.UnmatchedTitles, row.Title)
			}
		}

		products = append(products, merger.Merge(row, result))
	}

	loadResult, err := p.repo.ReplaceCatalog(ctx, products)
	if err != nil {
		p.logger.Error("catalog load failed", "run_id", stats.RunID, "error", err)
		return nil, stats, err
	}
	stats.ProductsLoaded = loadResult.ProductsCreated
	stats.CategoriesCreated = loadResult.CategoriesCreated
	stats.Duration = time.Since(stats.StartedAt)

	p.logger.Info("catalog import complete",
		"run_id", stats.RunID,
		"rows_seen", stats.RowsSeen,
		"rows_skipped", stats.RowsSkipped,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
		"products", stats.ProductsLoaded,
		"categories", stats.CategoriesCreated,
		"duration", stats.Duration)
	return products, stats, nil
}
