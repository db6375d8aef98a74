package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bidfinds/catalog-importer/internal/common"
	"github.com/bidfinds/catalog-importer/internal/export"
	"github.com/bidfinds/catalog-importer/internal/pipeline"
	repo "github.com/bidfinds/catalog-importer/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		inventory = flag.String("inventory", "", "path to the inventory export, .csv or .xlsx (required)")
		records   = flag.String("records", "", "directory of scraped product record files (required)")
		inmem     = flag.Bool("inmem", false, "use an in-memory SQLite catalog store")
		sqlite    = flag.String("sqlite", "", "use a SQLite catalog store at this path instead of Postgres")
		report    = flag.String("report", "", "optional XLSX run report output path")
		preview   = flag.Int("preview", pipeline.DefaultUnmatchedPreview, "max unmatched titles shown in the summary")
	)
	flag.Parse()

	if *inventory == "" {
		printError("Error: -inventory is required\n")
		os.Exit(1)
	}
	if *records == "" {
		printError("Error: -records is required\n")
		os.Exit(1)
	}

	cfg := common.LoadConfig()

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Open the catalog store
	var (
		db  *repo.DB
		err error
	)
	switch {
	case *inmem:
		db, err = repo.OpenSQLite(":memory:", logger)
	case *sqlite != "":
		db, err = repo.OpenSQLite(*sqlite, logger)
	default:
		if err := cfg.Validate(); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		db, err = repo.OpenPostgres(ctx, repo.Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
	}
	if err != nil {
		logger.Error("failed to open catalog store", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := db.HealthCheck(ctx, 1*time.Second, logger); err != nil {
		logger.Error("catalog store health check failed", "error", err)
		os.Exit(1)
	}
	if err := db.EnsureSchema(ctx, logger); err != nil {
		logger.Error("failed to ensure catalog schema", "error", err)
		os.Exit(1)
	}

	catalogRepo := repo.NewCatalogRepository(db, logger)

	p, err := pipeline.New(catalogRepo, logger, pipeline.WithUnmatchedPreview(*preview))
	if err != nil {
		logger.Error("failed to build pipeline", "error", err)
		os.Exit(1)
	}

	products, stats, err := p.Run(ctx, *inventory, *records)
	if err != nil {
		logger.Error("catalog import failed", "error", err)
		os.Exit(1)
	}

	// Optional XLSX run report
	if *report != "" {
		reportBytes, err := export.NewService(logger).BuildRunReport(products, stats)
		if err != nil {
			logger.Error("failed to build run report", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*report, reportBytes, 0644); err != nil {
			logger.Error("failed to write run report", "error", err)
			os.Exit(1)
		}
		logger.Info("run report written", "path", *report)
	}

	// Operator summary
	fmt.Printf("Catalog import complete!\n")
	fmt.Printf("- Rows imported: %d (of %d seen, %d skipped for missing title)\n",
		stats.ProductsLoaded, stats.RowsSeen, stats.RowsSkipped)
	fmt.Printf("- Matched: %d (high %d / medium %d / low %d)\n",
		stats.Matched, stats.HighConfidence, stats.MediumConfidence, stats.LowConfidence)
	fmt.Printf("- Unmatched: %d\n", stats.Unmatched)
	fmt.Printf("- Source records indexed: %d (%d skipped)\n",
		stats.RecordsIndexed, stats.RecordsSkipped)
	fmt.Printf("- Categories created: %d\n", stats.CategoriesCreated)
	if len(stats.UnmatchedTitles) > 0 {
		fmt.Printf("- Unmatched titles (first %d):\n", len(stats.UnmatchedTitles))
		for _, title := range stats.UnmatchedTitles {
			fmt.Printf("    %s\n", title)
		}
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
