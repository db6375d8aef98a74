package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

// RecordStats aggregates per-directory results for one scan.
type RecordStats struct {
	Scanned int
	Indexed int
	Skipped int
}

// RecordReader loads the directory of per-item scraped record files. Each
// file is schema-validated before it is admitted; malformed or
// failed-extraction files are logged and skipped, never fatal.
type RecordReader struct {
	schema *jsonschema.Schema
	logger *slog.Logger
}

func NewRecordReader(logger *slog.Logger) (*RecordReader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	b, err := json.Marshal(BuildRecordJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal record schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add record schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}

	return &RecordReader{schema: schema, logger: logger}, nil
}

// LoadDirectory walks root and parses every .json record file, skipping
// hidden entries. Returns the admitted records plus aggregate stats. A
// missing or unreadable root is fatal for the run.
func (r *RecordReader) LoadDirectory(root string) ([]*entity.SourceRecord, RecordStats, error) {
	var (
		records []*entity.SourceRecord
		stats   RecordStats
	)

	if strings.TrimSpace(root) == "" {
		return nil, stats, fmt.Errorf("records directory is required")
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".json" {
			return nil
		}

		stats.Scanned++
		rec, err := r.loadFile(path)
		if err != nil {
			r.logger.Warn("skipping source record", "path", path, "error", err)
			stats.Skipped++
			return nil
		}
		records = append(records, rec)
		stats.Indexed++
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk records directory: %w", err)
	}

	r.logger.Info("source records loaded",
		"dir", root,
		"scanned", stats.Scanned,
		"indexed", stats.Indexed,
		"skipped", stats.Skipped)
	return records, stats, nil
}

func (r *RecordReader) loadFile(path string) (*entity.SourceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := r.schema.Validate(v); err != nil {
		return nil, fmt.Errorf("record does not match schema: %w", err)
	}

	var rec entity.SourceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if !rec.Metadata.ExtractionSuccessful {
		return nil, fmt.Errorf("extraction was not successful: %s", rec.Metadata.ErrorMessage)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if asin, ok := CleanASIN(base); ok {
		rec.ASIN = asin
	}
	return &rec, nil
}

// CleanASIN normalizes an external catalog identifier: strips whitespace and
// CR/LF, repairs the common "BO" misread of "B0", and accepts only the
// canonical 10-character form with a leading 'B'.
func CleanASIN(raw string) (string, bool) {
	asin := strings.TrimSpace(raw)
	asin = strings.ReplaceAll(asin, "\r", "")
	asin = strings.ReplaceAll(asin, "\n", "")

	if len(asin) == 10 && strings.HasPrefix(asin, "BO") {
		asin = "B0" + asin[2:]
	}
	if len(asin) == 10 && strings.HasPrefix(asin, "B") {
		return asin, true
	}
	return asin, false
}
