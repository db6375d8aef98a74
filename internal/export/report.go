package export

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

// Service produces XLSX run reports for operators: one sheet of imported
// products with match provenance, one sheet of unmatched titles.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildRunReport returns an XLSX workbook (as bytes) for one completed run.
func (s *Service) BuildRunReport(products []*entity.Product, stats *entity.RunStats) ([]byte, error) {
	f := excelize.NewFile()

	const productsSheet = "Products"
	if err := renameDefaultSheet(f, productsSheet); err != nil {
		return nil, err
	}

	headers := []string{
		"Title", "Slug", "Category", "Price", "Discounted Price",
		"Reviews", "Brand", "ASIN", "Match Score", "Match Tier",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(productsSheet, cell, h)
	}

	row := 2
	for _, p := range products {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(productsSheet, cell, v)
		}

		write(1, p.Title)
		write(2, p.Slug)
		write(3, p.CategoryName)
		write(4, p.Price.StringFixed(2))
		write(5, p.DiscountedPrice.StringFixed(2))
		write(6, p.Reviews)
		if p.Brand != nil {
			write(7, *p.Brand)
		}
		if p.ASIN != nil {
			write(8, *p.ASIN)
		}
		if p.MatchTier != "" {
			write(9, fmt.Sprintf("%.3f", p.MatchScore))
			write(10, string(p.MatchTier))
		}
		row++
	}

	const unmatchedSheet = "Unmatched"
	if _, err := f.NewSheet(unmatchedSheet); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(unmatchedSheet, "A1", "Unmatched Title")
	for i, title := range stats.UnmatchedTitles {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetCellValue(unmatchedSheet, cell, title)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write report workbook: %w", err)
	}
	s.logger.Info("run report built", "products", len(products),
		"unmatched_preview", len(stats.UnmatchedTitles))
	return buf.Bytes(), nil
}

func renameDefaultSheet(f *excelize.File, name string) error {
	def := f.GetSheetName(0)
	if def == name {
		return nil
	}
	return f.SetSheetName(def, name)
}
