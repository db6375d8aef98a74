package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

func TestBuildRunReport(t *testing.T) {
	brand := "Samsung"
	asin := "B07FZ8S74R"
	products := []*entity.Product{
		{
			Title:           "Samsung 55in 4K TV",
			Slug:            "samsung-55in-4k-tv",
			CategoryName:    "Electronics",
			Price:           decimal.RequireFromString("599.99"),
			DiscountedPrice: decimal.RequireFromString("449.99"),
			Reviews:         12,
			Brand:           &brand,
			ASIN:            &asin,
			MatchScore:      0.912,
			MatchTier:       entity.ConfidenceHigh,
		},
		{
			Title:           "Desk Lamp",
			Slug:            "desk-lamp",
			CategoryName:    "Miscellaneous",
			Price:           decimal.RequireFromString("19.99"),
			DiscountedPrice: decimal.RequireFromString("19.99"),
			Reviews:         2,
		},
	}
	stats := &entity.RunStats{
		UnmatchedTitles: []string{"Desk Lamp", "Garden Hose"},
	}

	svc := NewService(nil)
	data, err := svc.BuildRunReport(products, stats)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Products", "Unmatched"}, f.GetSheetList())

	get := func(sheet, cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Title", get("Products", "A1"))
	assert.Equal(t, "Match Tier", get("Products", "J1"))

	assert.Equal(t, "Samsung 55in 4K TV", get("Products", "A2"))
	assert.Equal(t, "samsung-55in-4k-tv", get("Products", "B2"))
	assert.Equal(t, "Electronics", get("Products", "C2"))
	assert.Equal(t, "599.99", get("Products", "D2"))
	assert.Equal(t, "449.99", get("Products", "E2"))
	assert.Equal(t, "12", get("Products", "F2"))
	assert.Equal(t, "Samsung", get("Products", "G2"))
	assert.Equal(t, "B07FZ8S74R", get("Products", "H2"))
	assert.Equal(t, "0.912", get("Products", "I2"))
	assert.Equal(t, "high", get("Products", "J2"))

	// Unmatched product rows leave the provenance columns blank.
	assert.Equal(t, "Desk Lamp", get("Products", "A3"))
	assert.Equal(t, "", get("Products", "I3"))
	assert.Equal(t, "", get("Products", "J3"))

	assert.Equal(t, "Unmatched Title", get("Unmatched", "A1"))
	assert.Equal(t, "Desk Lamp", get("Unmatched", "A2"))
	assert.Equal(t, "Garden Hose", get("Unmatched", "A3"))
}

func TestBuildRunReportEmptyRun(t *testing.T) {
	svc := NewService(nil)
	data, err := svc.BuildRunReport(nil, &entity.RunStats{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	v, err := f.GetCellValue("Products", "A2")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
