package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bidfinds/catalog-importer/internal/entity"
)

// headerAliases maps export column headers to canonical field names. The flat
// export shows up with different vocabularies depending on which tool wrote
// it, so readers resolve headers through this table instead of matching
// literally.
var headerAliases = map[string]string{
	"fb_sku":      "sku",
	"sku":         "sku",
	"item_number": "sku",

	"title":        "title",
	"product_name": "title",
	"name":         "title",

	"description": "description",

	"category": "category",

	"msrp":              "msrp",
	"list_price":        "msrp",
	"marketplace_price": "msrp",
	"retail_price":      "msrp",

	"price":      "price",
	"sale_price": "price",
	"bid_amount": "price",

	"cost":       "cost",
	"unit_cost":  "cost",
	"total_paid": "cost",

	"discount_percent": "discount_percent",
	"discount":         "discount_percent",

	"quantity": "quantity",
	"qty":      "quantity",

	"condition": "condition",

	"brand": "brand",

	"tags": "tags",

	"image_url":  "image",
	"image":      "image",
	"main_image": "image",

	"additional_image_urls": "extra_images",
	"additional_images":     "extra_images",
	"images":                "extra_images",

	"invoice_file":   "inventory_id",
	"invoice_number": "inventory_id",
	"stock_id":       "inventory_id",
	"inventory_id":   "inventory_id",
}

// ReadInventory parses the flat inventory export at path into rows. CSV is
// the native format; .xlsx workbooks are read from their first sheet. A
// missing file is a fatal precondition failure for the run.
func ReadInventory(path string, logger *slog.Logger) ([]entity.InventoryRow, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("inventory file: %w", err)
	}

	var (
		table [][]string
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		table, err = readXLSX(path)
	default:
		table, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, errors.New("inventory file has no header row")
	}

	cols := resolveHeader(table[0])
	if _, ok := hasField(cols, "title"); !ok {
		return nil, errors.New("inventory file has no title column")
	}

	rows := make([]entity.InventoryRow, 0, len(table)-1)
	for i, record := range table[1:] {
		row := entity.InventoryRow{Index: i}
		for col, field := range cols {
			if col >= len(record) {
				continue
			}
			val := strings.TrimSpace(record[col])
			if val == "" {
				continue
			}
			switch field {
			case "sku":
				row.SKU = val
			case "title":
				row.Title = val
			case "description":
				row.Description = val
			case "category":
				row.Category = val
			case "msrp":
				row.MSRP = val
			case "price":
				row.Price = val
			case "cost":
				row.Cost = val
			case "discount_percent":
				row.DiscountPercent = val
			case "quantity":
				row.Quantity = val
			case "condition":
				row.Condition = val
			case "brand":
				row.Brand = val
			case "tags":
				row.Tags = val
			case "image":
				row.ImageURL = val
			case "extra_images":
				row.ExtraImages = append(row.ExtraImages, splitMulti(val)...)
			case "inventory_id":
				row.InventoryIDs = append(row.InventoryIDs, val)
			}
		}
		rows = append(rows, row)
	}

	logger.Info("inventory export read", "path", path, "rows", len(rows))
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("close inventory file", "error", err)
		}
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var table [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read inventory file: %w", err)
		}
		table = append(table, record)
	}
	return table, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("close inventory workbook", "error", err)
		}
	}()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read inventory sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// resolveHeader maps column positions to canonical field names, stripping a
// UTF-8 BOM from the first header cell if present.
func resolveHeader(header []string) map[int]string {
	cols := make(map[int]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if field, ok := headerAliases[key]; ok {
			cols[i] = field
		}
	}
	return cols
}

func hasField(cols map[int]string, field string) (int, bool) {
	for i, f := range cols {
		if f == field {
			return i, true
		}
	}
	return 0, false
}

// splitMulti splits a delimiter-separated image list on comma, semicolon, or
// pipe, dropping empties.
func splitMulti(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
