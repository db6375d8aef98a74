package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodRecord = `{
  "product": {
    "name": "Amazon Echo Dot (3rd Gen)",
    "brand": "Amazon",
    "price": "39.99",
    "rating": "4.5",
    "reviews_count": "941,946",
    "description": "Smart speaker with Alexa.",
    "features": ["Voice control", "Compact design"],
    "images": ["https://img/1.jpg", "https://img/2.jpg"],
    "specifications": {"Color": "Charcoal"},
    "availability": "In Stock"
  },
  "metadata": {"extraction_successful": true, "error_message": null}
}`

const failedRecord = `{
  "product": {"name": "Ghost Item"},
  "metadata": {"extraction_successful": false, "error_message": "blocked"}
}`

const schemalessRecord = `{"product": {"brand": "NoName"}}`

func writeRecord(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "B07FZ8S74R.json", goodRecord)
	writeRecord(t, dir, "B08KJN3333.json", failedRecord)
	writeRecord(t, dir, "broken.json", `{not json`)
	writeRecord(t, dir, "noname.json", schemalessRecord)
	writeRecord(t, dir, "notes.txt", "ignore me")
	writeRecord(t, dir, ".hidden.json", goodRecord)

	reader, err := NewRecordReader(nil)
	require.NoError(t, err)

	records, stats, err := reader.LoadDirectory(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Scanned)
	assert.Equal(t, 1, stats.Indexed)
	assert.Equal(t, 3, stats.Skipped)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "B07FZ8S74R", rec.ASIN)
	assert.Equal(t, "Amazon Echo Dot (3rd Gen)", rec.Product.Name)
	assert.Equal(t, "4.5", rec.Product.Rating)
	assert.Equal(t, []string{"Voice control", "Compact design"}, rec.Product.Features)
	assert.True(t, rec.Metadata.ExtractionSuccessful)
}

func TestLoadDirectoryRepairsASIN(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "BO7XJ8C8F5.json", goodRecord)

	reader, err := NewRecordReader(nil)
	require.NoError(t, err)

	records, _, err := reader.LoadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B07XJ8C8F5", records[0].ASIN)
}

func TestLoadDirectoryNonASINFilename(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "item_204.json", goodRecord)

	reader, err := NewRecordReader(nil)
	require.NoError(t, err)

	records, _, err := reader.LoadDirectory(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].ASIN)
}

func TestLoadDirectoryMissingRoot(t *testing.T) {
	reader, err := NewRecordReader(nil)
	require.NoError(t, err)

	_, _, err = reader.LoadDirectory(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestCleanASIN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"valid passes through", "B07FZ8S74R", "B07FZ8S74R", true},
		{"whitespace trimmed", " B07FZ8S74R\r\n", "B07FZ8S74R", true},
		{"BO misread repaired", "BO7XJ8C8F5", "B07XJ8C8F5", true},
		{"wrong length rejected", "B07FZ8", "B07FZ8", false},
		{"wrong prefix rejected", "X07FZ8S74R", "X07FZ8S74R", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanASIN(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
