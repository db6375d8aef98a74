package entity

// InventoryRow is one row of the flat inventory export. All value fields are
// kept as the raw strings from the file; parsing happens downstream so that a
// bad number in one column never drops the row.
type InventoryRow struct {
	// Index is the 0-based position of the row in the export, used as a
	// stable fallback for slug assignment.
	Index int

	SKU             string
	Title           string
	Description     string
	Category        string
	MSRP            string
	Price           string
	Cost            string
	DiscountPercent string
	Quantity        string
	Condition       string
	Brand           string
	Tags            string

	// ImageURL is the row's primary image reference; ExtraImages holds any
	// additional delimiter-separated references from the export.
	ImageURL    string
	ExtraImages []string

	// InventoryIDs collects invoice/stock tracking identifiers.
	InventoryIDs []string
}

// HasTitle reports whether the row carries a usable title.
func (r InventoryRow) HasTitle() bool {
	for _, c := range r.Title {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return true
		}
	}
	return false
}
