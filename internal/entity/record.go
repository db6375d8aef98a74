package entity

// SourceRecord is one externally scraped product document, as written by the
// fetch collaborator: a nested product payload plus extraction metadata.
type SourceRecord struct {
	// ASIN is the external catalog identifier, normalized from the record's
	// filename. Empty when the filename does not carry a valid identifier.
	ASIN string `json:"-"`

	Product  RecordProduct  `json:"product"`
	Metadata RecordMetadata `json:"metadata"`
}

// RecordProduct mirrors the scraper's product payload. Numeric-looking fields
// arrive as strings and stay strings until merge time.
type RecordProduct struct {
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Price          string         `json:"price"`
	Rating         string         `json:"rating"`
	ReviewsCount   string         `json:"reviews_count"`
	Description    string         `json:"description"`
	BulletPoints   string         `json:"bullet_points"`
	Features       []string       `json:"features"`
	Images         []string       `json:"images"`
	Specifications map[string]any `json:"specifications"`
	Availability   string         `json:"availability"`
	URL            string         `json:"url"`
	ScrapedAt      string         `json:"scraped_at"`
}

// RecordMetadata flags whether the upstream extraction succeeded.
type RecordMetadata struct {
	ExtractionSuccessful bool   `json:"extraction_successful"`
	ErrorMessage         string `json:"error_message"`
	FieldsExtracted      int    `json:"fields_extracted"`
}
