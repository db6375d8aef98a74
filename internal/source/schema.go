package source

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the scraper's per-item record files. Validated
// locally before a record enters the match index.
func BuildRecordJSONSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"product"},
		"properties": map[string]any{
			"product": map[string]any{
				"type":     "object",
				"required": []string{"name"},
				"properties": map[string]any{
					"name":           map[string]any{"type": "string", "minLength": 1},
					"brand":          map[string]any{"type": "string"},
					"price":          map[string]any{"type": "string"},
					"rating":         map[string]any{"type": "string"},
					"reviews_count":  map[string]any{"type": "string"},
					"description":    map[string]any{"type": "string"},
					"bullet_points":  map[string]any{"type": "string"},
					"features":       stringArrayProp(),
					"images":         stringArrayProp(),
					"specifications": map[string]any{"type": "object"},
					"availability":   map[string]any{"type": "string"},
					"url":            map[string]any{"type": "string"},
				},
			},
			"metadata": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"extraction_successful": map[string]any{"type": "boolean"},
					"error_message":         map[string]any{"type": []string{"string", "null"}},
				},
			},
		},
	}
}

func stringArrayProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}
