package advice

import "github.com/abhisek/planwise/internal/llm"

// TipsSchema defines the JSON schema for study-coach responses.
var TipsSchema = &llm.Schema{
	Name:        "study-tips",
	Description: "A short list of personalized study tips for an exam candidate",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tips": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "A short imperative headline, e.g. 'Front-load Physics'",
						},
						"detail": map[string]any{
							"type":        "string",
							"description": "One or two sentences of concrete, actionable advice",
						},
						"subject": map[string]any{
							"type":        "string",
							"description": "The subject this tip is about, or empty for general advice",
						},
					},
					"required":             []any{"title", "detail", "subject"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tips"},
		"additionalProperties": false,
	},
}
