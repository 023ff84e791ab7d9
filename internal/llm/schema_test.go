package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func tipListSchema() *Schema {
	return &Schema{
		Name: "tip_list",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"tips": map[string]any{
					"type":     "array",
					"minItems": 2,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required":             []any{"tips"},
			"additionalProperties": false,
		},
	}
}

func TestSchemaCheckAccepts(t *testing.T) {
	s := tipListSchema()
	if err := s.check(json.RawMessage(`{"tips":["a","b"]}`)); err != nil {
		t.Fatalf("check: %v", err)
	}
	// Second check reuses the compiled schema.
	if err := s.check(json.RawMessage(`{"tips":["c","d","e"]}`)); err != nil {
		t.Fatalf("second check: %v", err)
	}
}

func TestSchemaCheckRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `tips: yes`},
		{"missing required", `{}`},
		{"too few items", `{"tips":["only one"]}`},
		{"extra property", `{"tips":["a","b"],"extra":1}`},
		{"wrong item type", `{"tips":[1,2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tipListSchema().check(json.RawMessage(tt.raw))
			var perr *Error
			if !errors.As(err, &perr) || perr.Kind != KindBadPayload {
				t.Fatalf("err = %v, want KindBadPayload", err)
			}
			if string(perr.Content) != tt.raw {
				t.Errorf("Content = %q, want the offending output", perr.Content)
			}
		})
	}
}
