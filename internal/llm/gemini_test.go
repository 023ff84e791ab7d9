package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := newGemini(context.Background(), GeminiConfig{Model: "gemini-flash"}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestToGenaiSchemaTranslatesNestedShape(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "a tip list",
		"properties": map[string]any{
			"tips": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"level": map[string]any{"type": "string", "enum": []any{"low", "high"}},
					},
					"required": []any{"title"},
				},
			},
		},
		"required": []any{"tips"},
	}

	s := toGenaiSchema(def)
	if s.Type != genai.TypeObject || s.Description != "a tip list" {
		t.Fatalf("root = %+v", s)
	}
	if len(s.Required) != 1 || s.Required[0] != "tips" {
		t.Errorf("root required = %v", s.Required)
	}

	tips := s.Properties["tips"]
	if tips == nil || tips.Type != genai.TypeArray {
		t.Fatalf("tips = %+v, want array", tips)
	}
	item := tips.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("items = %+v, want object", item)
	}
	if item.Properties["title"].Type != genai.TypeString {
		t.Error("title should be a string")
	}
	if got := item.Properties["level"].Enum; len(got) != 2 || got[0] != "low" {
		t.Errorf("level enum = %v", got)
	}
	if len(item.Required) != 1 || item.Required[0] != "title" {
		t.Errorf("item required = %v", item.Required)
	}
}

func TestToGenaiSchemaDefaultsToString(t *testing.T) {
	s := toGenaiSchema(map[string]any{})
	if s.Type != genai.TypeString {
		t.Errorf("untyped schema = %v, want string", s.Type)
	}
}

func TestHitTokenLimit(t *testing.T) {
	full := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "MAX_TOKENS"}},
	}
	if !hitTokenLimit(full) {
		t.Error("MAX_TOKENS should report truncation")
	}

	done := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "STOP"}},
	}
	if hitTokenLimit(done) {
		t.Error("STOP should not report truncation")
	}
	if hitTokenLimit(&genai.GenerateContentResponse{}) {
		t.Error("empty response should not report truncation")
	}
}

func TestClassifyGeminiErr(t *testing.T) {
	var perr *Error

	err := classifyGeminiErr(&genai.APIError{Code: http.StatusTooManyRequests})
	if !errors.As(err, &perr) || perr.Kind != KindRateLimited {
		t.Errorf("429 classified as %v, want KindRateLimited", err)
	}

	err = classifyGeminiErr(&genai.APIError{Code: http.StatusServiceUnavailable})
	if !errors.As(err, &perr) || perr.Kind != KindUnavailable {
		t.Errorf("503 classified as %v, want KindUnavailable", err)
	}
}
