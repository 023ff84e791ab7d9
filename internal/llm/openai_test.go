package llm

import (
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := newOpenAI(OpenAIConfig{Model: "gpt-4o-mini"}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestOpenAIBuildRequest(t *testing.T) {
	c, err := newOpenAI(OpenAIConfig{APIKey: "key", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("newOpenAI: %v", err)
	}

	req, err := c.buildRequest(Prompt{
		System:      "be a coach",
		User:        "snapshot goes here",
		Schema:      tipListSchema(),
		MaxTokens:   512,
		Temperature: 0.4,
	})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}

	if len(req.Messages) != 2 {
		t.Fatalf("messages = %d, want system + user", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[0].Content != "be a coach" {
		t.Errorf("first message = %+v, want system prompt", req.Messages[0])
	}
	if req.Messages[1].Role != openai.ChatMessageRoleUser || req.Messages[1].Content != "snapshot goes here" {
		t.Errorf("second message = %+v, want user prompt", req.Messages[1])
	}
	if req.MaxCompletionTokens != 512 {
		t.Errorf("MaxCompletionTokens = %d", req.MaxCompletionTokens)
	}

	rf := req.ResponseFormat
	if rf == nil || rf.Type != openai.ChatCompletionResponseFormatTypeJSONSchema {
		t.Fatalf("ResponseFormat = %+v, want JSON schema format", rf)
	}
	if rf.JSONSchema.Name != "tip_list" || !rf.JSONSchema.Strict {
		t.Errorf("JSONSchema = %+v, want strict tip_list", rf.JSONSchema)
	}
}

func TestOpenAIBuildRequestWithoutSchema(t *testing.T) {
	c, err := newOpenAI(OpenAIConfig{APIKey: "key", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("newOpenAI: %v", err)
	}

	req, err := c.buildRequest(Prompt{User: "plain question"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.ResponseFormat != nil {
		t.Error("expected no response format without a schema")
	}
	if len(req.Messages) != 1 {
		t.Errorf("messages = %d, want user only", len(req.Messages))
	}
}

func TestClassifyOpenAIErr(t *testing.T) {
	var perr *Error

	err := classifyOpenAIErr(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests})
	if !errors.As(err, &perr) || perr.Kind != KindRateLimited {
		t.Errorf("429 classified as %v, want KindRateLimited", err)
	}

	err = classifyOpenAIErr(&openai.APIError{HTTPStatusCode: http.StatusBadGateway})
	if !errors.As(err, &perr) || perr.Kind != KindUnavailable {
		t.Errorf("502 classified as %v, want KindUnavailable", err)
	}
}
