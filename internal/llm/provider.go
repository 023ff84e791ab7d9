// Package llm gives the study coach a single-turn completion interface
// over Anthropic, OpenAI-compatible and Gemini backends. Every call is
// one prompt in, one JSON document out; there is no conversation state.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is a completion backend.
type Provider interface {
	// Complete sends the prompt and returns the model's output. When the
	// prompt carries a Schema the output is validated against it before
	// being returned.
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// ModelID reports the concrete model this provider targets.
	ModelID() string
}

// Prompt is one generation request.
type Prompt struct {
	// System sets the model's role and rules.
	System string

	// User is the request body, typically a rendered learner snapshot.
	User string

	// Schema, when set, constrains the output to a JSON shape via the
	// provider's structured-output mechanism and validates the result.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Completion is the model's answer.
type Completion struct {
	// JSON is the output document. Guaranteed to match Prompt.Schema when
	// one was set.
	JSON json.RawMessage

	// Model is the concrete model that answered, as reported by the API.
	Model string

	// Truncated reports that generation stopped at MaxTokens. A truncated
	// document usually fails schema validation before reaching callers.
	Truncated bool

	Tokens TokenUsage
}

// TokenUsage counts tokens spent on one completion.
type TokenUsage struct {
	Prompt     int
	Completion int
}

// aliasOrID maps a friendly model alias to a provider model ID. Unknown
// names pass through so exact IDs from config work too.
func aliasOrID(aliases map[string]string, name string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
