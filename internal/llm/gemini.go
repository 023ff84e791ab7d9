package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

type geminiClient struct {
	api   *genai.Client
	model string
}

func newGemini(ctx context.Context, cfg GeminiConfig) (*geminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{
		api:   client,
		model: aliasOrID(geminiAliases, cfg.Model),
	}, nil
}

func (g *geminiClient) ModelID() string { return g.model }

func (g *geminiClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	conf := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(p.MaxTokens),
	}
	if p.Temperature > 0 {
		temp := float32(p.Temperature)
		conf.Temperature = &temp
	}
	if p.System != "" {
		conf.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}
	if p.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = toGenaiSchema(p.Schema.Definition)
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: p.User}}},
	}

	result, err := g.api.Models.GenerateContent(ctx, g.model, contents, conf)
	if err != nil {
		return nil, classifyGeminiErr(err)
	}

	raw := json.RawMessage(result.Text())
	if p.Schema != nil {
		if err := p.Schema.check(raw); err != nil {
			return nil, err
		}
	}

	out := &Completion{
		JSON:      raw,
		Model:     g.model,
		Truncated: hitTokenLimit(result),
	}
	if u := result.UsageMetadata; u != nil {
		out.Tokens = TokenUsage{
			Prompt:     int(u.PromptTokenCount),
			Completion: int(u.CandidatesTokenCount),
		}
	}
	return out, nil
}

func hitTokenLimit(result *genai.GenerateContentResponse) bool {
	return len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS"
}

// toGenaiSchema translates the JSON Schema map into genai's typed schema.
// Gemini does not take raw JSON Schema; only the keywords our schemas use
// are carried over (constraints like minItems are enforced by check).
func toGenaiSchema(def map[string]any) *genai.Schema {
	out := &genai.Schema{}

	switch t, _ := def["type"].(string); t {
	case "object":
		out.Type = genai.TypeObject
	case "array":
		out.Type = genai.TypeArray
	case "integer":
		out.Type = genai.TypeInteger
	case "number":
		out.Type = genai.TypeNumber
	case "boolean":
		out.Type = genai.TypeBoolean
	default:
		out.Type = genai.TypeString
	}

	if d, ok := def["description"].(string); ok {
		out.Description = d
	}
	if props, ok := def["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, v := range props {
			if sub, ok := v.(map[string]any); ok {
				out.Properties[name] = toGenaiSchema(sub)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		out.Items = toGenaiSchema(items)
	}
	out.Required = stringList(def["required"])
	out.Enum = stringList(def["enum"])
	return out
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func classifyGeminiErr(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return rateLimited(err)
	}
	return unavailable(err)
}
