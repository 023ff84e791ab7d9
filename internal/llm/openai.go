package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// openaiClient talks to OpenAI or any compatible host; OpenRouter rides
// the BaseURL override.
type openaiClient struct {
	api   *openai.Client
	model string
}

func newOpenAI(cfg OpenAIConfig) (*openaiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	return &openaiClient{
		api:   openai.NewClientWithConfig(conf),
		model: aliasOrID(openaiAliases, cfg.Model),
	}, nil
}

func (o *openaiClient) ModelID() string { return o.model }

func (o *openaiClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	req, err := o.buildRequest(p)
	if err != nil {
		return nil, err
	}

	resp, err := o.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyOpenAIErr(err)
	}
	if len(resp.Choices) == 0 {
		return nil, badPayload(nil, errors.New("openai response has no choices"))
	}

	choice := resp.Choices[0]
	raw := json.RawMessage(choice.Message.Content)
	if p.Schema != nil {
		if err := p.Schema.check(raw); err != nil {
			return nil, err
		}
	}

	return &Completion{
		JSON:      raw,
		Model:     resp.Model,
		Truncated: choice.FinishReason == openai.FinishReasonLength,
		Tokens: TokenUsage{
			Prompt:     resp.Usage.PromptTokens,
			Completion: resp.Usage.CompletionTokens,
		},
	}, nil
}

func (o *openaiClient) buildRequest(p Prompt) (openai.ChatCompletionRequest, error) {
	var messages []openai.ChatCompletionMessage
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: p.User,
	})

	req := openai.ChatCompletionRequest{
		Model:               o.model,
		Messages:            messages,
		MaxCompletionTokens: p.MaxTokens,
		Temperature:         float32(p.Temperature),
	}

	if p.Schema != nil {
		def, err := json.Marshal(p.Schema.Definition)
		if err != nil {
			return req, fmt.Errorf("marshal schema %q: %w", p.Schema.Name, err)
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   p.Schema.Name,
				Schema: json.RawMessage(def),
				Strict: true,
			},
		}
	}
	return req, nil
}

func classifyOpenAIErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return rateLimited(err)
	}
	return unavailable(err)
}
