// Package advice generates personalized study tips from the learner's
// current plan and progress using an LLM provider.
package advice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/planwise/internal/llm"
)

// Input is the learner snapshot the coach reasons over. Callers assemble
// it from the progress and store layers.
type Input struct {
	Subjects           []SubjectSummary
	ReadinessScore     float64
	SyllabusCompletion float64
	StudyStreak        int
	BacklogCount       int
}

// SubjectSummary is one subject's standing.
type SubjectSummary struct {
	Name       string
	DaysToExam int // -1 when no exam date is set
	Difficulty int
	Completion float64
}

// Tip is a single piece of advice.
type Tip struct {
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Subject string `json:"subject,omitempty"`
}

// Config bounds the LLM request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns generation limits suited to a short tip list.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}

// Service produces study tips via the configured provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates an advice service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// tipsOutput is the raw LLM response shape.
type tipsOutput struct {
	Tips []Tip `json:"tips"`
}

// Tips asks the provider for 3 to 5 tips grounded in the given snapshot.
func (s *Service) Tips(ctx context.Context, in Input) ([]Tip, error) {
	prompt := llm.Prompt{
		System:      systemPrompt,
		User:        buildUserMessage(in),
		Schema:      TipsSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate study tips: %w", err)
	}

	var out tipsOutput
	if err := json.Unmarshal(resp.JSON, &out); err != nil {
		return nil, fmt.Errorf("parse study tips: %w", err)
	}
	return out.Tips, nil
}
