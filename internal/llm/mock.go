package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply for the mock provider.
type MockResponse struct {
	JSON   json.RawMessage
	Tokens TokenUsage
	Err    error
}

// MockProvider replays canned responses in order and records every prompt
// it receives. Safe for concurrent use.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse

	// Calls holds every prompt received, in order.
	Calls []Prompt
}

// NewMockProvider builds a mock with the given replies queued.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// Complete pops the next canned reply. An empty queue reads as the
// provider being down.
func (m *MockProvider) Complete(_ context.Context, p Prompt) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, p)

	if len(m.queue) == 0 {
		return nil, unavailable(nil)
	}
	next := m.queue[0]
	m.queue = m.queue[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &Completion{JSON: next.JSON, Model: "mock", Tokens: next.Tokens}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// Enqueue appends another canned reply.
func (m *MockProvider) Enqueue(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount reports how many prompts were received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
