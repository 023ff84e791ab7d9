package advice

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/planwise/internal/llm"
)

func sampleInput() Input {
	return Input{
		Subjects: []SubjectSummary{
			{Name: "Physics", DaysToExam: 5, Difficulty: 4, Completion: 20},
			{Name: "History", DaysToExam: -1, Difficulty: 2, Completion: 80},
		},
		ReadinessScore:     42.5,
		SyllabusCompletion: 50,
		StudyStreak:        0,
		BacklogCount:       3,
	}
}

func TestTipsParsesProviderResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		JSON: json.RawMessage(`{"tips":[
			{"title":"Front-load Physics","detail":"Your exam is in 5 days.","subject":"Physics"},
			{"title":"Clear the backlog","detail":"3 sessions are overdue.","subject":""},
			{"title":"Restart the streak","detail":"Study at least once today.","subject":""}
		]}`),
	})
	svc := NewService(mock, DefaultConfig())

	tips, err := svc.Tips(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Tips: %v", err)
	}
	if len(tips) != 3 {
		t.Fatalf("expected 3 tips, got %d", len(tips))
	}
	if tips[0].Subject != "Physics" {
		t.Errorf("first tip subject = %q, want Physics", tips[0].Subject)
	}
}

func TestTipsPromptCarriesSnapshot(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		JSON: json.RawMessage(`{"tips":[]}`),
	})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Tips(context.Background(), sampleInput()); err != nil {
		t.Fatalf("Tips: %v", err)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}
	prompt := mock.Calls[0]
	if prompt.Schema != TipsSchema {
		t.Error("prompt did not carry the tips schema")
	}
	msg := prompt.User
	for _, want := range []string{"Physics", "exam in 5 days", "no exam date", "Study streak: 0", "Overdue sessions: 3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestTipsProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.Error{Kind: llm.KindUnavailable},
	})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Tips(context.Background(), sampleInput()); err == nil {
		t.Fatal("expected error from unavailable provider")
	}
}

func TestBuildUserMessageEmptySubjects(t *testing.T) {
	msg := buildUserMessage(Input{})
	if !strings.Contains(msg, "None") {
		t.Errorf("expected empty subject list to render as None:\n%s", msg)
	}
}
