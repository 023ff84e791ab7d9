package planner

import (
	"testing"
	"time"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

func testConfig(start time.Time, days int) Config {
	return Config{
		DailyStudyMinutes:  240,
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, days-1),
		Blocks:             []string{"Morning", "Afternoon", "Evening"},
		MaxSessionsPerDay:  3,
		RevisionBufferDays: 0,
	}
}

func TestAllocateSingleSmallTopic(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 10)

	ranked := []TopicPriority{
		{TopicID: "t1", SubjectID: "s1", Score: 1.0, EstimatedMinutes: 30},
	}

	sessions := AllocateSessions(cfg, "u1", ranked)

	// The ledger reaches 0 after the first slot; the remaining 10-day
	// window must stay empty.
	if len(sessions) != 1 {
		t.Fatalf("expected exactly 1 session, got %d", len(sessions))
	}
	if sessions[0].PlannedMinutes != 30 {
		t.Errorf("planned minutes = %d, want 30", sessions[0].PlannedMinutes)
	}
	if !sessions[0].Date.Equal(start) {
		t.Errorf("session date = %v, want %v", sessions[0].Date, start)
	}
	if sessions[0].Block != "Morning" {
		t.Errorf("session block = %q, want Morning", sessions[0].Block)
	}
}

func TestAllocateRespectsMaxSessionsPerDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 5)
	cfg.MaxSessionsPerDay = 2

	ranked := []TopicPriority{
		{TopicID: "t1", SubjectID: "s1", Score: 0.6, EstimatedMinutes: 600},
		{TopicID: "t2", SubjectID: "s2", Score: 0.4, EstimatedMinutes: 600},
	}

	sessions := AllocateSessions(cfg, "u1", ranked)

	perDay := make(map[time.Time]int)
	for _, s := range sessions {
		perDay[s.Date]++
	}
	for day, n := range perDay {
		if n > 2 {
			t.Errorf("day %v has %d sessions, max is 2", day, n)
		}
	}
}

func TestAllocateNeverExceedsEstimatedMinutes(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 30)

	ranked := []TopicPriority{
		{TopicID: "t1", SubjectID: "s1", Score: 0.7, EstimatedMinutes: 150},
		{TopicID: "t2", SubjectID: "s2", Score: 0.3, EstimatedMinutes: 45},
	}

	sessions := AllocateSessions(cfg, "u1", ranked)

	totals := make(map[string]int)
	for _, s := range sessions {
		if s.PlannedMinutes <= 0 {
			t.Errorf("session with non-positive minutes: %+v", s)
		}
		if s.PlannedMinutes > DefaultSessionMinutes {
			t.Errorf("session exceeds slot cap: %d", s.PlannedMinutes)
		}
		totals[s.TopicID] += s.PlannedMinutes
	}
	if totals["t1"] != 150 {
		t.Errorf("t1 allocated %d minutes, want 150", totals["t1"])
	}
	if totals["t2"] != 45 {
		t.Errorf("t2 allocated %d minutes, want 45", totals["t2"])
	}
}

func TestAllocateUrgentSubjectFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now

	// Subject A: exam in 3 days, difficulty 5. Subject B: exam in 30
	// days, difficulty 1. A's urgency dominates, so A's sessions fill
	// the first blocks of day one.
	subjects := []store.Subject{
		{ID: "A", Name: "Physics", Difficulty: 5, ExamDate: timePtr(now.AddDate(0, 0, 3))},
		{ID: "B", Name: "Art", Difficulty: 1, ExamDate: timePtr(now.AddDate(0, 0, 30))},
	}
	topics := []store.Topic{
		{ID: "ta", SubjectID: "A", EstimatedMinutes: 120, PriorityOverride: 1},
		{ID: "tb", SubjectID: "B", EstimatedMinutes: 120, PriorityOverride: 1},
	}

	cfg := testConfig(start, 5)
	priorities := ScoreTopics(subjects, topics, now, logger.NewNop())
	ranked := rankPriorities(topics, priorities)

	sessions := AllocateSessions(cfg, "u1", ranked)

	if len(sessions) == 0 {
		t.Fatal("no sessions allocated")
	}
	if sessions[0].TopicID != "ta" {
		t.Errorf("first session topic = %s, want ta", sessions[0].TopicID)
	}

	// On the first day every A session must precede every B session.
	firstDay := sessions[0].Date
	seenB := false
	for _, s := range sessions {
		if !s.Date.Equal(firstDay) {
			break
		}
		if s.TopicID == "tb" {
			seenB = true
		}
		if s.TopicID == "ta" && seenB {
			t.Error("subject A session after subject B on the first day")
		}
	}
}

func TestAllocateSameSubjectPenaltyPrefersVariety(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 2)

	// Close scores: after s1 takes a block, the 0.6 penalty drops it
	// below s2, so blocks alternate.
	ranked := []TopicPriority{
		{TopicID: "t1", SubjectID: "s1", Score: 0.55, EstimatedMinutes: 180},
		{TopicID: "t2", SubjectID: "s2", Score: 0.45, EstimatedMinutes: 180},
	}

	sessions := AllocateSessions(cfg, "u1", ranked)
	if len(sessions) < 3 {
		t.Fatalf("expected a full first day, got %d sessions", len(sessions))
	}
	want := []string{"t1", "t2", "t1"}
	for i, w := range want {
		if sessions[i].TopicID != w {
			t.Errorf("slot %d topic = %s, want %s", i, sessions[i].TopicID, w)
		}
	}
}

func TestAllocateDominantSubjectCanRepeat(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 1)

	// The penalty is a soft preference: 0.9*0.6 = 0.54 still beats 0.1.
	ranked := []TopicPriority{
		{TopicID: "t1", SubjectID: "s1", Score: 0.9, EstimatedMinutes: 180},
		{TopicID: "t2", SubjectID: "s2", Score: 0.1, EstimatedMinutes: 180},
	}

	sessions := AllocateSessions(cfg, "u1", ranked)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		if s.TopicID != "t1" {
			t.Errorf("slot %d topic = %s, want t1 (dominant subject repeats)", i, s.TopicID)
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 7)

	ranked := []TopicPriority{
		{TopicID: "t1", SubjectID: "s1", Score: 0.5, EstimatedMinutes: 200},
		{TopicID: "t2", SubjectID: "s2", Score: 0.5, EstimatedMinutes: 200},
		{TopicID: "t3", SubjectID: "s3", Score: 0.5, EstimatedMinutes: 200},
	}

	a := AllocateSessions(cfg, "u1", ranked)
	b := AllocateSessions(cfg, "u1", ranked)

	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].TopicID != b[i].TopicID || a[i].Block != b[i].Block || !a[i].Date.Equal(b[i].Date) {
			t.Fatalf("runs diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAllocateEmptyPriorities(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	cfg := testConfig(start, 5)

	sessions := AllocateSessions(cfg, "u1", nil)
	if len(sessions) != 0 {
		t.Errorf("expected no sessions for empty priorities, got %d", len(sessions))
	}
}
