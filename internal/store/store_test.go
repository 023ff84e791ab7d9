package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/planwise/internal/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenForTest(logger.NewNop())
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedUser(t *testing.T, s *Store) *User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), "test@example.com", "Test", "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "a@b.c", "A", "h1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.CreateUser(ctx, "a@b.c", "B", "h2")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSubjectOrderingExamsFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	far := time.Now().AddDate(0, 0, 30)
	near := time.Now().AddDate(0, 0, 5)
	for _, sub := range []*Subject{
		{UserID: u.ID, Name: "No exam", Difficulty: 3},
		{UserID: u.ID, Name: "Far", Difficulty: 3, ExamDate: &far},
		{UserID: u.ID, Name: "Near", Difficulty: 3, ExamDate: &near},
	} {
		if err := s.CreateSubject(ctx, sub); err != nil {
			t.Fatalf("create subject: %v", err)
		}
	}

	subjects, err := s.ListSubjects(ctx, u.ID)
	if err != nil {
		t.Fatalf("list subjects: %v", err)
	}
	if len(subjects) != 3 {
		t.Fatalf("expected 3 subjects, got %d", len(subjects))
	}
	if subjects[0].Name != "Near" || subjects[1].Name != "Far" || subjects[2].Name != "No exam" {
		t.Errorf("wrong order: %s, %s, %s", subjects[0].Name, subjects[1].Name, subjects[2].Name)
	}
}

func TestDeleteSubjectCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	sub := &Subject{UserID: u.ID, Name: "Math", Difficulty: 3}
	if err := s.CreateSubject(ctx, sub); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	topic := &Topic{UserID: u.ID, SubjectID: sub.ID, Title: "Algebra", EstimatedMinutes: 60}
	if err := s.CreateTopic(ctx, topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}
	sess := []Session{{
		ID: "s1", UserID: u.ID, SubjectID: sub.ID, TopicID: topic.ID,
		Date: time.Now(), Block: "Morning", PlannedMinutes: 60, Status: SessionPending,
	}}
	if err := s.BulkInsertSessions(ctx, sess); err != nil {
		t.Fatalf("insert sessions: %v", err)
	}

	if err := s.DeleteSubject(ctx, u.ID, sub.ID); err != nil {
		t.Fatalf("delete subject: %v", err)
	}

	topics, err := s.ListTopics(ctx, u.ID)
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 0 {
		t.Errorf("expected topics cascade-deleted, found %d", len(topics))
	}
	if _, err := s.SessionByID(ctx, u.ID, "s1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected session cascade-deleted, got %v", err)
	}
}

func TestCompleteSessionWritesStudyLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	sess := []Session{{
		ID: "s1", UserID: u.ID, SubjectID: "sub1", TopicID: "t1",
		Date: time.Now(), Block: "Morning", PlannedMinutes: 60, Status: SessionPending,
	}}
	if err := s.BulkInsertSessions(ctx, sess); err != nil {
		t.Fatalf("insert sessions: %v", err)
	}

	if err := s.CompleteSession(ctx, u.ID, "s1", 45, "went well"); err != nil {
		t.Fatalf("complete session: %v", err)
	}

	got, err := s.SessionByID(ctx, u.ID, "s1")
	if err != nil {
		t.Fatalf("session by id: %v", err)
	}
	if got.Status != SessionCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.ActualMinutes == nil || *got.ActualMinutes != 45 {
		t.Errorf("actual minutes = %v, want 45", got.ActualMinutes)
	}
	if got.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	var logs []StudyLog
	if err := s.DB().Where("session_id = ?", "s1").Find(&logs).Error; err != nil {
		t.Fatalf("query study logs: %v", err)
	}
	if len(logs) != 1 || logs[0].ActualMinutes != 45 {
		t.Errorf("expected one study log with 45 minutes, got %+v", logs)
	}

	stamps, err := s.CompletedSessionDates(ctx, u.ID)
	if err != nil {
		t.Fatalf("completed dates: %v", err)
	}
	if len(stamps) != 1 {
		t.Errorf("expected 1 completed stamp, got %d", len(stamps))
	}
}

func TestSkipAndBacklog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	sessions := []Session{
		{ID: "s1", UserID: u.ID, SubjectID: "sub1", TopicID: "t1", Date: time.Now(), Block: "Morning", PlannedMinutes: 60, Status: SessionPending},
		{ID: "s2", UserID: u.ID, SubjectID: "sub1", TopicID: "t2", Date: time.Now(), Block: "Evening", PlannedMinutes: 30, Status: SessionPending},
	}
	if err := s.BulkInsertSessions(ctx, sessions); err != nil {
		t.Fatalf("insert sessions: %v", err)
	}

	if err := s.SkipSession(ctx, u.ID, "s1"); err != nil {
		t.Fatalf("skip: %v", err)
	}

	backlog, err := s.BacklogSessions(ctx, u.ID)
	if err != nil {
		t.Fatalf("backlog: %v", err)
	}
	if len(backlog) != 1 || backlog[0].ID != "s1" {
		t.Fatalf("expected backlog [s1], got %+v", backlog)
	}

	// Rescheduling pulls it back out of the backlog.
	if err := s.RescheduleSession(ctx, u.ID, "s1", time.Now().AddDate(0, 0, 1), "Afternoon"); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	backlog, err = s.BacklogSessions(ctx, u.ID)
	if err != nil {
		t.Fatalf("backlog: %v", err)
	}
	if len(backlog) != 0 {
		t.Errorf("expected empty backlog after reschedule, got %d", len(backlog))
	}
}

func TestToggleTopicStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	sub := &Subject{UserID: u.ID, Name: "Math", Difficulty: 3}
	if err := s.CreateSubject(ctx, sub); err != nil {
		t.Fatalf("create subject: %v", err)
	}
	topic := &Topic{UserID: u.ID, SubjectID: sub.ID, Title: "Algebra", EstimatedMinutes: 60}
	if err := s.CreateTopic(ctx, topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	status, err := s.ToggleTopicStatus(ctx, u.ID, topic.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if status != TopicCompleted {
		t.Errorf("first toggle = %q, want completed", status)
	}
	status, err = s.ToggleTopicStatus(ctx, u.ID, topic.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if status != TopicPending {
		t.Errorf("second toggle = %q, want pending", status)
	}
}

func TestLatestPlanNilWhenNone(t *testing.T) {
	s := newTestStore(t)
	u := seedUser(t, s)

	p, err := s.LatestPlan(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("latest plan: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil plan, got %+v", p)
	}
}

func TestUpcomingExamsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)

	for i := 1; i <= 5; i++ {
		d := time.Now().AddDate(0, 0, i*2)
		sub := &Subject{UserID: u.ID, Name: "S", Difficulty: 3, ExamDate: &d}
		if err := s.CreateSubject(ctx, sub); err != nil {
			t.Fatalf("create subject: %v", err)
		}
	}
	past := time.Now().AddDate(0, 0, -3)
	if err := s.CreateSubject(ctx, &Subject{UserID: u.ID, Name: "Past", Difficulty: 3, ExamDate: &past}); err != nil {
		t.Fatalf("create past subject: %v", err)
	}

	exams, err := s.UpcomingExams(ctx, u.ID, 3)
	if err != nil {
		t.Fatalf("upcoming exams: %v", err)
	}
	if len(exams) != 3 {
		t.Fatalf("expected 3 exams, got %d", len(exams))
	}
	for _, e := range exams {
		if e.Name == "Past" {
			t.Error("past exam included in upcoming list")
		}
	}
}

func TestScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s)
	other, err := s.CreateUser(ctx, "other@example.com", "Other", "hash")
	if err != nil {
		t.Fatalf("create other user: %v", err)
	}

	sub := &Subject{UserID: u.ID, Name: "Math", Difficulty: 3}
	if err := s.CreateSubject(ctx, sub); err != nil {
		t.Fatalf("create subject: %v", err)
	}

	if _, err := s.SubjectByID(ctx, other.ID, sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound across users, got %v", err)
	}
	if err := s.DeleteSubject(ctx, other.ID, sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected delete across users to fail, got %v", err)
	}
}
