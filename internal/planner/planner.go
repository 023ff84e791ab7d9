// Package planner implements the study-plan generation engine: priority
// scoring, greedy day-by-block session allocation, and revision insertion
// ahead of exams.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

// Engine tuning constants. Kept at package scope so they are testable and
// tunable without touching allocation logic.
const (
	// DefaultSessionMinutes caps a single allocated slot.
	DefaultSessionMinutes = 60

	// RevisionMinutes is the fixed length of inserted revision sessions.
	RevisionMinutes = 30

	// SameSubjectPenalty scales a candidate's score when its subject was
	// just assigned. A soft preference: a dominant subject can still
	// repeat across adjacent blocks.
	SameSubjectPenalty = 0.6

	// BacklogPriorityMultiplier boosts rescheduled backlog work when it
	// re-enters planning.
	BacklogPriorityMultiplier = 1.5

	// urgencyExponent shapes the exam-proximity decay: days^(-0.3).
	urgencyExponent = 0.3

	hardDifficultyMultiplier = 1.3
	easyDifficultyMultiplier = 0.8
)

// DefaultBlocks is the block order used when a plan request names none.
var DefaultBlocks = []string{"Morning", "Afternoon", "Evening"}

// Precondition failures surfaced to the user before any allocation work.
var (
	ErrNoSubjects      = errors.New("no subjects found, please add subjects first")
	ErrNoPendingTopics = errors.New("no pending topics found, please add topics to your subjects first")
)

// Config is one plan-generation request.
type Config struct {
	DailyStudyMinutes  int       `json:"daily_study_minutes"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"` // inclusive
	Blocks             []string  `json:"blocks"`
	MaxSessionsPerDay  int       `json:"max_sessions_per_day"`
	RevisionBufferDays int       `json:"revision_buffer_days"`
}

// Validate enforces the same bounds the request form always has. Note that
// DailyStudyMinutes is a target the user sees, not a constraint the
// allocator enforces; only the per-slot cap and MaxSessionsPerDay bound
// daily load.
func (c *Config) Validate() error {
	if c.DailyStudyMinutes < 30 || c.DailyStudyMinutes > 720 {
		return fmt.Errorf("daily study time must be between 30 and 720 minutes")
	}
	if c.MaxSessionsPerDay < 1 || c.MaxSessionsPerDay > 10 {
		return fmt.Errorf("max sessions per day must be between 1 and 10")
	}
	if c.RevisionBufferDays < 0 || c.RevisionBufferDays > 7 {
		return fmt.Errorf("revision buffer must be between 0 and 7 days")
	}
	if !c.StartDate.Before(c.EndDate) {
		return fmt.Errorf("end date must be after start date")
	}
	if len(c.Blocks) == 0 {
		c.Blocks = DefaultBlocks
	}
	return nil
}

// Repo is the slice of the store the engine needs.
type Repo interface {
	ListSubjects(ctx context.Context, userID string) ([]store.Subject, error)
	ListPendingTopics(ctx context.Context, userID string) ([]store.Topic, error)
	InsertPlan(ctx context.Context, p *store.Plan) error
	BulkInsertSessions(ctx context.Context, sessions []store.Session) error
}

// Result is the outcome of a successful generation.
type Result struct {
	PlanID        string          `json:"plan_id"`
	Sessions      []store.Session `json:"sessions"`
	TotalSessions int             `json:"total_sessions"`
}

// Service orchestrates scoring, allocation, revision insertion and
// persistence for one user at a time.
type Service struct {
	repo Repo
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a planning service.
func NewService(repo Repo, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "planner"),
		now:  time.Now,
	}
}

// GeneratePlan runs the full pipeline: load → score → allocate → revise →
// persist. Precondition failures return before anything is written. The
// plan insert and the session batch are two writes; a crash between them
// leaves an orphaned plan, which regeneration makes harmless.
func (s *Service) GeneratePlan(ctx context.Context, userID string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	subjects, err := s.repo.ListSubjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}

	topics, err := s.repo.ListPendingTopics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pending topics: %w", err)
	}
	if len(topics) == 0 {
		return nil, ErrNoPendingTopics
	}

	now := s.now()
	priorities := ScoreTopics(subjects, topics, now, s.log)
	ranked := rankPriorities(topics, priorities)

	sessions := AllocateSessions(cfg, userID, ranked)
	sessions = InsertRevisionSessions(cfg, userID, subjects, topics, sessions)

	plan := &store.Plan{
		ID:                 uuid.NewString(),
		UserID:             userID,
		DailyStudyMinutes:  cfg.DailyStudyMinutes,
		StartDate:          dateOnly(cfg.StartDate),
		EndDate:            dateOnly(cfg.EndDate),
		Blocks:             cfg.Blocks,
		MaxSessionsPerDay:  cfg.MaxSessionsPerDay,
		RevisionBufferDays: cfg.RevisionBufferDays,
		CreatedAt:          now,
	}
	if err := s.repo.InsertPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	for i := range sessions {
		sessions[i].PlanID = plan.ID
	}
	if err := s.repo.BulkInsertSessions(ctx, sessions); err != nil {
		return nil, fmt.Errorf("insert sessions: %w", err)
	}

	s.log.Info("plan generated",
		"user_id", userID,
		"plan_id", plan.ID,
		"sessions", len(sessions),
		"window_days", int(plan.EndDate.Sub(plan.StartDate).Hours()/24)+1,
	)

	return &Result{
		PlanID:        plan.ID,
		Sessions:      sessions,
		TotalSessions: len(sessions),
	}, nil
}

// dateOnly truncates a timestamp to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
