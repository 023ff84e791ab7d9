package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

// Readiness blend weights: completion carries more signal than
// consistency, but a dormant learner is not exam ready.
const (
	completionWeight  = 0.6
	consistencyWeight = 0.4
)

// Readiness is the single health indicator for exam preparedness.
type Readiness struct {
	ReadinessScore     float64 `json:"readiness_score"`
	SyllabusCompletion float64 `json:"syllabus_completion"`
	ConsistencyScore   float64 `json:"consistency_score"`
	StudyStreak        int     `json:"study_streak"`
}

// Repo is the slice of the store the evaluator reads.
type Repo interface {
	ListSubjects(ctx context.Context, userID string) ([]store.Subject, error)
	ListTopics(ctx context.Context, userID string) ([]store.Topic, error)
	CompletedSessionDates(ctx context.Context, userID string) ([]time.Time, error)
	LatestPlan(ctx context.Context, userID string) (*store.Plan, error)
}

// Service computes derived metrics from persisted history. Pure reads;
// it never mutates anything.
type Service struct {
	repo Repo
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a progress service.
func NewService(repo Repo, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "progress"),
		now:  time.Now,
	}
}

// StudyStreak returns the user's current consecutive-day streak.
func (s *Service) StudyStreak(ctx context.Context, userID string) (int, error) {
	stamps, err := s.repo.CompletedSessionDates(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("completed session dates: %w", err)
	}
	return Streak(stamps, s.now()), nil
}

// OverallProgress aggregates completion across all subjects.
func (s *Service) OverallProgress(ctx context.Context, userID string) (Overall, error) {
	subjects, err := s.repo.ListSubjects(ctx, userID)
	if err != nil {
		return Overall{}, fmt.Errorf("list subjects: %w", err)
	}
	topics, err := s.repo.ListTopics(ctx, userID)
	if err != nil {
		return Overall{}, fmt.Errorf("list topics: %w", err)
	}
	return ComputeOverall(len(subjects), topics), nil
}

// CalculateReadiness blends syllabus completion with study consistency:
// readiness = 0.6 × completion% + 0.4 × min(100, streak/planDays × 100).
// With no plan on record the consistency component is 0. Components are
// rounded to one decimal only at output.
func (s *Service) CalculateReadiness(ctx context.Context, userID string) (Readiness, error) {
	topics, err := s.repo.ListTopics(ctx, userID)
	if err != nil {
		return Readiness{}, fmt.Errorf("list topics: %w", err)
	}

	var totalMinutes, completedMinutes int
	for _, t := range topics {
		totalMinutes += t.EstimatedMinutes
		if t.Status == store.TopicCompleted {
			completedMinutes += t.EstimatedMinutes
		}
	}
	completion := 0.0
	if totalMinutes > 0 {
		completion = float64(completedMinutes) / float64(totalMinutes) * 100
	}

	streak, err := s.StudyStreak(ctx, userID)
	if err != nil {
		return Readiness{}, err
	}

	consistency := 0.0
	plan, err := s.repo.LatestPlan(ctx, userID)
	if err != nil {
		return Readiness{}, fmt.Errorf("latest plan: %w", err)
	}
	if plan != nil {
		planDays := int(plan.EndDate.Sub(plan.StartDate).Hours()/24) + 1
		if planDays > 0 {
			consistency = math.Min(100, float64(streak)/float64(planDays)*100)
		}
	}

	return Readiness{
		ReadinessScore:     round1(completionWeight*completion + consistencyWeight*consistency),
		SyllabusCompletion: round1(completion),
		ConsistencyScore:   round1(consistency),
		StudyStreak:        streak,
	}, nil
}

// ReadinessStatus bands a score into the label shown on the progress
// page.
func ReadinessStatus(score float64) string {
	switch {
	case score >= 80:
		return "Exam Ready"
	case score >= 60:
		return "Making Progress"
	case score >= 40:
		return "Needs Work"
	default:
		return "Not Ready"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
