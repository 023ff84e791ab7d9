package store

import (
	"time"

	"gorm.io/datatypes"
)

// Session status values.
const (
	SessionPending   = "pending"
	SessionCompleted = "completed"
	SessionSkipped   = "skipped"
)

// Topic status values.
const (
	TopicPending   = "pending"
	TopicCompleted = "completed"
)

// RevisionNote marks system-generated revision sessions.
const RevisionNote = "Revision session"

// User is an account that owns subjects, topics, plans, and sessions.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subject is an exam subject. ExamDate is nil when no exam is scheduled;
// such subjects get no urgency pressure during planning.
type Subject struct {
	ID         string     `gorm:"primaryKey" json:"id"`
	UserID     string     `gorm:"index;not null" json:"user_id"`
	Name       string     `gorm:"not null" json:"name"`
	ExamDate   *time.Time `json:"exam_date"`
	Difficulty int        `json:"difficulty"` // 1..5, validated at the API boundary
	Color      string     `json:"color"`      // display hex color
	CreatedAt  time.Time  `json:"created_at"`
}

// Topic is a unit of syllabus work under a subject. SubjectID is a weak
// reference resolved in memory by the planner, not a gorm association.
type Topic struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"index;not null" json:"user_id"`
	SubjectID        string    `gorm:"index;not null" json:"subject_id"`
	Title            string    `gorm:"not null" json:"title"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	Status           string    `gorm:"default:pending" json:"status"`
	PriorityOverride float64   `gorm:"default:1" json:"priority_override"`
	CreatedAt        time.Time `json:"created_at"`
}

// Plan is an immutable record of one plan generation. Regeneration creates
// a new Plan plus a new batch of sessions; it never edits a prior plan.
type Plan struct {
	ID                 string                      `gorm:"primaryKey" json:"id"`
	UserID             string                      `gorm:"index;not null" json:"user_id"`
	DailyStudyMinutes  int                         `json:"daily_study_minutes"`
	StartDate          time.Time                   `json:"start_date"`
	EndDate            time.Time                   `json:"end_date"`
	Blocks             datatypes.JSONSlice[string] `json:"blocks"`
	MaxSessionsPerDay  int                         `json:"max_sessions_per_day"`
	RevisionBufferDays int                         `json:"revision_buffer_days"`
	CreatedAt          time.Time                   `json:"created_at"`
}

// Session is a single scheduled study slot.
type Session struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	UserID         string     `gorm:"index;not null" json:"user_id"`
	PlanID         string     `gorm:"index" json:"plan_id"`
	SubjectID      string     `gorm:"index;not null" json:"subject_id"`
	TopicID        string     `gorm:"index;not null" json:"topic_id"`
	Date           time.Time  `gorm:"index" json:"date"`
	Block          string     `json:"block"`
	PlannedMinutes int        `json:"planned_minutes"`
	ActualMinutes  *int       `json:"actual_minutes"`
	Status         string     `gorm:"index;default:pending" json:"status"`
	Notes          *string    `json:"notes"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// StudyLog is an append-only record written when a session is completed.
type StudyLog struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"index;not null" json:"user_id"`
	SessionID     string    `gorm:"index;not null" json:"session_id"`
	SubjectID     string    `json:"subject_id"`
	TopicID       string    `json:"topic_id"`
	ActualMinutes int       `json:"actual_minutes"`
	Notes         string    `json:"notes"`
	LoggedAt      time.Time `json:"logged_at"`
}
