package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/progress"
	"github.com/abhisek/planwise/internal/store"
)

// DashboardHandler serves the home-page aggregate.
type DashboardHandler struct {
	store    *store.Store
	progress *progress.Service
	log      *logger.Logger
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(st *store.Store, svc *progress.Service, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{store: st, progress: svc, log: log.With("handler", "dashboard")}
}

// upcomingExam is one entry in the exam countdown list.
type upcomingExam struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ExamDate  string `json:"exam_date"`
	DaysLeft  int    `json:"days_left"`
}

// weekDay is one cell of the 7-day activity strip.
type weekDay struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Sessions int    `json:"sessions"`
	Done     int    `json:"done"`
}

// Get assembles today's sessions by block, the backlog count, the next
// exams, streak, overall progress and a 7-day strip.
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	now := time.Now()

	today, err := h.store.SessionsOnDate(ctx, uid, now)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	byBlock := make(map[string][]store.Session)
	for _, s := range today {
		byBlock[s.Block] = append(byBlock[s.Block], s)
	}

	backlog, err := h.store.BacklogSessions(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	exams, err := h.store.UpcomingExams(ctx, uid, 3)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	upcoming := make([]upcomingExam, 0, len(exams))
	for _, sub := range exams {
		d := daysLeft(sub.ExamDate, now)
		if d == nil {
			continue
		}
		upcoming = append(upcoming, upcomingExam{
			SubjectID: sub.ID,
			Name:      sub.Name,
			Color:     sub.Color,
			ExamDate:  sub.ExamDate.Format(dateLayout),
			DaysLeft:  *d,
		})
	}

	streak, err := h.progress.StudyStreak(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	overall, err := h.progress.OverallProgress(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	// This week's strip, Monday through Sunday.
	start := startOfWeek(now)
	week := make([]weekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		sessions, err := h.store.SessionsOnDate(ctx, uid, day)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		done := 0
		for _, s := range sessions {
			if s.Status == store.SessionCompleted {
				done++
			}
		}
		week = append(week, weekDay{
			Date:     day.Format(dateLayout),
			Weekday:  day.Weekday().String()[:3],
			Sessions: len(sessions),
			Done:     done,
		})
	}

	RespondOK(c, gin.H{
		"today_by_block": byBlock,
		"today_total":    len(today),
		"backlog_count":  len(backlog),
		"upcoming_exams": upcoming,
		"study_streak":   streak,
		"overall":        overall,
		"week":           week,
	})
}
