package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/planner"
	"github.com/abhisek/planwise/internal/store"
)

// PlannerHandler serves plan generation, the planner overview and the
// weekly timetable.
type PlannerHandler struct {
	store   *store.Store
	planner *planner.Service
	log     *logger.Logger
}

// NewPlannerHandler creates the planner handler.
func NewPlannerHandler(st *store.Store, svc *planner.Service, log *logger.Logger) *PlannerHandler {
	return &PlannerHandler{store: st, planner: svc, log: log.With("handler", "planner")}
}

// Overview returns the latest plan with its sessions, suggested defaults
// for the next generation, and the static plan rationale.
func (h *PlannerHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	plan, err := h.store.LatestPlan(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var sessions []store.Session
	if plan != nil {
		sessions, err = h.store.SessionsForPlan(ctx, uid, plan.ID)
		if err != nil {
			respondStoreError(c, err)
			return
		}
	}

	subjects, err := h.store.ListSubjects(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	now := time.Now()
	RespondOK(c, gin.H{
		"plan":               plan,
		"sessions":           sessions,
		"default_start_date": dateOnly(now).Format(dateLayout),
		"default_end_date":   defaultEndDate(subjects, now).Format(dateLayout),
		"explanations":       planner.ExplainPlan(),
	})
}

type generateRequest struct {
	DailyStudyMinutes  int      `json:"daily_study_minutes"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Blocks             []string `json:"blocks"`
	MaxSessionsPerDay  int      `json:"max_sessions_per_day"`
	RevisionBufferDays int      `json:"revision_buffer_days"`
}

// Generate creates a new plan, replacing the previous one as the latest.
func (h *PlannerHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	now := time.Now()
	cfg := planner.Config{
		DailyStudyMinutes:  req.DailyStudyMinutes,
		StartDate:          dateOnly(now),
		Blocks:             req.Blocks,
		MaxSessionsPerDay:  req.MaxSessionsPerDay,
		RevisionBufferDays: req.RevisionBufferDays,
	}
	if req.StartDate != "" {
		d, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, errors.New("start_date must be YYYY-MM-DD"))
			return
		}
		cfg.StartDate = d
	}
	if req.EndDate != "" {
		d, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, errors.New("end_date must be YYYY-MM-DD"))
			return
		}
		cfg.EndDate = d
	} else {
		subjects, err := h.store.ListSubjects(ctx, uid)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		cfg.EndDate = defaultEndDate(subjects, now)
	}

	if err := cfg.Validate(); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := h.planner.GeneratePlan(ctx, uid, cfg)
	if err != nil {
		if errors.Is(err, planner.ErrNoSubjects) || errors.Is(err, planner.ErrNoPendingTopics) {
			RespondError(c, http.StatusBadRequest, err)
			return
		}
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// timetableDay is one column of the weekly grid.
type timetableDay struct {
	Date     string                     `json:"date"`
	Weekday  string                     `json:"weekday"`
	ByBlock  map[string][]store.Session `json:"by_block"`
	Sessions int                        `json:"sessions"`
}

// Timetable returns a 7-day grid of sessions grouped by block. The week
// query parameter offsets from the current week (0 = this week).
func (h *PlannerHandler) Timetable(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	week := 0
	if w := c.Query("week"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			RespondError(c, http.StatusBadRequest, errors.New("week must be an integer"))
			return
		}
		week = n
	}

	plan, err := h.store.LatestPlan(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	blocks := planner.DefaultBlocks
	if plan != nil && len(plan.Blocks) > 0 {
		blocks = plan.Blocks
	}

	start := startOfWeek(time.Now()).AddDate(0, 0, 7*week)
	days := make([]timetableDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		sessions, err := h.store.SessionsOnDate(ctx, uid, day)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		byBlock := make(map[string][]store.Session, len(blocks))
		for _, b := range blocks {
			byBlock[b] = []store.Session{}
		}
		for _, s := range sessions {
			byBlock[s.Block] = append(byBlock[s.Block], s)
		}
		days = append(days, timetableDay{
			Date:     day.Format(dateLayout),
			Weekday:  day.Weekday().String(),
			ByBlock:  byBlock,
			Sessions: len(sessions),
		})
	}

	RespondOK(c, gin.H{
		"week":   week,
		"start":  start.Format(dateLayout),
		"blocks": blocks,
		"days":   days,
	})
}

// defaultEndDate suggests a plan horizon: the latest exam date on record,
// or 30 days out when no subject has one.
func defaultEndDate(subjects []store.Subject, now time.Time) time.Time {
	var latest time.Time
	for _, s := range subjects {
		if s.ExamDate != nil && dateOnly(*s.ExamDate).After(latest) {
			latest = dateOnly(*s.ExamDate)
		}
	}
	if latest.IsZero() || !latest.After(dateOnly(now)) {
		return dateOnly(now).AddDate(0, 0, 30)
	}
	return latest
}

// startOfWeek returns the Monday of t's week at midnight.
func startOfWeek(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}
