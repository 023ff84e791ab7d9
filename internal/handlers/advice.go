package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/advice"
	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/progress"
	"github.com/abhisek/planwise/internal/store"
)

// AdviceHandler serves LLM study tips. The advice service is nil when no
// provider is configured.
type AdviceHandler struct {
	store    *store.Store
	progress *progress.Service
	advice   *advice.Service
	log      *logger.Logger
}

// NewAdviceHandler creates the advice handler.
func NewAdviceHandler(st *store.Store, prog *progress.Service, svc *advice.Service, log *logger.Logger) *AdviceHandler {
	return &AdviceHandler{
		store:    st,
		progress: prog,
		advice:   svc,
		log:      log.With("handler", "advice"),
	}
}

// Get assembles the learner snapshot and asks the coach for tips.
func (h *AdviceHandler) Get(c *gin.Context) {
	if h.advice == nil {
		RespondError(c, http.StatusServiceUnavailable, errors.New("study coach is not configured"))
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)
	now := time.Now()

	subjects, err := h.store.ListSubjects(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	topics, err := h.store.ListTopics(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	backlog, err := h.store.BacklogSessions(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	readiness, err := h.progress.CalculateReadiness(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	bySubject := make(map[string][]store.Topic)
	for _, t := range topics {
		bySubject[t.SubjectID] = append(bySubject[t.SubjectID], t)
	}

	in := advice.Input{
		ReadinessScore:     readiness.ReadinessScore,
		SyllabusCompletion: readiness.SyllabusCompletion,
		StudyStreak:        readiness.StudyStreak,
		BacklogCount:       len(backlog),
	}
	for _, sub := range subjects {
		days := -1
		if d := daysLeft(sub.ExamDate, now); d != nil {
			days = *d
		}
		in.Subjects = append(in.Subjects, advice.SubjectSummary{
			Name:       sub.Name,
			DaysToExam: days,
			Difficulty: sub.Difficulty,
			Completion: progress.ComputeTopicStats(bySubject[sub.ID]).CompletionPercentage,
		})
	}

	tips, err := h.advice.Tips(ctx, in)
	if err != nil {
		h.log.Error("study coach failed", "err", err)
		RespondError(c, http.StatusBadGateway, errors.New("study coach is unavailable right now"))
		return
	}
	RespondOK(c, gin.H{"tips": tips})
}
