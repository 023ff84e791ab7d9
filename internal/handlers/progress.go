package handlers

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/progress"
	"github.com/abhisek/planwise/internal/store"
)

// ProgressHandler serves the progress page payload.
type ProgressHandler struct {
	store    *store.Store
	progress *progress.Service
	log      *logger.Logger
}

// NewProgressHandler creates the progress handler.
func NewProgressHandler(st *store.Store, svc *progress.Service, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{store: st, progress: svc, log: log.With("handler", "progress")}
}

// subjectProgress is one subject's completion line.
type subjectProgress struct {
	SubjectID string              `json:"subject_id"`
	Name      string              `json:"name"`
	Color     string              `json:"color"`
	Stats     progress.TopicStats `json:"stats"`
}

// Get returns overall stats, per-subject stats (least complete first so
// weak areas surface), streak and readiness.
func (h *ProgressHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

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

	bySubject := make(map[string][]store.Topic)
	for _, t := range topics {
		bySubject[t.SubjectID] = append(bySubject[t.SubjectID], t)
	}

	perSubject := make([]subjectProgress, 0, len(subjects))
	for _, sub := range subjects {
		perSubject = append(perSubject, subjectProgress{
			SubjectID: sub.ID,
			Name:      sub.Name,
			Color:     sub.Color,
			Stats:     progress.ComputeTopicStats(bySubject[sub.ID]),
		})
	}
	sort.SliceStable(perSubject, func(i, j int) bool {
		return perSubject[i].Stats.CompletionPercentage < perSubject[j].Stats.CompletionPercentage
	})

	readiness, err := h.progress.CalculateReadiness(ctx, uid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"overall":          progress.ComputeOverall(len(subjects), topics),
		"subjects":         perSubject,
		"readiness":        readiness,
		"readiness_status": progress.ReadinessStatus(readiness.ReadinessScore),
	})
}
