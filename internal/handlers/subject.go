package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/progress"
	"github.com/abhisek/planwise/internal/store"
)

const dateLayout = "2006-01-02"

// SubjectHandler serves subject CRUD plus per-subject stats.
type SubjectHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewSubjectHandler creates the subject handler.
func NewSubjectHandler(st *store.Store, log *logger.Logger) *SubjectHandler {
	return &SubjectHandler{store: st, log: log.With("handler", "subject")}
}

type subjectRequest struct {
	Name       string `json:"name"`
	ExamDate   string `json:"exam_date"` // "2006-01-02", empty for none
	Difficulty int    `json:"difficulty"`
	Color      string `json:"color"`
}

func (r subjectRequest) validate() (*time.Time, error) {
	if r.Name == "" {
		return nil, errors.New("subject name is required")
	}
	if r.Difficulty < 1 || r.Difficulty > 5 {
		return nil, errors.New("difficulty must be between 1 and 5")
	}
	if r.ExamDate == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, r.ExamDate)
	if err != nil {
		return nil, errors.New("exam_date must be YYYY-MM-DD")
	}
	return &d, nil
}

// subjectView is a subject joined with its topic stats and days to exam.
type subjectView struct {
	store.Subject
	Stats    progress.TopicStats `json:"stats"`
	DaysLeft *int                `json:"days_left"`
}

// List returns the user's subjects with stats, soonest exam first.
func (h *SubjectHandler) List(c *gin.Context) {
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

	now := time.Now()
	views := make([]subjectView, 0, len(subjects))
	for _, sub := range subjects {
		views = append(views, subjectView{
			Subject:  sub,
			Stats:    progress.ComputeTopicStats(bySubject[sub.ID]),
			DaysLeft: daysLeft(sub.ExamDate, now),
		})
	}
	RespondOK(c, gin.H{"subjects": views})
}

// Create adds a subject.
func (h *SubjectHandler) Create(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	examDate, err := req.validate()
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}

	sub := &store.Subject{
		UserID:     userID(c),
		Name:       req.Name,
		ExamDate:   examDate,
		Difficulty: req.Difficulty,
		Color:      req.Color,
	}
	if err := h.store.CreateSubject(c.Request.Context(), sub); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// Update edits a subject.
func (h *SubjectHandler) Update(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	examDate, err := req.validate()
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}

	sub := &store.Subject{
		ID:         c.Param("id"),
		UserID:     userID(c),
		Name:       req.Name,
		ExamDate:   examDate,
		Difficulty: req.Difficulty,
		Color:      req.Color,
	}
	if err := h.store.UpdateSubject(c.Request.Context(), sub); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

// Delete removes a subject and everything under it.
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteSubject(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// daysLeft computes whole calendar days until an exam, nil when no exam is
// set, negative once the date has passed.
func daysLeft(examDate *time.Time, now time.Time) *int {
	if examDate == nil {
		return nil
	}
	d := int(dateOnly(*examDate).Sub(dateOnly(now)).Hours() / 24)
	return &d
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
