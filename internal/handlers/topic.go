package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

// TopicHandler serves topic CRUD and status toggling.
type TopicHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewTopicHandler creates the topic handler.
func NewTopicHandler(st *store.Store, log *logger.Logger) *TopicHandler {
	return &TopicHandler{store: st, log: log.With("handler", "topic")}
}

type topicRequest struct {
	Title            string  `json:"title"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	PriorityOverride float64 `json:"priority_override"`
}

func (r topicRequest) validate() error {
	if r.Title == "" {
		return errors.New("topic title is required")
	}
	if r.EstimatedMinutes < 0 {
		return errors.New("estimated minutes cannot be negative")
	}
	if r.PriorityOverride < 0 {
		return errors.New("priority override cannot be negative")
	}
	return nil
}

// ListForSubject returns all topics under a subject.
func (h *TopicHandler) ListForSubject(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	subjectID := c.Param("id")

	// 404 for a subject the user doesn't own.
	if _, err := h.store.SubjectByID(ctx, uid, subjectID); err != nil {
		respondStoreError(c, err)
		return
	}

	topics, err := h.store.TopicsForSubject(ctx, uid, subjectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"topics": topics})
}

// Create adds a topic under a subject.
func (h *TopicHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	subjectID := c.Param("id")

	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := h.store.SubjectByID(ctx, uid, subjectID); err != nil {
		respondStoreError(c, err)
		return
	}

	t := &store.Topic{
		UserID:           uid,
		SubjectID:        subjectID,
		Title:            req.Title,
		EstimatedMinutes: req.EstimatedMinutes,
		PriorityOverride: req.PriorityOverride,
	}
	if err := h.store.CreateTopic(ctx, t); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Update edits a topic's title, estimate and priority override.
func (h *TopicHandler) Update(c *gin.Context) {
	var req topicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}

	t := &store.Topic{
		ID:               c.Param("id"),
		UserID:           userID(c),
		Title:            req.Title,
		EstimatedMinutes: req.EstimatedMinutes,
		PriorityOverride: req.PriorityOverride,
	}
	if err := h.store.UpdateTopic(c.Request.Context(), t); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

// Toggle flips a topic between pending and completed.
func (h *TopicHandler) Toggle(c *gin.Context) {
	status, err := h.store.ToggleTopicStatus(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": status})
}

// Delete removes a topic and its sessions.
func (h *TopicHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteTopic(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
