package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

// SessionHandler serves session state transitions and the backlog.
type SessionHandler struct {
	store *store.Store
	log   *logger.Logger
}

// NewSessionHandler creates the session handler.
func NewSessionHandler(st *store.Store, log *logger.Logger) *SessionHandler {
	return &SessionHandler{store: st, log: log.With("handler", "session")}
}

// Complete marks a session done, recording actual minutes and a study log.
func (h *SessionHandler) Complete(c *gin.Context) {
	var req struct {
		ActualMinutes int    `json:"actual_minutes"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.ActualMinutes < 0 {
		RespondError(c, http.StatusBadRequest, errors.New("actual minutes cannot be negative"))
		return
	}

	id := c.Param("id")
	if req.ActualMinutes == 0 {
		// Default to the planned length when the user doesn't say.
		sess, err := h.store.SessionByID(c.Request.Context(), userID(c), id)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		req.ActualMinutes = sess.PlannedMinutes
	}

	if err := h.store.CompleteSession(c.Request.Context(), userID(c), id, req.ActualMinutes, req.Notes); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": store.SessionCompleted})
}

// Skip moves a session to the backlog.
func (h *SessionHandler) Skip(c *gin.Context) {
	if err := h.store.SkipSession(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": store.SessionSkipped})
}

// Reschedule moves a session to a new date and block and resets it to
// pending.
func (h *SessionHandler) Reschedule(c *gin.Context) {
	var req struct {
		Date  string `json:"date"`
		Block string `json:"block"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}
	if req.Block == "" {
		RespondError(c, http.StatusBadRequest, errors.New("block is required"))
		return
	}

	if err := h.store.RescheduleSession(c.Request.Context(), userID(c), c.Param("id"), date, req.Block); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": store.SessionPending})
}

// Note replaces a session's notes.
func (h *SessionHandler) Note(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if err := h.store.SetSessionNotes(c.Request.Context(), userID(c), c.Param("id"), req.Notes); err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

// Backlog returns skipped sessions, oldest first.
func (h *SessionHandler) Backlog(c *gin.Context) {
	sessions, err := h.store.BacklogSessions(c.Request.Context(), userID(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	RespondOK(c, gin.H{"backlog": sessions, "count": len(sessions)})
}
