// Package handlers implements the HTTP API surface.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/middleware"
	"github.com/abhisek/planwise/internal/store"
)

// RespondError writes a JSON error envelope.
func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

// RespondOK writes a 200 with the given payload.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondStoreError maps store errors onto HTTP statuses.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, store.ErrEmailTaken):
		RespondError(c, http.StatusConflict, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}

// userID returns the authenticated user ID set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
