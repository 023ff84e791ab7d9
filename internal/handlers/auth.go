package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/auth"
	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	store *store.Store
	auth  *auth.Service
	log   *logger.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(st *store.Store, authService *auth.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		store: st,
		auth:  authService,
		log:   log.With("handler", "auth"),
	}
}

// Register creates an account and returns an access token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("email and a password of at least 8 characters are required"))
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Email, req.Name, hash)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	h.log.Info("user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{
		"access_token": token,
		"expires_in":   int(h.auth.AccessTTL().Seconds()),
		"user":         gin.H{"id": user.ID, "email": user.Email, "name": user.Name},
	})
}

// Login verifies credentials and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("email and password are required"))
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same response as a wrong password so lookups don't leak accounts.
		RespondError(c, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}
	if err := h.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		RespondError(c, http.StatusUnauthorized, auth.ErrInvalidCredentials)
		return
	}

	token, err := h.auth.IssueToken(user.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	RespondOK(c, gin.H{
		"access_token": token,
		"expires_in":   int(h.auth.AccessTTL().Seconds()),
		"user":         gin.H{"id": user.ID, "email": user.Email, "name": user.Name},
	})
}
