// Package server wires the gin router for the JSON API.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/planwise/internal/handlers"
	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/middleware"
)

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Env            string
	AllowedOrigins []string
	Log            *logger.Logger

	AuthMiddleware *middleware.AuthMiddleware

	AuthHandler      *handlers.AuthHandler
	SubjectHandler   *handlers.SubjectHandler
	TopicHandler     *handlers.TopicHandler
	PlannerHandler   *handlers.PlannerHandler
	SessionHandler   *handlers.SessionHandler
	ProgressHandler  *handlers.ProgressHandler
	DashboardHandler *handlers.DashboardHandler
	AdviceHandler    *handlers.AdviceHandler
}

// NewRouter builds the engine with CORS, request logging and all routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", handlers.HealthCheck)

	api := router.Group("/api")

	// Public
	api.POST("/auth/register", cfg.AuthHandler.Register)
	api.POST("/auth/login", cfg.AuthHandler.Login)

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Subjects and topics
	protected.GET("/subjects", cfg.SubjectHandler.List)
	protected.POST("/subjects", cfg.SubjectHandler.Create)
	protected.PUT("/subjects/:id", cfg.SubjectHandler.Update)
	protected.DELETE("/subjects/:id", cfg.SubjectHandler.Delete)
	protected.GET("/subjects/:id/topics", cfg.TopicHandler.ListForSubject)
	protected.POST("/subjects/:id/topics", cfg.TopicHandler.Create)
	protected.PUT("/topics/:id", cfg.TopicHandler.Update)
	protected.POST("/topics/:id/toggle", cfg.TopicHandler.Toggle)
	protected.DELETE("/topics/:id", cfg.TopicHandler.Delete)

	// Planning
	protected.GET("/planner", cfg.PlannerHandler.Overview)
	protected.POST("/planner/generate", cfg.PlannerHandler.Generate)
	protected.GET("/timetable", cfg.PlannerHandler.Timetable)

	// Sessions
	protected.POST("/sessions/:id/complete", cfg.SessionHandler.Complete)
	protected.POST("/sessions/:id/skip", cfg.SessionHandler.Skip)
	protected.POST("/sessions/:id/reschedule", cfg.SessionHandler.Reschedule)
	protected.PUT("/sessions/:id/note", cfg.SessionHandler.Note)
	protected.GET("/backlog", cfg.SessionHandler.Backlog)

	// Insight
	protected.GET("/progress", cfg.ProgressHandler.Get)
	protected.GET("/dashboard", cfg.DashboardHandler.Get)
	protected.GET("/advice", cfg.AdviceHandler.Get)

	return router
}
