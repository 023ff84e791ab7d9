package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/planwise/internal/advice"
	"github.com/abhisek/planwise/internal/auth"
	"github.com/abhisek/planwise/internal/config"
	"github.com/abhisek/planwise/internal/handlers"
	"github.com/abhisek/planwise/internal/llm"
	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/middleware"
	"github.com/abhisek/planwise/internal/planner"
	"github.com/abhisek/planwise/internal/progress"
	"github.com/abhisek/planwise/internal/server"
	"github.com/abhisek/planwise/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	st, err := store.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authService := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	plannerService := planner.NewService(st, log)
	progressService := progress.NewService(st, log)

	var adviceService *advice.Service
	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(ctx, llm.FromAppConfig(cfg.LLM))
		if err != nil {
			return fmt.Errorf("init llm provider: %w", err)
		}
		adviceService = advice.NewService(provider, advice.DefaultConfig())
		log.Info("study coach enabled", "provider", cfg.LLM.Provider, "model", provider.ModelID())
	}

	router := server.NewRouter(server.RouterConfig{
		Env:            cfg.Env,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Log:            log,

		AuthMiddleware: middleware.NewAuthMiddleware(log, authService),

		AuthHandler:      handlers.NewAuthHandler(st, authService, log),
		SubjectHandler:   handlers.NewSubjectHandler(st, log),
		TopicHandler:     handlers.NewTopicHandler(st, log),
		PlannerHandler:   handlers.NewPlannerHandler(st, plannerService, log),
		SessionHandler:   handlers.NewSessionHandler(st, log),
		ProgressHandler:  handlers.NewProgressHandler(st, progressService, log),
		DashboardHandler: handlers.NewDashboardHandler(st, progressService, log),
		AdviceHandler:    handlers.NewAdviceHandler(st, progressService, adviceService, log),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTP.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
