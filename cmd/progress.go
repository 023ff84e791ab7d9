package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/planwise/internal/config"
	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/progress"
	"github.com/abhisek/planwise/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print a user's readiness and streak",
	RunE:  runProgress,
}

func init() {
	progressCmd.Flags().String("email", "", "Email of the user (required)")
	_ = progressCmd.MarkFlagRequired("email")
}

func runProgress(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := store.Open(cfg.DB, log)
	if err != nil {
		return err
	}
	defer st.Close()

	email, _ := cmd.Flags().GetString("email")
	ctx := cmd.Context()

	user, err := st.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("look up user %q: %w", email, err)
	}

	r, err := progress.NewService(st, log).CalculateReadiness(ctx, user.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Readiness:     %.1f/100 (%s)\n", r.ReadinessScore, progress.ReadinessStatus(r.ReadinessScore))
	fmt.Printf("Completion:    %.1f%%\n", r.SyllabusCompletion)
	fmt.Printf("Consistency:   %.1f/100\n", r.ConsistencyScore)
	fmt.Printf("Study streak:  %d days\n", r.StudyStreak)
	return nil
}
