package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/planwise/internal/config"
	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/planner"
	"github.com/abhisek/planwise/internal/store"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan for a user from the command line",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().String("email", "", "Email of the user to plan for (required)")
	planCmd.Flags().Int("daily-minutes", 120, "Target daily study minutes (30-720)")
	planCmd.Flags().Int("days", 14, "Plan window length in days, starting today")
	planCmd.Flags().Int("max-sessions", 4, "Maximum sessions per day (1-10)")
	planCmd.Flags().Int("revision-buffer", 2, "Revision days reserved before each exam (0-7)")
	_ = planCmd.MarkFlagRequired("email")
}

func runPlan(cmd *cobra.Command, _ []string) error {
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
	daily, _ := cmd.Flags().GetInt("daily-minutes")
	days, _ := cmd.Flags().GetInt("days")
	maxSessions, _ := cmd.Flags().GetInt("max-sessions")
	buffer, _ := cmd.Flags().GetInt("revision-buffer")

	ctx := cmd.Context()
	user, err := st.UserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("look up user %q: %w", email, err)
	}

	if days < 2 {
		return fmt.Errorf("--days must be at least 2, got %d", days)
	}
	start, end := planWindow(time.Now(), days)
	result, err := planner.NewService(st, log).GeneratePlan(ctx, user.ID, planner.Config{
		DailyStudyMinutes:  daily,
		StartDate:          start,
		EndDate:            end,
		MaxSessionsPerDay:  maxSessions,
		RevisionBufferDays: buffer,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Plan %s generated: %d sessions, %s to %s (%d days)\n",
		result.PlanID, result.TotalSessions,
		start.Format("2006-01-02"), end.Format("2006-01-02"), days)
	for _, s := range result.Sessions {
		fmt.Printf("  %s  %-10s  %3d min  topic %s\n",
			s.Date.Format("2006-01-02"), s.Block, s.PlannedMinutes, s.TopicID)
	}
	return nil
}

// planWindow returns the inclusive [start, end] dates for a plan spanning
// the given number of days, starting on today's date.
func planWindow(today time.Time, days int) (time.Time, time.Time) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return start, start.AddDate(0, 0, days-1)
}
