package cmd

import (
	"testing"
	"time"
)

func TestPlanWindowSpansRequestedDays(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 42, 0, 0, time.UTC)

	for _, days := range []int{2, 7, 14} {
		start, end := planWindow(today, days)

		if !start.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("days=%d: start = %v, want today at midnight", days, start)
		}
		// The engine treats both endpoints as plannable days, so a
		// 14-day window ends 13 days after it starts.
		got := int(end.Sub(start).Hours()/24) + 1
		if got != days {
			t.Errorf("days=%d: window spans %d days", days, got)
		}
	}
}
