// Package progress derives readiness metrics from persisted study
// history: the consecutive-day streak, per-subject completion statistics,
// and the blended readiness score.
package progress

import (
	"sort"
	"time"
)

// Streak counts consecutive calendar days with at least one completed
// session, ending today or yesterday. Older history cannot salvage a
// broken streak: if the most recent completed day is before yesterday the
// streak is 0.
func Streak(completedAt []time.Time, today time.Time) int {
	if len(completedAt) == 0 {
		return 0
	}

	daySet := make(map[time.Time]bool, len(completedAt))
	for _, ts := range completedAt {
		daySet[dateOnly(ts)] = true
	}

	days := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	todayDay := dateOnly(today)
	yesterday := todayDay.AddDate(0, 0, -1)
	if !days[0].Equal(todayDay) && !days[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	current := days[0]
	for _, d := range days[1:] {
		if d.Equal(current.AddDate(0, 0, -1)) {
			streak++
			current = d
			continue
		}
		break
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
