package planner

import (
	"github.com/google/uuid"

	"github.com/abhisek/planwise/internal/store"
)

// AllocateSessions walks the plan window day by day and block by block,
// greedily assigning the highest-scoring topic with remaining minutes to
// each slot. Two pieces of state carry across the whole run: the
// remaining-minutes ledger and the last-assigned subject, which feeds the
// same-subject penalty.
func AllocateSessions(cfg Config, userID string, ranked []TopicPriority) []store.Session {
	remaining := make(map[string]int, len(ranked))
	totalRemaining := 0
	for _, p := range ranked {
		remaining[p.TopicID] = p.EstimatedMinutes
		totalRemaining += p.EstimatedMinutes
	}

	var sessions []store.Session
	lastSubjectID := ""

	end := dateOnly(cfg.EndDate)
	for day := dateOnly(cfg.StartDate); !day.After(end); day = day.AddDate(0, 0, 1) {
		if totalRemaining == 0 {
			break
		}

		daySessions := 0
		for _, block := range cfg.Blocks {
			if daySessions >= cfg.MaxSessionsPerDay {
				break
			}

			best := pickTopic(ranked, remaining, lastSubjectID)
			if best == nil {
				continue
			}

			minutes := remaining[best.TopicID]
			if minutes > DefaultSessionMinutes {
				minutes = DefaultSessionMinutes
			}

			sessions = append(sessions, store.Session{
				ID:             uuid.NewString(),
				UserID:         userID,
				SubjectID:      best.SubjectID,
				TopicID:        best.TopicID,
				Date:           day,
				Block:          block,
				PlannedMinutes: minutes,
				Status:         store.SessionPending,
			})
			daySessions++

			remaining[best.TopicID] -= minutes
			totalRemaining -= minutes
			lastSubjectID = best.SubjectID
		}
	}

	return sessions
}

// pickTopic scans the ranked candidates and returns the one with the
// greatest effective score, or nil when nothing has minutes left. The scan
// keeps the ranked order, so among equal effective scores the earlier
// candidate wins — ties are deterministic, never random.
func pickTopic(ranked []TopicPriority, remaining map[string]int, lastSubjectID string) *TopicPriority {
	var best *TopicPriority
	bestScore := -1.0

	for i := range ranked {
		p := &ranked[i]
		if remaining[p.TopicID] <= 0 {
			continue
		}

		score := p.Score
		if lastSubjectID != "" && p.SubjectID == lastSubjectID {
			score *= SameSubjectPenalty
		}

		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	return best
}

// blockIndex returns a block's position in the plan's block order, or
// len(blocks) for unknown labels so they sort last.
func blockIndex(blocks []string, block string) int {
	for i, b := range blocks {
		if b == block {
			return i
		}
	}
	return len(blocks)
}
