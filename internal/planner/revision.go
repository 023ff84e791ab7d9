package planner

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/planwise/internal/store"
)

// InsertRevisionSessions appends short revision sessions into free blocks
// on the days leading up to each subject's exam, then returns the merged
// batch sorted by date and block order.
//
// For each subject with an exam date and at least one pending topic, each
// of the RevisionBufferDays days ending the day before the exam gets one
// revision attempt per topic: the first block not yet occupied on that
// date. A (topic, day) pair with no free block is dropped silently — there
// is no retry on an adjacent day.
func InsertRevisionSessions(cfg Config, userID string, subjects []store.Subject, topics []store.Topic, sessions []store.Session) []store.Session {
	if cfg.RevisionBufferDays == 0 {
		return sessions
	}

	start := dateOnly(cfg.StartDate)
	end := dateOnly(cfg.EndDate)

	topicsBySubject := make(map[string][]store.Topic)
	for _, t := range topics {
		topicsBySubject[t.SubjectID] = append(topicsBySubject[t.SubjectID], t)
	}

	for _, sub := range subjects {
		if sub.ExamDate == nil {
			continue
		}
		subjectTopics := topicsBySubject[sub.ID]
		if len(subjectTopics) == 0 {
			continue
		}

		examDay := dateOnly(*sub.ExamDate)
		for i := 0; i < cfg.RevisionBufferDays; i++ {
			revisionDay := examDay.AddDate(0, 0, -(cfg.RevisionBufferDays - i))
			if revisionDay.Before(start) || revisionDay.After(end) {
				continue
			}

			for _, t := range subjectTopics {
				// Occupancy includes revision sessions appended earlier in
				// this pass, so each insert consumes a block.
				block, ok := firstFreeBlock(cfg.Blocks, sessions, revisionDay)
				if !ok {
					continue
				}

				note := store.RevisionNote
				sessions = append(sessions, store.Session{
					ID:             uuid.NewString(),
					UserID:         userID,
					SubjectID:      sub.ID,
					TopicID:        t.ID,
					Date:           revisionDay,
					Block:          block,
					PlannedMinutes: RevisionMinutes,
					Status:         store.SessionPending,
					Notes:          &note,
				})
			}
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return blockIndex(cfg.Blocks, sessions[i].Block) < blockIndex(cfg.Blocks, sessions[j].Block)
	})

	return sessions
}

// firstFreeBlock returns the first block in plan order with no session on
// the given day.
func firstFreeBlock(blocks []string, sessions []store.Session, day time.Time) (string, bool) {
	occupied := make(map[string]bool)
	for _, s := range sessions {
		if s.Date.Equal(day) {
			occupied[s.Block] = true
		}
	}
	for _, b := range blocks {
		if !occupied[b] {
			return b, true
		}
	}
	return "", false
}
