package planner

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/planwise/internal/logger"
	"github.com/abhisek/planwise/internal/store"
)

// TopicPriority is a scored planning candidate.
type TopicPriority struct {
	TopicID          string  `json:"topic_id"`
	SubjectID        string  `json:"subject_id"`
	Score            float64 `json:"score"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	SubjectName      string  `json:"subject_name"`
	TopicTitle       string  `json:"topic_title"`
}

// ScoreTopics computes a priority score for every pending topic:
// the topic's share of the total backlog, scaled by exam urgency
// (daysUntilExam^-0.3), a difficulty tier, and the user's override.
//
// Topics referencing a missing subject are dropped and logged; they are
// never fatal. Returns an empty map when there is no remaining work.
func ScoreTopics(subjects []store.Subject, topics []store.Topic, now time.Time, log *logger.Logger) map[string]TopicPriority {
	priorities := make(map[string]TopicPriority)

	totalRemaining := 0
	for _, t := range topics {
		totalRemaining += estimatedMinutes(t)
	}
	if totalRemaining == 0 {
		return priorities
	}

	subjectsByID := make(map[string]store.Subject, len(subjects))
	for _, sub := range subjects {
		subjectsByID[sub.ID] = sub
	}

	for _, t := range topics {
		sub, ok := subjectsByID[t.SubjectID]
		if !ok {
			log.Warn("topic references missing subject, skipping",
				"topic_id", t.ID, "subject_id", t.SubjectID)
			continue
		}

		minutes := estimatedMinutes(t)
		base := float64(minutes) / float64(totalRemaining)

		urgency := 1.0
		if sub.ExamDate != nil {
			days := int(sub.ExamDate.Sub(now).Hours() / 24)
			if days < 1 {
				days = 1
			}
			urgency = math.Pow(float64(days), -urgencyExponent)
		}

		difficulty := 1.0
		switch {
		case sub.Difficulty >= 4:
			difficulty = hardDifficultyMultiplier
		case sub.Difficulty <= 2 && sub.Difficulty >= 1:
			difficulty = easyDifficultyMultiplier
		}

		override := t.PriorityOverride
		if override == 0 {
			override = 1.0
		}

		priorities[t.ID] = TopicPriority{
			TopicID:          t.ID,
			SubjectID:        sub.ID,
			Score:            base * urgency * difficulty * override,
			EstimatedMinutes: minutes,
			SubjectName:      sub.Name,
			TopicTitle:       t.Title,
		}
	}

	return priorities
}

// estimatedMinutes defaults unset estimates to one standard session.
func estimatedMinutes(t store.Topic) int {
	if t.EstimatedMinutes <= 0 {
		return DefaultSessionMinutes
	}
	return t.EstimatedMinutes
}

// rankPriorities orders scored topics by descending score. The sort is
// stable over the topics' creation order, so equal scores resolve
// first-encountered-wins and reruns are deterministic.
func rankPriorities(topics []store.Topic, priorities map[string]TopicPriority) []TopicPriority {
	ranked := make([]TopicPriority, 0, len(priorities))
	for _, t := range topics {
		if p, ok := priorities[t.ID]; ok {
			ranked = append(ranked, p)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
