package progress

import (
	"github.com/abhisek/planwise/internal/store"
)

// TopicStats summarizes completion for one subject's topics.
type TopicStats struct {
	TotalTopics          int     `json:"total_topics"`
	CompletedTopics      int     `json:"completed_topics"`
	TotalMinutes         int     `json:"total_minutes"`
	CompletedMinutes     int     `json:"completed_minutes"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// Overall aggregates TopicStats across every subject.
type Overall struct {
	TotalSubjects        int     `json:"total_subjects"`
	TotalTopics          int     `json:"total_topics"`
	CompletedTopics      int     `json:"completed_topics"`
	TotalMinutes         int     `json:"total_minutes"`
	CompletedMinutes     int     `json:"completed_minutes"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ComputeTopicStats reduces a subject's topics to completion counts.
// Percentages are weighted by minutes, not topic count.
func ComputeTopicStats(topics []store.Topic) TopicStats {
	var st TopicStats
	st.TotalTopics = len(topics)
	for _, t := range topics {
		st.TotalMinutes += t.EstimatedMinutes
		if t.Status == store.TopicCompleted {
			st.CompletedTopics++
			st.CompletedMinutes += t.EstimatedMinutes
		}
	}
	if st.TotalMinutes > 0 {
		st.CompletionPercentage = round1(float64(st.CompletedMinutes) / float64(st.TotalMinutes) * 100)
	}
	return st
}

// ComputeOverall aggregates across all of a user's topics grouped by
// subject count.
func ComputeOverall(subjectCount int, topics []store.Topic) Overall {
	st := ComputeTopicStats(topics)
	return Overall{
		TotalSubjects:        subjectCount,
		TotalTopics:          st.TotalTopics,
		CompletedTopics:      st.CompletedTopics,
		TotalMinutes:         st.TotalMinutes,
		CompletedMinutes:     st.CompletedMinutes,
		CompletionPercentage: st.CompletionPercentage,
	}
}
