package advice

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study coach advising a student preparing for upcoming exams.

Rules:
- Give between 3 and 5 tips, ordered most important first.
- Ground every tip in the numbers you are given. Never invent subjects, dates, or scores.
- Prioritize subjects with near exams and low completion. Mention the subject by name in those tips.
- If the study streak is 0, one tip must address getting back into a daily rhythm.
- If there are overdue sessions, one tip must address clearing the backlog.
- Keep each tip short and actionable. No motivational filler.`

// buildUserMessage renders the learner's current standing for the prompt.
func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Overall readiness: %.1f/100\n", in.ReadinessScore)
	fmt.Fprintf(&b, "Syllabus completion: %.1f%%\n", in.SyllabusCompletion)
	fmt.Fprintf(&b, "Study streak: %d days\n", in.StudyStreak)
	fmt.Fprintf(&b, "Overdue sessions: %d\n", in.BacklogCount)

	b.WriteString("\nSubjects:\n")
	if len(in.Subjects) == 0 {
		b.WriteString("None")
		return b.String()
	}
	for _, s := range in.Subjects {
		exam := "no exam date"
		if s.DaysToExam >= 0 {
			exam = fmt.Sprintf("exam in %d days", s.DaysToExam)
		}
		fmt.Fprintf(&b, "- %s: %s, difficulty %d/5, %.0f%% complete\n",
			s.Name, exam, s.Difficulty, s.Completion)
	}

	return strings.TrimRight(b.String(), "\n")
}
