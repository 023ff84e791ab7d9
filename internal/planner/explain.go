package planner

// ExplainPlan returns the static "why this plan?" rationale shown next to
// a generated schedule.
func ExplainPlan() []string {
	return []string{
		"Urgent exams first — subjects with sooner dates get more immediate slots",
		"Difficulty balance — harder subjects receive proportionally more time",
		"Syllabus coverage — ensures all topics are covered before exam dates",
		"Variety — avoids studying the same subject in consecutive blocks",
		"Revision time — reserves buffer days before exams for review",
		"Your pace — respects your daily study time and session preferences",
	}
}
