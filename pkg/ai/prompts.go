package ai

import "fmt"

// CoachPrompt returns a prompt answering a freeform question against the
// user's current goal documents.
func CoachPrompt(question, goalContext string) string {
	return fmt.Sprintf(`
You are a personal goal coach. The user organizes goals in a five-level
hierarchy (vision, yearly, quarterly, monthly, weekly) stored as markdown.

Current goal documents:
%s

Question: "%s"

Answer concisely in the user's language. Refer to concrete goals and tasks
from the documents where relevant. If a level has no document yet, say so and
suggest what to put there.
`, goalContext, question)
}

// ReflectionSummaryPrompt returns a prompt summarizing a finished period from
// its reflection answers and goal completion stats.
func ReflectionSummaryPrompt(label string, completed, total int, sections string) string {
	return fmt.Sprintf(`
You are a personal goal coach. The user just closed the period %q with
%d of %d tasks completed.

Reflection answers:
%s

Write a short, encouraging summary: name one clear win, one pattern to watch,
and one suggestion for the next period. Output plain markdown, no headers.
`, label, completed, total, sections)
}

// WeeklyNudgePrompt returns a prompt for the reminder sent when a new period
// starts without a goal document.
func WeeklyNudgePrompt(label, parentGoals string) string {
	return fmt.Sprintf(`
A new period has started: %s. The user has not written goals for it yet.

Goals of the surrounding periods:
%s

Write a two-sentence nudge proposing 2-3 candidate tasks for the new period,
derived from the surrounding goals. Plain text, no markdown.
`, label, parentGoals)
}
