package reflection

import (
	"fmt"
	"strings"

	"github.com/jkrogh/fokus/pkg/period"
)

// Section is one question→answer pair of a stored reflection body.
type Section struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// BuildContent renders the fixed markdown form of a reflection from stored
// answers. Answers are looked up by question text, by the text with its
// trailing question mark stripped, and finally by the stable question id, so
// both legacy and id-keyed writers resolve.
//
// The yearly form emits three top-level blocks separated by horizontal rules,
// with the reflection block titled after the year being reviewed.
func BuildContent(t period.Type, sections map[string]string, year, quarter int) string {
	var b strings.Builder

	switch t {
	case period.Weekly, period.Monthly:
		writeSections(&b, periodicQuestions, sections)
	case period.Quarterly:
		fmt.Fprintf(&b, "# Q%d %d Refleksion\n\n", quarter, year)
		writeSections(&b, quarterlyQuestions, sections)
	case period.Yearly:
		fmt.Fprintf(&b, "# %d Refleksioner\n\n", year-1)
		writeSections(&b, yearlyReflectionQuestions, sections)
		b.WriteString("---\n\n")
		fmt.Fprintf(&b, "# %d Vækst\n\n", year)
		writeSections(&b, yearlyGrowthQuestions, sections)
		b.WriteString("---\n\n")
		b.WriteString("# Affirmationer\n\n")
		writeSections(&b, affirmationQuestions, sections)
	}

	return b.String()
}

func writeSections(b *strings.Builder, questions []Question, sections map[string]string) {
	for _, q := range questions {
		fmt.Fprintf(b, "## %s\n\n", q.Text)
		if answer := answerFor(sections, q); answer != "" {
			b.WriteString(answer + "\n\n")
		}
	}
}

func answerFor(sections map[string]string, q Question) string {
	if a, ok := sections[q.Text]; ok {
		return a
	}
	if a, ok := sections[strings.TrimSuffix(q.Text, "?")]; ok {
		return a
	}
	if a, ok := sections[q.ID]; ok {
		return a
	}
	return ""
}

// ParseSections scans a reflection body back into question→answer pairs.
// A level-2 header opens a pair; a level-1 header or horizontal rule closes
// the open pair without starting a new one; everything else accumulates into
// the current answer.
func ParseSections(content string) []Section {
	var sections []Section
	var current *Section
	var answer []string

	flush := func() {
		if current != nil {
			current.Answer = strings.TrimSpace(strings.Join(answer, "\n"))
			sections = append(sections, *current)
			current = nil
		}
		answer = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## "):
			flush()
			current = &Section{Question: strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))}
		case trimmed == "---" || (strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ")):
			flush()
		default:
			if current != nil {
				answer = append(answer, line)
			}
		}
	}
	flush()

	return sections
}
