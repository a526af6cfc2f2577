package reflection

import (
	"strings"
	"testing"

	"github.com/jkrogh/fokus/pkg/period"
)

func TestQuestionCatalogs(t *testing.T) {
	if got := len(Questions(period.Weekly)); got != 4 {
		t.Errorf("Expected 4 weekly questions, got %d", got)
	}
	if got := len(Questions(period.Monthly)); got != 4 {
		t.Errorf("Expected 4 monthly questions, got %d", got)
	}
	if got := len(Questions(period.Quarterly)); got != 7 {
		t.Errorf("Expected 7 quarterly questions, got %d", got)
	}
	if got := len(Questions(period.Yearly)); got != 17 {
		t.Errorf("Expected 17 yearly questions, got %d", got)
	}
	if Questions(period.Vision) != nil {
		t.Error("Vision has no reflection questions")
	}
}

func TestQuestionIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, pt := range []period.Type{period.Weekly, period.Quarterly, period.Yearly} {
		for _, q := range Questions(pt) {
			if q.ID == "" {
				t.Errorf("Question %q has no id", q.Text)
			}
			if seen[q.ID] {
				t.Errorf("Duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestBuildContentWeekly(t *testing.T) {
	content := BuildContent(period.Weekly, map[string]string{
		"Hvad gik godt i denne periode?": "Det meste.",
	}, 2025, 1)

	if !strings.Contains(content, "## Hvad gik godt i denne periode?\n\nDet meste.\n") {
		t.Errorf("Answered section missing:\n%s", content)
	}
	// Unanswered questions still get their header.
	if !strings.Contains(content, "## Hvad har jeg lært?") {
		t.Errorf("Unanswered header missing:\n%s", content)
	}
	if strings.Contains(content, "# Q") {
		t.Error("Weekly content must have no top-level header")
	}
}

func TestBuildContentAnswerLookup(t *testing.T) {
	// Text without the trailing question mark and the stable id both resolve.
	byStripped := BuildContent(period.Weekly, map[string]string{
		"Hvad gik godt i denne periode": "Svar A",
	}, 2025, 1)
	if !strings.Contains(byStripped, "Svar A") {
		t.Error("Lookup by stripped text failed")
	}

	byID := BuildContent(period.Weekly, map[string]string{
		"went-well": "Svar B",
	}, 2025, 1)
	if !strings.Contains(byID, "Svar B") {
		t.Error("Lookup by question id failed")
	}
}

func TestBuildContentQuarterly(t *testing.T) {
	content := BuildContent(period.Quarterly, nil, 2025, 3)
	if !strings.HasPrefix(content, "# Q3 2025 Refleksion\n\n") {
		t.Errorf("Missing quarterly header:\n%s", content)
	}
	if strings.Count(content, "## ") != 7 {
		t.Errorf("Expected 7 question headers, got %d", strings.Count(content, "## "))
	}
}

func TestBuildContentYearlyBlocks(t *testing.T) {
	content := BuildContent(period.Yearly, nil, 2026, 0)

	// The reflection block reviews the year that just ended.
	if !strings.Contains(content, "# 2025 Refleksioner") {
		t.Errorf("Missing reflection block header:\n%s", content)
	}
	if !strings.Contains(content, "# 2026 Vækst") {
		t.Errorf("Missing growth block header:\n%s", content)
	}
	if !strings.Contains(content, "# Affirmationer") {
		t.Errorf("Missing affirmations header:\n%s", content)
	}
	if strings.Count(content, "---\n") != 2 {
		t.Errorf("Expected 2 horizontal rules, got %d", strings.Count(content, "---\n"))
	}
	if strings.Count(content, "## ") != 17 {
		t.Errorf("Expected 17 question headers, got %d", strings.Count(content, "## "))
	}
}

func TestParseSections(t *testing.T) {
	content := `# 2025 Refleksioner

## Hvad var årets største øjeblikke?

Rejsen til Japan.
Og maratonløbet.

## Hvad er jeg mest stolt af i år?

---

# Affirmationer

## Hvem er jeg, når jeg er bedst?

Rolig og nysgerrig.
`
	sections := ParseSections(content)
	if len(sections) != 3 {
		t.Fatalf("Expected 3 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Answer != "Rejsen til Japan.\nOg maratonløbet." {
		t.Errorf("Unexpected multi-line answer: %q", sections[0].Answer)
	}
	if sections[1].Answer != "" {
		t.Errorf("Expected empty answer, got %q", sections[1].Answer)
	}
	if sections[2].Question != "Hvem er jeg, når jeg er bedst?" || sections[2].Answer != "Rolig og nysgerrig." {
		t.Errorf("Unexpected last section: %+v", sections[2])
	}
}

func TestBuildParseRoundTrip(t *testing.T) {
	answers := map[string]string{
		"went-well":  "Meget.",
		"went-badly": "Lidt.",
		"learned":    "Noget nyt.",
		"next-focus": "Fokus på søvn.",
	}
	content := BuildContent(period.Weekly, answers, 2025, 1)
	sections := ParseSections(content)

	if len(sections) != 4 {
		t.Fatalf("Expected 4 sections, got %d", len(sections))
	}
	for i, q := range Questions(period.Weekly) {
		if sections[i].Question != q.Text {
			t.Errorf("Section %d: expected question %q, got %q", i, q.Text, sections[i].Question)
		}
		if sections[i].Answer != answers[q.ID] {
			t.Errorf("Section %d: expected answer %q, got %q", i, answers[q.ID], sections[i].Answer)
		}
	}
}
