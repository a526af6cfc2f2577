package goal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jkrogh/fokus/pkg/period"
)

// FocusArea is one emoji-tagged section of a vision, yearly or quarterly
// goal body. Points keep their document order; a point whose text carries the
// two-space SubPointPrefix came from an indented source line.
type FocusArea struct {
	Emoji  string   `json:"emoji"`
	Name   string   `json:"name"`
	Goal   string   `json:"goal,omitempty"`
	Reason string   `json:"reason,omitempty"`
	Points []string `json:"points"`
}

// FocusContent is the parsed body of a focus-area document: the flat
// expectation list followed by the focus areas.
type FocusContent struct {
	Expectations []string    `json:"expectations"`
	Areas        []FocusArea `json:"areas"`
}

// SubPointPrefix marks a nested point in the in-memory representation.
// Consumers distinguish sub-points by this string prefix, not by structure.
const SubPointPrefix = "  "

// DefaultEmoji is used when a focus-area header carries no emoji.
const DefaultEmoji = "📌"

// Danish section labels of the stored format. Two header phrases mark the
// expectations block depending on document age; both must stay recognized.
const (
	visionExpectationsLabel = "Største målsætninger"
	yearlyExpectationsLabel = "Største forventninger"
	focusPointsLabel        = "Fokuspunkter"
)

var (
	focusHeaderRe = regexp.MustCompile(`^#{2,3}\s+(.+)$`)
	// An emoji codepoint, optionally extended by skin-tone modifiers, the
	// variation selector, or ZWJ-joined continuations.
	emojiRe = regexp.MustCompile(`^([\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{2B00}-\x{2BFF}\x{1F1E6}-\x{1F1FF}][\x{FE0F}\x{1F3FB}-\x{1F3FF}]*(?:\x{200D}[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}][\x{FE0F}\x{1F3FB}-\x{1F3FF}]*)*)\s*(.*)$`)
	goalLineRe   = regexp.MustCompile(`^\*\*Mål[:*\s]*(.+?)\*{0,2}$`)
	reasonLineRe = regexp.MustCompile(`^\*Årsag[:*\s]*(.+?)\*?$`)
)

// ParseFocusContent scans a focus-area body into structured content. The
// scanner tolerates both historical formats: the older one where bullets
// follow the area header directly, and the newer one with goal/reason lines
// and an explicit Fokuspunkter marker. Parsing never fails; unrecognized
// lines are dropped.
func ParseFocusContent(body string) FocusContent {
	var content FocusContent
	var currentArea *FocusArea
	inExpectations := false
	inFocusPoints := false

	flush := func() {
		if currentArea != nil {
			content.Areas = append(content.Areas, *currentArea)
			currentArea = nil
		}
	}

	for _, rawLine := range strings.Split(body, "\n") {
		line := strings.TrimSpace(rawLine)

		// Legacy documents separate sections with horizontal rules.
		if line == "---" {
			continue
		}

		if m := focusHeaderRe.FindStringSubmatch(line); m != nil {
			text := strings.ReplaceAll(strings.TrimSpace(m[1]), "**", "")
			if strings.Contains(text, visionExpectationsLabel) || strings.Contains(text, yearlyExpectationsLabel) {
				flush()
				inExpectations = true
				inFocusPoints = false
				continue
			}
			flush()
			inExpectations = false
			inFocusPoints = true
			emoji := DefaultEmoji
			name := text
			if em := emojiRe.FindStringSubmatch(text); em != nil && em[1] != "" {
				emoji = em[1]
				name = strings.TrimSpace(em[2])
			}
			currentArea = &FocusArea{Emoji: emoji, Name: name}
			continue
		}

		if currentArea != nil {
			if m := goalLineRe.FindStringSubmatch(line); m != nil {
				currentArea.Goal = strings.TrimSpace(m[1])
				continue
			}
			if m := reasonLineRe.FindStringSubmatch(line); m != nil {
				currentArea.Reason = strings.TrimSpace(m[1])
				continue
			}
		}

		// The marker line of the newer format; never stored as a point.
		if line == focusPointsLabel || line == "- "+focusPointsLabel {
			inFocusPoints = true
			continue
		}

		if strings.HasPrefix(line, "- ") {
			text := strings.TrimSpace(strings.TrimPrefix(line, "- "))
			if text == "" || text == focusPointsLabel {
				continue
			}
			if inExpectations {
				content.Expectations = append(content.Expectations, text)
				continue
			}
			if currentArea != nil && inFocusPoints {
				// Indentation on the raw line decides nesting.
				if len(rawLine)-len(strings.TrimLeft(rawLine, " ")) >= 4 {
					text = SubPointPrefix + text
				}
				currentArea.Points = append(currentArea.Points, text)
			}
		}
	}

	flush()
	return content
}

// SerializeFocusContent renders the canonical text form of focus content for
// the given period. Content that came out of this serializer parses back to
// an equal structure, and re-serializing that parse reproduces the bytes.
func SerializeFocusContent(t period.Type, year, quarter int, content FocusContent) string {
	var b strings.Builder

	if len(content.Expectations) > 0 {
		switch t {
		case period.Vision:
			b.WriteString("## " + visionExpectationsLabel + "\n\n")
		case period.Quarterly:
			fmt.Fprintf(&b, "## Q%d %s\n\n", quarter, yearlyExpectationsLabel)
		default:
			fmt.Fprintf(&b, "## %d %s\n\n", year, yearlyExpectationsLabel)
		}
		for _, e := range content.Expectations {
			b.WriteString("- " + e + "\n")
		}
		b.WriteString("\n")
	}

	for _, area := range content.Areas {
		fmt.Fprintf(&b, "## %s %s\n", area.Emoji, area.Name)
		if t == period.Vision {
			if area.Goal != "" {
				fmt.Fprintf(&b, "**Mål:** %s\n", area.Goal)
			}
			if area.Reason != "" {
				fmt.Fprintf(&b, "*Årsag: %s*\n", area.Reason)
			}
		}
		for _, p := range area.Points {
			if strings.HasPrefix(p, SubPointPrefix) {
				b.WriteString("    - " + strings.TrimPrefix(p, SubPointPrefix) + "\n")
			} else {
				b.WriteString("- " + p + "\n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
