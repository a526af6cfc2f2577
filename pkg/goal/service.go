package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/vault"
)

const dateLayout = "2006-01-02"

// Service owns the goal document lifecycle: creation on first write, the
// updated-timestamp refresh, and the one-way status transition driven by task
// toggles.
type Service struct {
	store *vault.Store
}

// NewService creates a goal Service over the given store.
func NewService(store *vault.Store) *Service {
	return &Service{store: store}
}

// Store exposes the underlying document store.
func (s *Service) Store() *vault.Store {
	return s.store
}

// Read returns the goal document for a period, or nil when none exists.
func (s *Service) Read(p period.Period) (*vault.Document, error) {
	return s.store.Read(period.Path(p))
}

// Write persists the body of a period's goal document. A first write creates
// the document with not-started status; subsequent writes keep the existing
// frontmatter and refresh the updated timestamp.
func (s *Service) Write(p period.Period, body string) error {
	path := period.Path(p)
	now := time.Now().Format(time.RFC3339)

	existing, err := s.store.Read(path)
	if err != nil {
		return err
	}

	var fm *vault.GoalFrontmatter
	if existing != nil {
		fm, err = vault.ParseGoal(existing)
		if err != nil {
			return fmt.Errorf("failed to parse goal frontmatter: %w", err)
		}
	} else {
		fm = newFrontmatter(p, now)
	}
	fm.Updated = now

	return s.store.Write(path, fm, body)
}

// ToggleTask flips one task's checkbox in the period's goal document. The
// returned bool reports whether the document existed; a task id that matches
// nothing leaves the body unchanged, which is not an error. The first toggle
// moves a not-started goal to in-progress; status never moves backwards here.
func (s *Service) ToggleTask(p period.Period, taskID string, completed bool) (bool, error) {
	path := period.Path(p)
	doc, err := s.store.Read(path)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}

	fm, err := vault.ParseGoal(doc)
	if err != nil {
		return false, fmt.Errorf("failed to parse goal frontmatter: %w", err)
	}

	body := UpdateTaskInContent(doc.Body, taskID, completed)
	if fm.Status == vault.StatusNotStarted {
		fm.Status = vault.StatusInProgress
	}
	fm.Updated = time.Now().Format(time.RFC3339)

	if err := s.store.Write(path, fm, body); err != nil {
		return false, err
	}
	return true, nil
}

// CurrentGoals reads the goal document of every period type containing the
// anchor date. Missing documents come back as nil entries.
func (s *Service) CurrentGoals(anchor time.Time) (map[period.Type]*vault.Document, error) {
	out := make(map[period.Type]*vault.Document, 5)
	for _, t := range []period.Type{period.Vision, period.Yearly, period.Quarterly, period.Monthly, period.Weekly} {
		doc, err := s.Read(period.Current(t, anchor))
		if err != nil {
			return nil, err
		}
		out[t] = doc
	}
	return out, nil
}

// ContextText renders the current goal documents as one text block for use
// as prompt context. Missing levels are named as missing.
func (s *Service) ContextText(anchor time.Time) (string, error) {
	var b strings.Builder
	for _, t := range []period.Type{period.Vision, period.Yearly, period.Quarterly, period.Monthly, period.Weekly} {
		p := period.Current(t, anchor)
		doc, err := s.Read(p)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "=== %s (%s) ===\n", p.Label, t)
		if doc == nil {
			b.WriteString("(no document)\n\n")
			continue
		}
		b.WriteString(strings.TrimSpace(doc.Body) + "\n\n")
	}
	return b.String(), nil
}

func newFrontmatter(p period.Period, created string) *vault.GoalFrontmatter {
	fm := &vault.GoalFrontmatter{
		Type:    vault.KindGoal,
		Period:  string(p.Type),
		Year:    p.Year,
		Quarter: p.Quarter,
		Month:   p.Month,
		Week:    p.Week,
		Status:  vault.StatusNotStarted,
		Created: created,
	}
	if !p.Start.IsZero() {
		fm.Start = p.Start.Format(dateLayout)
		fm.End = p.End.Format(dateLayout)
	}
	if p.Type == period.Vision {
		fm.StartYear = p.Start.Year()
		fm.EndYear = p.End.Year()
	}
	return fm
}
