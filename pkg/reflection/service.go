package reflection

import (
	"fmt"
	"time"

	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/vault"
)

// Service owns the reflection document lifecycle. Creation snapshots the
// linked goal's task statistics into the frontmatter; the snapshot is never
// recomputed afterwards.
type Service struct {
	store *vault.Store
}

// NewService creates a reflection Service over the given store.
func NewService(store *vault.Store) *Service {
	return &Service{store: store}
}

// Read returns the reflection document for a period, or nil when none exists.
func (s *Service) Read(p period.Period) (*vault.Document, error) {
	return s.store.Read(period.ReflectionPath(p))
}

// WriteSections builds the canonical body from answers and persists it.
func (s *Service) WriteSections(p period.Period, sections map[string]string) error {
	return s.WriteBody(p, BuildContent(p.Type, sections, p.Year, p.Quarter))
}

// WriteBody persists a reflection body. On first write the frontmatter is
// created with a snapshot of the linked goal's completion stats; later writes
// keep the existing frontmatter and only refresh the updated timestamp.
func (s *Service) WriteBody(p period.Period, body string) error {
	path := period.ReflectionPath(p)
	now := time.Now().Format(time.RFC3339)

	existing, err := s.store.Read(path)
	if err != nil {
		return err
	}

	var fm *vault.ReflectionFrontmatter
	if existing != nil {
		fm, err = vault.ParseReflection(existing)
		if err != nil {
			return fmt.Errorf("failed to parse reflection frontmatter: %w", err)
		}
	} else {
		fm = &vault.ReflectionFrontmatter{
			Type:    vault.KindReflection,
			Period:  string(p.Type),
			Year:    p.Year,
			Quarter: p.Quarter,
			Month:   p.Month,
			Week:    p.Week,
			Date:    time.Now().Format("2006-01-02"),
			Created: now,
		}
		s.snapshotGoalStats(p, fm)
	}
	fm.Updated = now

	return s.store.Write(path, fm, body)
}

// List returns reflection documents filtered by year and period type. A zero
// year or empty type matches everything; limit 0 means no limit. Results
// follow store listing order.
func (s *Service) List(year int, t period.Type, limit int) ([]*vault.Document, error) {
	paths, err := s.store.List("reflections")
	if err != nil {
		return nil, err
	}

	var out []*vault.Document
	for _, path := range paths {
		doc, err := s.store.Read(path)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		fm, err := vault.ParseReflection(doc)
		if err != nil {
			continue
		}
		if year != 0 && fm.Year != year {
			continue
		}
		if t != "" && fm.Period != string(t) {
			continue
		}
		out = append(out, doc)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Service) snapshotGoalStats(p period.Period, fm *vault.ReflectionFrontmatter) {
	goalPath := period.Path(p)
	doc, err := s.store.Read(goalPath)
	if err != nil || doc == nil {
		return
	}

	tasks := goal.ParseTasks(doc.Body)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	fm.GoalsCompleted = completed
	fm.GoalsTotal = len(tasks)
	fm.CompletionRate = float64(goal.Progress(tasks))
	fm.LinkedGoalPath = goalPath
}
