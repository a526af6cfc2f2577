// Package automation runs period-boundary reminders: when a new week, month
// or quarter begins without a goal document, registered notifiers are asked
// to nudge the user. Schedules are period types, not cron expressions — the
// next run of every reminder is simply the start of the next period.
package automation

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
)

// NotifyFunc delivers one reminder message to a chat surface.
type NotifyFunc func(ctx context.Context, message string) error

// ComposeFunc turns a period without goals into the reminder text. The
// default composer is static; the composition root can plug in an AI-backed
// one.
type ComposeFunc func(ctx context.Context, p period.Period) (string, error)

// Service polls for period starts and dispatches reminders at most once per
// period, tracked in the reminders table.
type Service struct {
	repo         *db.Repository
	goals        *goal.Service
	compose      ComposeFunc
	pollInterval time.Duration
	types        []period.Type

	mu        sync.RWMutex
	notifiers []NotifyFunc

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewService creates a reminder scheduler for weekly, monthly and quarterly
// period starts.
func NewService(repo *db.Repository, goals *goal.Service, pollInterval time.Duration) *Service {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Minute
	}
	s := &Service{
		repo:         repo,
		goals:        goals,
		pollInterval: pollInterval,
		types:        []period.Type{period.Weekly, period.Monthly, period.Quarterly},
		stop:         make(chan struct{}),
	}
	s.compose = s.defaultCompose
	return s
}

// SetComposer replaces the reminder text composer.
func (s *Service) SetComposer(fn ComposeFunc) {
	s.compose = fn
}

// AddNotifier registers a delivery channel for reminders.
func (s *Service) AddNotifier(fn NotifyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, fn)
}

// Start begins the polling loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop stops the polling loop and waits for shutdown.
func (s *Service) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Service) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	// Run one immediate tick on startup.
	s.RunOnce(context.Background(), time.Now())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background(), time.Now())
		case <-s.stop:
			return
		}
	}
}

// RunOnce checks every tracked period type once. Exposed for tests and the
// run-now path.
func (s *Service) RunOnce(ctx context.Context, now time.Time) {
	for _, t := range s.types {
		p := period.Current(t, now)

		doc, err := s.goals.Read(p)
		if err != nil {
			log.Printf("Reminder check failed for %s: %v", p.Label, err)
			continue
		}
		if doc != nil {
			continue
		}

		first, err := s.repo.MarkReminderSent(period.Path(p))
		if err != nil {
			log.Printf("Failed to mark reminder for %s: %v", p.Label, err)
			continue
		}
		if !first {
			continue
		}

		message, err := s.compose(ctx, p)
		if err != nil {
			log.Printf("Failed to compose reminder for %s: %v", p.Label, err)
			continue
		}
		s.dispatch(ctx, message)
	}
}

func (s *Service) dispatch(ctx context.Context, message string) {
	s.mu.RLock()
	notifiers := make([]NotifyFunc, len(s.notifiers))
	copy(notifiers, s.notifiers)
	s.mu.RUnlock()

	for _, notify := range notifiers {
		if err := notify(ctx, message); err != nil {
			log.Printf("Reminder delivery failed: %v", err)
		}
	}
}

func (s *Service) defaultCompose(ctx context.Context, p period.Period) (string, error) {
	return "Ny periode er startet: " + p.Label + ". Der er ikke sat mål endnu.", nil
}
