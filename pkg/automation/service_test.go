package automation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jkrogh/fokus/pkg/db"
	"github.com/jkrogh/fokus/pkg/goal"
	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/vault"
)

func setupService(t *testing.T) (*Service, *goal.Service) {
	t.Helper()

	database, err := db.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	if err := database.InitSchema(); err != nil {
		t.Fatal(err)
	}
	repo := db.NewRepository(database)

	store := vault.NewStore(t.TempDir())
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	goals := goal.NewService(store)

	return NewService(repo, goals, time.Minute), goals
}

func TestRunOnceSendsReminders(t *testing.T) {
	svc, _ := setupService(t)

	var messages []string
	svc.AddNotifier(func(ctx context.Context, message string) error {
		messages = append(messages, message)
		return nil
	})

	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local)
	svc.RunOnce(context.Background(), now)

	// Weekly, monthly and quarterly goals are all missing.
	if len(messages) != 3 {
		t.Fatalf("Expected 3 reminders, got %d: %v", len(messages), messages)
	}
}

func TestRunOnceIsOncePerPeriod(t *testing.T) {
	svc, _ := setupService(t)

	count := 0
	svc.AddNotifier(func(ctx context.Context, message string) error {
		count++
		return nil
	})

	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local)
	svc.RunOnce(context.Background(), now)
	svc.RunOnce(context.Background(), now)
	// Another tick inside the same week changes nothing either.
	svc.RunOnce(context.Background(), now.Add(24*time.Hour))

	if count != 3 {
		t.Errorf("Expected 3 reminders total, got %d", count)
	}

	// The next week triggers a fresh weekly reminder only; month and quarter
	// are already marked.
	svc.RunOnce(context.Background(), now.AddDate(0, 0, 7))
	if count != 4 {
		t.Errorf("Expected 1 additional reminder, got %d total", count)
	}
}

func TestRunOnceSkipsExistingGoals(t *testing.T) {
	svc, goals := setupService(t)

	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local)
	if err := goals.Write(period.Current(period.Weekly, now), "- [ ] Task\n"); err != nil {
		t.Fatal(err)
	}

	var messages []string
	svc.AddNotifier(func(ctx context.Context, message string) error {
		messages = append(messages, message)
		return nil
	})

	svc.RunOnce(context.Background(), now)
	if len(messages) != 2 {
		t.Fatalf("Expected reminders only for monthly and quarterly, got %d", len(messages))
	}
}

func TestCustomComposer(t *testing.T) {
	svc, _ := setupService(t)

	svc.SetComposer(func(ctx context.Context, p period.Period) (string, error) {
		return "Custom: " + p.Label, nil
	})

	var messages []string
	svc.AddNotifier(func(ctx context.Context, message string) error {
		messages = append(messages, message)
		return nil
	})

	svc.RunOnce(context.Background(), time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local))
	if len(messages) == 0 || messages[0] != "Custom: Uge 3, 2025" {
		t.Errorf("Unexpected messages: %v", messages)
	}
}
