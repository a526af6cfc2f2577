package goal

import (
	"testing"
	"time"

	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/vault"
)

func testService(t *testing.T) *Service {
	t.Helper()
	store := vault.NewStore(t.TempDir())
	if err := store.EnsureLayout(); err != nil {
		t.Fatal(err)
	}
	return NewService(store)
}

func mustWrite(t *testing.T, svc *Service, p period.Period, body string) {
	t.Helper()
	if err := svc.Write(p, body); err != nil {
		t.Fatal(err)
	}
}

func TestBuildYearOnly(t *testing.T) {
	svc := testService(t)
	mustWrite(t, svc, period.Current(period.Yearly, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)), "## 2025 Største forventninger\n\n- Et\n")

	tree, err := NewTreeBuilder(svc.Store()).Build(2025)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Title != "2025" || tree.Period != "yearly" {
		t.Errorf("Expected bare yearly root, got %q (%s)", tree.Title, tree.Period)
	}
	if len(tree.Children) != 0 {
		t.Errorf("Expected no children, got %d", len(tree.Children))
	}
}

func TestBuildEmptyVault(t *testing.T) {
	svc := testService(t)
	tree, err := NewTreeBuilder(svc.Store()).Build(2025)
	if err != nil {
		t.Fatal(err)
	}
	if tree == nil {
		t.Fatal("Expected a synthetic yearly root for an empty vault")
	}
	if tree.Title != "2025" || tree.Status != vault.StatusNotStarted {
		t.Errorf("Unexpected root: %+v", tree)
	}
}

func TestBuildFullHierarchy(t *testing.T) {
	svc := testService(t)
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)

	mustWrite(t, svc, period.Current(period.Vision, jan), "## Største målsætninger\n\n- Vision punkt\n")
	mustWrite(t, svc, period.Current(period.Yearly, jan), "- Års punkt\n")
	mustWrite(t, svc, period.Current(period.Quarterly, jan), "- Kvartal punkt\n")
	mustWrite(t, svc, period.Current(period.Monthly, jan), "- [x] Januar task\n- [ ] Januar task to\n")
	mustWrite(t, svc, period.Current(period.Weekly, jan), "- [ ] Uge task\n")

	tree, err := NewTreeBuilder(svc.Store()).Build(2025)
	if err != nil {
		t.Fatal(err)
	}

	if tree.Period != "vision" || tree.Title != "Vision 2025-2027" {
		t.Fatalf("Expected vision root with frontmatter range, got %q (%s)", tree.Title, tree.Period)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("Vision must wrap exactly the yearly node, got %d children", len(tree.Children))
	}

	yearNode := tree.Children[0]
	if yearNode.Title != "2025" {
		t.Errorf("Unexpected year title %q", yearNode.Title)
	}
	// Only Q1 has documents; empty quarters stay out.
	if len(yearNode.Children) != 1 {
		t.Fatalf("Expected 1 quarter node, got %d", len(yearNode.Children))
	}

	quarterNode := yearNode.Children[0]
	if quarterNode.Title != "Q1 2025" {
		t.Errorf("Unexpected quarter title %q", quarterNode.Title)
	}
	if len(quarterNode.Children) != 1 {
		t.Fatalf("Expected 1 month node, got %d", len(quarterNode.Children))
	}

	monthNode := quarterNode.Children[0]
	if monthNode.Title != "Januar 2025" {
		t.Errorf("Unexpected month title %q", monthNode.Title)
	}
	if monthNode.Progress != 50 || monthNode.TasksCompleted != 1 || monthNode.TasksTotal != 2 {
		t.Errorf("Unexpected month progress: %d (%d/%d)", monthNode.Progress, monthNode.TasksCompleted, monthNode.TasksTotal)
	}
	if len(monthNode.Children) != 1 {
		t.Fatalf("Expected 1 week node, got %d", len(monthNode.Children))
	}

	weekNode := monthNode.Children[0]
	if weekNode.Title != "Uge 3, 2025" {
		t.Errorf("Unexpected week title %q", weekNode.Title)
	}
	if weekNode.TasksTotal != 1 || weekNode.Progress != 0 {
		t.Errorf("Unexpected week stats: %+v", weekNode)
	}
}

func TestBuildQuarterWithoutDocAttachedViaMonth(t *testing.T) {
	svc := testService(t)
	// A month document in Q2 but no quarterly document.
	mustWrite(t, svc, period.Current(period.Monthly, time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)), "- [ ] Maj task\n")

	tree, err := NewTreeBuilder(svc.Store()).Build(2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("Expected the Q2 node to be attached, got %d quarters", len(tree.Children))
	}
	q := tree.Children[0]
	if q.Title != "Q2 2025" || q.Status != vault.StatusNotStarted {
		t.Errorf("Unexpected quarter node: %+v", q)
	}
	if len(q.Children) != 1 || q.Children[0].Title != "Maj 2025" {
		t.Errorf("Unexpected month children: %+v", q.Children)
	}
}

func TestBuildWeeksSorted(t *testing.T) {
	svc := testService(t)
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	mustWrite(t, svc, period.Current(period.Monthly, jan), "- [ ] Task\n")

	for _, day := range []int{20, 6, 13} {
		mustWrite(t, svc, period.Current(period.Weekly, time.Date(2025, 1, day, 0, 0, 0, 0, time.Local)), "- [ ] Uge task\n")
	}

	tree, err := NewTreeBuilder(svc.Store()).Build(2025)
	if err != nil {
		t.Fatal(err)
	}
	monthNode := tree.Children[0].Children[0]
	if len(monthNode.Children) != 3 {
		t.Fatalf("Expected 3 week nodes, got %d", len(monthNode.Children))
	}
	want := []string{"Uge 2, 2025", "Uge 3, 2025", "Uge 4, 2025"}
	for i, title := range want {
		if monthNode.Children[i].Title != title {
			t.Errorf("Week %d: expected %q, got %q", i, title, monthNode.Children[i].Title)
		}
	}
}
