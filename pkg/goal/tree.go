package goal

import (
	"fmt"
	"sort"
	"time"

	"github.com/jkrogh/fokus/pkg/period"
	"github.com/jkrogh/fokus/pkg/vault"
)

// TreeNode is one node of the ephemeral goal tree. Trees are rebuilt from the
// store on every call and never persisted or cached.
type TreeNode struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Period         string      `json:"period"`
	Status         string      `json:"status"`
	Progress       int         `json:"progress"`
	Path           string      `json:"path"`
	Children       []*TreeNode `json:"children"`
	TasksCompleted int         `json:"tasksCompleted"`
	TasksTotal     int         `json:"tasksTotal"`
}

// TreeBuilder assembles the vision→year→quarter→month→week tree for a year
// from the documents currently in the store.
type TreeBuilder struct {
	store *vault.Store
}

// NewTreeBuilder creates a TreeBuilder over the given store.
func NewTreeBuilder(store *vault.Store) *TreeBuilder {
	return &TreeBuilder{store: store}
}

type storedGoal struct {
	doc *vault.Document
	fm  *vault.GoalFrontmatter
}

// Build returns the goal tree for a year. The root is the vision document
// covering year+2 when one exists, otherwise the yearly node (which may have
// no document at all). Quarter nodes without a document are attached only
// when a descendant month exists.
func (b *TreeBuilder) Build(year int) (*TreeNode, error) {
	goals, err := b.loadYear(year)
	if err != nil {
		return nil, err
	}

	yearlyNode := b.yearNode(year, goals)

	visionPath := period.Path(period.Period{Type: period.Vision, Year: year + 2})
	visionDoc, err := b.store.Read(visionPath)
	if err != nil {
		return nil, err
	}
	if visionDoc == nil {
		return yearlyNode, nil
	}

	fm, err := vault.ParseGoal(visionDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vision frontmatter: %w", err)
	}
	title := fmt.Sprintf("Vision %d", year+2)
	if fm.StartYear != 0 && fm.EndYear != 0 {
		// Frontmatter carries the effective vision range.
		title = fmt.Sprintf("Vision %d-%d", fm.StartYear, fm.EndYear)
	}
	return &TreeNode{
		ID:       fmt.Sprintf("vision-%d", year+2),
		Title:    title,
		Period:   string(period.Vision),
		Status:   statusOf(fm),
		Path:     visionPath,
		Children: []*TreeNode{yearlyNode},
	}, nil
}

// loadYear reads every goal document under goals/{year} and buckets it by
// period type. The reads are independent of each other; only the final
// assembly orders them.
func (b *TreeBuilder) loadYear(year int) ([]storedGoal, error) {
	paths, err := b.store.List(fmt.Sprintf("goals/%d", year))
	if err != nil {
		return nil, err
	}

	var goals []storedGoal
	for _, p := range paths {
		doc, err := b.store.Read(p)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		fm, err := vault.ParseGoal(doc)
		if err != nil {
			// Skip documents whose metadata does not parse; the tree is a
			// best-effort snapshot.
			continue
		}
		goals = append(goals, storedGoal{doc: doc, fm: fm})
	}
	return goals, nil
}

func (b *TreeBuilder) yearNode(year int, goals []storedGoal) *TreeNode {
	node := &TreeNode{
		ID:     fmt.Sprintf("yearly-%d", year),
		Title:  fmt.Sprintf("%d", year),
		Period: string(period.Yearly),
		Status: vault.StatusNotStarted,
		Path:   period.Path(period.Period{Type: period.Yearly, Year: year}),
	}
	if g := findGoal(goals, period.Yearly, 0, 0, 0); g != nil {
		node.Status = statusOf(g.fm)
	}

	for q := 1; q <= 4; q++ {
		quarterNode := b.quarterNode(year, q, goals)
		if quarterNode != nil {
			node.Children = append(node.Children, quarterNode)
		}
	}
	return node
}

func (b *TreeBuilder) quarterNode(year, q int, goals []storedGoal) *TreeNode {
	node := &TreeNode{
		ID:     fmt.Sprintf("quarterly-%d-q%d", year, q),
		Title:  fmt.Sprintf("Q%d %d", q, year),
		Period: string(period.Quarterly),
		Status: vault.StatusNotStarted,
		Path:   period.Path(period.Period{Type: period.Quarterly, Year: year, Quarter: q}),
	}
	quarterGoal := findGoal(goals, period.Quarterly, q, 0, 0)
	if quarterGoal != nil {
		node.Status = statusOf(quarterGoal.fm)
	}

	for m := (q-1)*3 + 1; m <= q*3; m++ {
		monthGoal := findGoal(goals, period.Monthly, 0, m, 0)
		if monthGoal == nil {
			continue
		}
		monthNode := taskNode(
			fmt.Sprintf("monthly-%d-%02d", year, m),
			period.Current(period.Monthly, time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.Local)),
			monthGoal,
		)
		for _, weekGoal := range findWeeks(goals, m) {
			monthNode.Children = append(monthNode.Children, taskNode(
				fmt.Sprintf("weekly-%d-%02d", weekGoal.fm.Year, weekGoal.fm.Week),
				period.Period{
					Type:    period.Weekly,
					Year:    weekGoal.fm.Year,
					Quarter: weekGoal.fm.Quarter,
					Month:   weekGoal.fm.Month,
					Week:    weekGoal.fm.Week,
					Label:   fmt.Sprintf("Uge %d, %d", weekGoal.fm.Week, weekGoal.fm.Year),
				},
				weekGoal,
			))
		}
		node.Children = append(node.Children, monthNode)
	}

	// An empty quarter with no document stays out of the tree.
	if quarterGoal == nil && len(node.Children) == 0 {
		return nil
	}
	return node
}

// taskNode builds a leaf-level node whose progress comes from the document's
// own task list.
func taskNode(id string, p period.Period, g *storedGoal) *TreeNode {
	tasks := ParseTasks(g.doc.Body)
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	title := p.Label
	if title == "" {
		title = g.fm.Period
	}
	return &TreeNode{
		ID:             id,
		Title:          title,
		Period:         string(p.Type),
		Status:         statusOf(g.fm),
		Progress:       Progress(tasks),
		Path:           g.doc.Path,
		TasksCompleted: completed,
		TasksTotal:     len(tasks),
	}
}

func findGoal(goals []storedGoal, t period.Type, quarter, month, week int) *storedGoal {
	for i := range goals {
		g := &goals[i]
		if g.fm.Period != string(t) {
			continue
		}
		if quarter != 0 && g.fm.Quarter != quarter {
			continue
		}
		if month != 0 && g.fm.Month != month {
			continue
		}
		if week != 0 && g.fm.Week != week {
			continue
		}
		return g
	}
	return nil
}

func findWeeks(goals []storedGoal, month int) []*storedGoal {
	var weeks []*storedGoal
	for i := range goals {
		g := &goals[i]
		if g.fm.Period == string(period.Weekly) && g.fm.Month == month {
			weeks = append(weeks, g)
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].fm.Week < weeks[j].fm.Week })
	return weeks
}

func statusOf(fm *vault.GoalFrontmatter) string {
	if fm.Status == "" {
		return vault.StatusNotStarted
	}
	return fm.Status
}
