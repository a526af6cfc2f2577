package goal

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Task is one checkbox line in a monthly or weekly goal body. The ID is
// positional: task-{n} by occurrence order within the document, re-derived on
// every parse. Inserting or removing a line shifts every id after it.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Section   string `json:"section,omitempty"`
}

var (
	sectionRe  = regexp.MustCompile(`^###\s+(.+)$`)
	checkboxRe = regexp.MustCompile(`^\s*[-*]\s*\[([ xX])\]\s*(.+)$`)
)

// ParseTasks extracts checkbox tasks from a goal body. A level-3 heading sets
// the section of every task until the next heading; only checkbox lines
// advance the id counter.
func ParseTasks(body string) []Task {
	var tasks []Task
	section := ""

	for _, line := range strings.Split(body, "\n") {
		if m := sectionRe.FindStringSubmatch(line); m != nil {
			section = strings.TrimSpace(m[1])
			continue
		}
		if m := checkboxRe.FindStringSubmatch(line); m != nil {
			tasks = append(tasks, Task{
				ID:        fmt.Sprintf("task-%d", len(tasks)),
				Text:      strings.TrimSpace(m[2]),
				Completed: m[1] == "x" || m[1] == "X",
				Section:   section,
			})
		}
	}
	return tasks
}

// UpdateTaskInContent rewrites the checkbox of one task in place, leaving
// every other byte of the body untouched. An id that matches no checkbox line
// is a silent no-op: the body comes back unchanged.
func UpdateTaskInContent(body, taskID string, completed bool) string {
	lines := strings.Split(body, "\n")
	count := 0

	for i, line := range lines {
		m := checkboxRe.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		id := fmt.Sprintf("task-%d", count)
		count++
		if id != taskID {
			continue
		}
		mark := " "
		if completed {
			mark = "x"
		}
		// m[2]:m[3] is the single character inside the brackets.
		lines[i] = line[:m[2]] + mark + line[m[3]:]
		break
	}
	return strings.Join(lines, "\n")
}

// Progress returns the completion percentage of a task list, rounded to the
// nearest integer. An empty list is 0.
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}
