package vault

// Goal document status values. A goal moves forward only: toggling a task
// flips not-started to in-progress, never the other way.
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// Document kinds stored in the type frontmatter key.
const (
	KindGoal       = "goal"
	KindReflection = "reflection"
)

// GoalFrontmatter is the metadata block of a goal document. StartYear and
// EndYear are only set on vision documents and carry the effective multi-year
// range; the single Year field stays the nominal vision year.
type GoalFrontmatter struct {
	Type      string `yaml:"type"`
	Period    string `yaml:"period"`
	Year      int    `yaml:"year"`
	Quarter   int    `yaml:"quarter,omitempty"`
	Month     int    `yaml:"month,omitempty"`
	Week      int    `yaml:"week,omitempty"`
	Start     string `yaml:"start,omitempty"`
	End       string `yaml:"end,omitempty"`
	Status    string `yaml:"status"`
	Emoji     string `yaml:"emoji,omitempty"`
	Theme     string `yaml:"theme,omitempty"`
	StartYear int    `yaml:"startYear,omitempty"`
	EndYear   int    `yaml:"endYear,omitempty"`
	Created   string `yaml:"created,omitempty"`
	Updated   string `yaml:"updated,omitempty"`
}

// ReflectionFrontmatter is the metadata block of a reflection document.
// The goal statistics are a snapshot taken when the reflection is created;
// later edits to the linked goal do not update them.
type ReflectionFrontmatter struct {
	Type           string  `yaml:"type"`
	Period         string  `yaml:"period"`
	Year           int     `yaml:"year"`
	Quarter        int     `yaml:"quarter,omitempty"`
	Month          int     `yaml:"month,omitempty"`
	Week           int     `yaml:"week,omitempty"`
	Date           string  `yaml:"date,omitempty"`
	GoalsCompleted int     `yaml:"goalsCompleted"`
	GoalsTotal     int     `yaml:"goalsTotal"`
	CompletionRate float64 `yaml:"completionRate"`
	LinkedGoalPath string  `yaml:"linkedGoalPath,omitempty"`
	Created        string  `yaml:"created,omitempty"`
	Updated        string  `yaml:"updated,omitempty"`
}

// Document is a parsed markdown file: frontmatter map plus the body after it.
type Document struct {
	Path        string
	Frontmatter map[string]interface{}
	Body        string
}
