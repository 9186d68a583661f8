package domain

type Metric string

const (
	MetricCommits Metric = "github_commits"
	MetricSolved  Metric = "leetcode_solved"
)

// Metrics lists the tracked metrics in display order.
var Metrics = []Metric{MetricCommits, MetricSolved}

func (m Metric) Label() string {
	switch m {
	case MetricCommits:
		return "GitHub"
	case MetricSolved:
		return "LeetCode"
	default:
		return string(m)
	}
}

// Unit is the noun used next to a count of this metric.
func (m Metric) Unit(count int) string {
	if m == MetricSolved {
		return "solved"
	}
	if count == 1 {
		return "commit"
	}
	return "commits"
}

// ConfettiPalette is the color set of the metric's celebration burst.
func (m Metric) ConfettiPalette() []string {
	switch m {
	case MetricCommits:
		return []string{"#3b82f6", "#7aa7ff", "#c2d7ff"}
	case MetricSolved:
		return []string{"#5ad0a0", "#8ee8c6", "#c7f4df"}
	default:
		return []string{"#3b82f6", "#5ad0a0", "#94a3b8"}
	}
}

// Counts holds one value per metric.
type Counts struct {
	Commits int `json:"github_commits" yaml:"github_commits"`
	Solved  int `json:"leetcode_solved" yaml:"leetcode_solved"`
}

func (c Counts) Value(m Metric) int {
	switch m {
	case MetricCommits:
		return c.Commits
	case MetricSolved:
		return c.Solved
	default:
		return 0
	}
}

// Goals are the per-day targets. They are always replaced as a whole.
type Goals Counts

func DefaultGoals() Goals {
	return Goals{Commits: 2, Solved: 2}
}

func (g Goals) Target(m Metric) int {
	return Counts(g).Value(m)
}

// Met reports whether both metrics reach their goal.
func (g Goals) Met(c Counts) bool {
	return c.Commits >= g.Commits && c.Solved >= g.Solved
}

const (
	PresetLow    = "low"
	PresetNormal = "normal"
	PresetHigh   = "high"
)

func PresetGoals(name string) (Goals, bool) {
	switch name {
	case PresetLow:
		return Goals{Commits: 1, Solved: 1}, true
	case PresetNormal:
		return DefaultGoals(), true
	case PresetHigh:
		return Goals{Commits: 5, Solved: 4}, true
	default:
		return Goals{}, false
	}
}
