package theme

import (
	"github.com/charmbracelet/lipgloss"

	"codestreak/internal/modules/dashboard/domain"
)

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	// Metric accents match the confetti palettes.
	Commits = lipgloss.Color("#3b82f6")
	Solved  = lipgloss.Color("#5ad0a0")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title  = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext0)
	Hot    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Banner = lipgloss.NewStyle().Foreground(Base).Background(Red).Padding(0, 1)
	Notice = lipgloss.NewStyle().Foreground(Base).Background(Green).Padding(0, 1)
)

// Accent is the metric's ring and heatmap color.
func Accent(m domain.Metric) lipgloss.Color {
	if m == domain.MetricSolved {
		return Solved
	}
	return Commits
}

// heatRamps holds per-metric colors for heat levels 1..4; level 0 is Surface0.
var heatRamps = map[domain.Metric][4]lipgloss.Color{
	domain.MetricCommits: {"#1e3a6e", "#2957a4", "#3b82f6", "#7aa7ff"},
	domain.MetricSolved:  {"#1f4d3c", "#2f7a5d", "#5ad0a0", "#8ee8c6"},
}

// Heat is the cell color for a heat level of metric m.
func Heat(m domain.Metric, level int) lipgloss.Color {
	if level <= 0 {
		return Surface0
	}
	ramp, ok := heatRamps[m]
	if !ok {
		ramp = heatRamps[domain.MetricCommits]
	}
	return ramp[min(level, 4)-1]
}
