package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	"codestreak/internal/ui/theme"
)

// Ring draws a goal ring as a horizontal gauge. Terminals have no arcs, so
// the stroke offset becomes the unfilled tail of the bar.
type Ring struct {
	metric domain.Metric
	bar    progress.Model
}

func NewRing(m domain.Metric, width int) Ring {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Accent(m))),
		progress.WithoutPercentage(),
		progress.WithWidth(max(width, 10)),
	)
	bar.EmptyColor = string(theme.Surface1)
	return Ring{metric: m, bar: bar}
}

func (r *Ring) SetWidth(w int) {
	r.bar.Width = max(w, 10)
}

func (r Ring) View(out dto.RingOutput) string {
	label := lipgloss.NewStyle().Foreground(theme.Accent(r.metric)).Bold(true).Render(r.metric.Label())
	count := fmt.Sprintf("%d/%d %s", out.Current, out.Goal, r.metric.Unit(out.Current))
	if out.Goal > 0 && out.Current >= out.Goal {
		count += " " + theme.Hot.Render("✓")
	}
	return label + "  " + theme.Muted.Render(count) + "\n" + r.bar.ViewAs(out.Progress)
}
