package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	"codestreak/internal/ui/components"
	"codestreak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Load(ctx context.Context, force bool) (dto.LoadOutput, error)
	Insight(ctx context.Context, date string) (dto.InsightOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// LoadedMsg carries one sync result. A failed load leaves the view as it
// was; the root model shows the error.
type LoadedMsg struct {
	Out dto.LoadOutput
	Err error
}

type InsightMsg struct {
	Out dto.InsightOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model renders the dashboard page and, with history hidden, the compact
// status page.
type Model struct {
	port    Port
	mode    domain.Mode
	spinner spinner.Model
	rings   map[domain.Metric]components.Ring
	bursts  map[domain.Metric]components.Burst

	status     *dto.StatusOutput
	heatmap    *dto.HeatmapOutput
	heatMsg    string
	insight    *dto.InsightOutput
	generation uint64
	redirected bool
	loaded     bool
	busy       bool

	row, col int
	width    int
}

func New(port Port, mode domain.Mode, motion string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	m := Model{
		port:    port,
		mode:    mode,
		spinner: sp,
		rings:   map[domain.Metric]components.Ring{},
		bursts:  map[domain.Metric]components.Burst{},
		col:     -1,
	}
	for i, metric := range domain.Metrics {
		m.rings[metric] = components.NewRing(metric, 30)
		m.bursts[metric] = components.NewBurst(i+1, motion)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(false), m.spinner.Tick)
}

// Refresh runs one sync in the background.
func (m Model) Refresh(force bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Load(context.Background(), force)
		return LoadedMsg{Out: out, Err: err}
	}
}

// OpenInsight loads the breakdown for one day.
func (m Model) OpenInsight(date string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Insight(context.Background(), date)
		return InsightMsg{Out: out, Err: err}
	}
}

func (m *Model) SetBusy(busy bool) { m.busy = busy }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for metric, ring := range m.rings {
			ring.SetWidth(min(msg.Width-8, 48))
			m.rings[metric] = ring
		}

	case LoadedMsg:
		if msg.Err != nil {
			// The missing-identity placeholder still belongs in the heatmap.
			if msg.Out.HeatmapMessage != "" && m.mode.ShowsHistory() {
				m.loaded = true
				m.heatMsg = msg.Out.HeatmapMessage
			}
			return m, nil
		}
		if msg.Out.Stale {
			return m, nil
		}
		out := msg.Out
		current := out.Generation >= m.generation
		if current {
			m.generation = out.Generation
			m.loaded = true
			m.redirected = out.Redirected
		}
		if out.Status != nil {
			if current {
				m.status = out.Status
				for metric := range m.bursts {
					b := m.bursts[metric]
					b.Clear()
					m.bursts[metric] = b
				}
			}
			// Celebrations fire once per session; play them even when a
			// newer result already replaced the page.
			for _, c := range out.Status.Celebrations {
				b := m.bursts[c.Metric]
				cmds = append(cmds, b.Fire(c.Palette))
				m.bursts[c.Metric] = b
			}
		}
		if current && m.mode.ShowsHistory() && !out.HistoryStale {
			m.heatmap = out.Heatmap
			m.heatMsg = out.HeatmapMessage
			if m.heatmap != nil && m.col < 0 {
				m.col = todayCol(m.heatmap, m.status)
			}
		}

	case InsightMsg:
		if msg.Err == nil {
			out := msg.Out
			m.insight = &out
		}

	case components.BurstFrameMsg:
		for metric, b := range m.bursts {
			var cmd tea.Cmd
			b, cmd = b.Update(msg)
			m.bursts[metric] = b
			cmds = append(cmds, cmd)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		if !m.busy {
			return m.Refresh(true)
		}
	case "esc":
		m.insight = nil
	}
	if m.heatmap == nil {
		return nil
	}
	switch msg.String() {
	case "left", "h":
		m.col = max(m.col-1, 0)
	case "right", "l":
		m.col = min(m.col+1, 6)
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, len(m.heatmap.Rows)-1)
	case "enter":
		if cell, ok := m.selected(); ok && cell.Date != "" {
			return m.OpenInsight(cell.Date)
		}
	}
	return nil
}

func (m Model) selected() (dto.CellOutput, bool) {
	if m.heatmap == nil || m.row >= len(m.heatmap.Rows) || m.col < 0 || m.col > 6 {
		return dto.CellOutput{}, false
	}
	return m.heatmap.Rows[m.row].Cells[m.col], true
}

// todayCol puts the cursor on today's slot, or Monday.
func todayCol(hm *dto.HeatmapOutput, status *dto.StatusOutput) int {
	if status == nil || len(hm.Rows) == 0 {
		return 0
	}
	for i, cell := range hm.Rows[0].Cells {
		if cell.Date == status.Date {
			return i
		}
	}
	return 0
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.loaded {
		return m.spinner.View() + " " + theme.Muted.Render("Syncing…")
	}
	if m.redirected {
		return theme.Muted.Render("Setup required. Opening settings…")
	}
	var sections []string
	if m.status != nil {
		sections = append(sections, m.renderHeader(), m.renderRings())
	}
	if m.mode.ShowsHistory() {
		sections = append(sections, m.renderHeatmap())
		if m.insight != nil {
			sections = append(sections, RenderInsight(*m.insight))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	s := m.status
	title := theme.Title.Render(fmt.Sprintf("%s  Today %s", s.Avatar, s.Date))
	streak := theme.Hot.Render(fmt.Sprintf("🔥 %d", s.StreakCur)) + theme.Muted.Render(fmt.Sprintf("  best %d", s.StreakBest))
	var extra []string
	if len(s.Reminders) > 0 {
		extra = append(extra, "reminders "+strings.Join(s.Reminders, ", "))
	}
	if len(s.Repos) > 0 {
		extra = append(extra, "repos "+strings.Join(s.Repos, ", "))
	}
	out := title + "   " + streak
	if len(extra) > 0 {
		out += "\n" + theme.Muted.Render(strings.Join(extra, "  ·  "))
	}
	return out + "\n"
}

func (m Model) renderRings() string {
	var parts []string
	for _, r := range m.status.Rings {
		ring, ok := m.rings[r.Metric]
		if !ok {
			continue
		}
		block := ring.View(r)
		if b := m.bursts[r.Metric]; b.Active() {
			block += "\n" + b.View(min(max(m.width-8, 20), 48))
		}
		parts = append(parts, theme.Pane.Render(block))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var weekdays = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

func (m Model) renderHeatmap() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("This week"))
	if m.heatmap != nil {
		sb.WriteString(theme.Muted.Render("  " + m.heatmap.Timezone))
	}
	sb.WriteString("\n")
	if m.heatMsg != "" {
		sb.WriteString(theme.Muted.Render(m.heatMsg) + "\n")
	}
	if m.heatmap == nil {
		return theme.Pane.Render(strings.TrimRight(sb.String(), "\n"))
	}

	sb.WriteString(strings.Repeat(" ", 10))
	for _, d := range weekdays {
		sb.WriteString(theme.Muted.Render(d) + " ")
	}
	sb.WriteString("\n")
	for r, row := range m.heatmap.Rows {
		sb.WriteString(lipgloss.NewStyle().Width(10).Render(row.Metric.Label()))
		for c, cell := range row.Cells {
			glyph := "■■"
			if !cell.Filled {
				glyph = "··"
			}
			style := lipgloss.NewStyle().Foreground(theme.Heat(row.Metric, cell.Level))
			if r == m.row && c == m.col {
				style = style.Underline(true).Bold(true)
			}
			sb.WriteString(style.Render(glyph) + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Hot.Render(m.heatmap.Label))
	if cell, ok := m.selected(); ok {
		sb.WriteString(theme.Muted.Render("   " + cell.Tooltip))
	}
	return theme.Pane.Render(sb.String())
}

// RenderInsight draws the per-day breakdown card.
func RenderInsight(in dto.InsightOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(in.Title) + "\n")
	for _, metric := range domain.Metrics {
		count, goal, left := in.Counts.Value(metric), domain.Counts(in.Goals).Value(metric), in.Remaining.Value(metric)
		style := theme.Muted
		if left == 0 {
			style = theme.Hot
		}
		sb.WriteString(fmt.Sprintf("%-10s %d / %d  ", metric.Label(), count, goal) + style.Render(domain.RemainingLabel(left)) + "\n")
	}
	sb.WriteString(theme.Muted.Render(in.Suggestion))
	return theme.PaneActive.Render(sb.String())
}
