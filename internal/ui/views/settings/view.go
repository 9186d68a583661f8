package settings

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	"codestreak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Load(ctx context.Context, force bool) (dto.LoadOutput, error)
	Save(ctx context.Context, input dto.SettingsInput) (dto.LoadOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Out dto.LoadOutput
	Err error
}

// SavedMsg is the result of a save and the sync that follows it.
type SavedMsg struct {
	Out dto.LoadOutput
	Err error
}

// ─── fields ──────────────────────────────────────────────────────────────────

type field int

const (
	fieldGitHub field = iota
	fieldLeetCode
	fieldCommits
	fieldSolved
	fieldReminder1
	fieldReminder2
	fieldRepos
	fieldPreset
	fieldAvatar
	fieldSave
	fieldCount
)

var fieldLabels = map[field]string{
	fieldGitHub:    "GitHub",
	fieldLeetCode:  "LeetCode",
	fieldCommits:   "Commit goal",
	fieldSolved:    "Solved goal",
	fieldReminder1: "Reminder 1",
	fieldReminder2: "Reminder 2",
	fieldRepos:     "Repos",
	fieldPreset:    "Preset",
	fieldAvatar:    "Avatar",
}

var presets = []string{domain.PresetLow, domain.PresetNormal, domain.PresetHigh}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	spinner    spinner.Model
	inputs     map[field]*textinput.Model
	base       Form
	avatar     int
	preset     int
	focus      field
	needsSetup bool
	message    string
	loaded     bool
	busy       bool
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	inputs := map[field]*textinput.Model{}
	for f := fieldGitHub; f <= fieldRepos; f++ {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		switch f {
		case fieldCommits, fieldSolved:
			ti.CharLimit = 3
		case fieldReminder1, fieldReminder2:
			ti.Placeholder = "HH:MM"
			ti.CharLimit = 5
		case fieldRepos:
			ti.Placeholder = "owner/name, owner/other"
			ti.CharLimit = 256
		}
		inputs[f] = &ti
	}
	inputs[fieldGitHub].Focus()
	return Model{port: port, spinner: sp, inputs: inputs, preset: 1}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(false), m.spinner.Tick, textinput.Blink)
}

func (m Model) Refresh(force bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Load(context.Background(), force)
		return LoadedMsg{Out: out, Err: err}
	}
}

// Submit saves the fields that differ from the last sync.
func (m Model) Submit() tea.Cmd {
	input, err := BuildInput(m.base, m.Form(), m.needsSetup)
	if err != nil {
		return func() tea.Msg { return SavedMsg{Err: err} }
	}
	return m.SaveInput(input)
}

// SaveInput saves an explicit patch, as the command palette does.
func (m Model) SaveInput(input dto.SettingsInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Save(context.Background(), input)
		return SavedMsg{Out: out, Err: err}
	}
}

// Editing reports whether a text field has focus, in which case global
// keys must not be captured.
func (m Model) Editing() bool {
	_, ok := m.inputs[m.focus]
	return ok
}

func (m *Model) SetBusy(busy bool) { m.busy = busy }

// Form returns what is currently on screen.
func (m Model) Form() Form {
	f := Form{
		GitHub:   m.inputs[fieldGitHub].Value(),
		LeetCode: m.inputs[fieldLeetCode].Value(),
		Commits:  m.inputs[fieldCommits].Value(),
		Solved:   m.inputs[fieldSolved].Value(),
		Repos:    m.inputs[fieldRepos].Value(),
		Avatar:   domain.Avatars[m.avatar],
	}
	f.Reminders[0] = m.inputs[fieldReminder1].Value()
	f.Reminders[1] = m.inputs[fieldReminder2].Value()
	return f
}

func (m *Model) setForm(f Form) {
	m.inputs[fieldGitHub].SetValue(f.GitHub)
	m.inputs[fieldLeetCode].SetValue(f.LeetCode)
	m.inputs[fieldCommits].SetValue(f.Commits)
	m.inputs[fieldSolved].SetValue(f.Solved)
	m.inputs[fieldReminder1].SetValue(f.Reminders[0])
	m.inputs[fieldReminder2].SetValue(f.Reminders[1])
	m.inputs[fieldRepos].SetValue(f.Repos)
	m.avatar = 0
	for i, a := range domain.Avatars {
		if a == f.Avatar {
			m.avatar = i
		}
	}
}

func (m *Model) apply(out dto.LoadOutput) {
	if out.Stale || (out.Status == nil && out.Setup == nil) {
		return
	}
	m.loaded = true
	m.needsSetup = out.Setup != nil
	m.message = ""
	if out.Setup != nil {
		m.message = out.Setup.Message
	}
	m.base = FormFromLoad(out)
	m.setForm(m.base)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err == nil {
			m.apply(msg.Out)
		}
		return m, nil

	case SavedMsg:
		if msg.Err == nil {
			m.apply(msg.Out)
			if !m.needsSetup {
				m.message = "Saved."
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.move(1)
			return m, nil
		case "shift+tab", "up":
			m.move(-1)
			return m, nil
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.focus == fieldPreset {
				f := m.Form()
				f.ApplyPreset(presets[m.preset])
				m.inputs[fieldCommits].SetValue(f.Commits)
				m.inputs[fieldSolved].SetValue(f.Solved)
				return m, nil
			}
			return m, m.submit()
		case "left", "right":
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			switch m.focus {
			case fieldAvatar:
				// The picker moves at once; the store follows after the save.
				m.avatar = (m.avatar + step + len(domain.Avatars)) % len(domain.Avatars)
				return m, nil
			case fieldPreset:
				m.preset = (m.preset + step + len(presets)) % len(presets)
				return m, nil
			}
		}
	}

	if ti, ok := m.inputs[m.focus]; ok {
		updated, cmd := ti.Update(msg)
		*ti = updated
		return m, cmd
	}
	return m, nil
}

func (m Model) submit() tea.Cmd {
	if m.busy || !m.loaded {
		return nil
	}
	return m.Submit()
}

func (m *Model) move(step int) {
	if ti, ok := m.inputs[m.focus]; ok {
		ti.Blur()
	}
	m.focus = (m.focus + field(step) + fieldCount) % fieldCount
	if ti, ok := m.inputs[m.focus]; ok {
		ti.Focus()
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.loaded {
		return m.spinner.View() + " " + theme.Muted.Render("Loading settings…")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n")
	if m.message != "" {
		sb.WriteString(theme.Hot.Render(m.message) + "\n")
	}
	sb.WriteString("\n")
	for f := fieldGitHub; f < fieldSave; f++ {
		label := lipgloss.NewStyle().Width(13).Render(fieldLabels[f])
		if f == m.focus {
			label = theme.Hot.Render("› ") + label
		} else {
			label = "  " + label
		}
		sb.WriteString(label + m.renderField(f) + "\n")
	}
	save := "[ Save ]"
	if m.busy {
		save = "[ Saving… ]"
	}
	if m.focus == fieldSave {
		save = theme.Hot.Render(save)
	} else {
		save = theme.Muted.Render(save)
	}
	sb.WriteString("\n  " + save + theme.Muted.Render("   ctrl+s save · tab next · ←/→ pick"))
	return theme.Pane.Render(sb.String())
}

func (m Model) renderField(f field) string {
	switch f {
	case fieldPreset:
		var parts []string
		for i, p := range presets {
			if i == m.preset {
				parts = append(parts, theme.Hot.Render(p))
			} else {
				parts = append(parts, theme.Muted.Render(p))
			}
		}
		return strings.Join(parts, "  ")
	case fieldAvatar:
		var parts []string
		for i, a := range domain.Avatars {
			if i == m.avatar {
				parts = append(parts, "["+a+"]")
			} else {
				parts = append(parts, " "+a+" ")
			}
		}
		return strings.Join(parts, "")
	}
	return m.inputs[f].View()
}
