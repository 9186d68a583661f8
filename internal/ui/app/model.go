package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
	"codestreak/internal/ui/components"
	"codestreak/internal/ui/theme"
	dashboardview "codestreak/internal/ui/views/dashboard"
	settingsview "codestreak/internal/ui/views/settings"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// Handler is one page session. Views receive it narrowed to their own port.
type Handler interface {
	Load(ctx context.Context, force bool) (dto.LoadOutput, error)
	Save(ctx context.Context, input dto.SettingsInput) (dto.LoadOutput, error)
	Insight(ctx context.Context, date string) (dto.InsightOutput, error)
	Session(ctx context.Context) dto.SessionOutput
}

// Options wires the root model. Open starts a fresh session for a mode;
// Busy and Navigate deliver gate transitions and redirects from the
// session's goroutines.
type Options struct {
	Mode        domain.Mode
	Open        func(domain.Mode) Handler
	Busy        <-chan bool
	Navigate    <-chan domain.Mode
	BotUsername string
	Motion      string
	Refresh     time.Duration
}

// ─── async messages ───────────────────────────────────────────────────────────

type busyMsg bool

type navigateMsg domain.Mode

type refreshTickMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Refresh key.Binding
	Move    key.Binding
	Insight key.Binding
	Close   key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Move:    key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←↑↓→", "select day")),
		Insight: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "day insight")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Move, k.Insight, k.Close},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns the page session, the busy
// indicator, the error banner and the command palette. Rendering of the
// page itself is delegated to the view for the session's mode.
type Model struct {
	opts    Options
	mode    domain.Mode
	handler Handler

	dashView     dashboardview.Model
	settingsView settingsview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	palette  components.Palette
	spinner  spinner.Model
	busy     bool
	banner   string
	status   string
	syncedAt time.Time
	width    int
	height   int
}

func NewModel(opts Options) Model {
	if opts.Mode == "" {
		opts.Mode = domain.ModeDashboard
	}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Peach)

	m := Model{
		opts:    opts,
		keys:    defaultKeys(),
		help:    help.New(),
		palette: components.NewPalette(),
		spinner: sp,
		status:  "ready",
	}
	m.open(opts.Mode)
	return m
}

// open starts a new session for mode and rebuilds the page for it.
func (m *Model) open(mode domain.Mode) {
	m.mode = mode
	m.handler = m.opts.Open(mode)
	m.dashView = dashboardview.New(m.handler, mode, m.opts.Motion)
	m.settingsView = settingsview.New(settingsPortBridge{h: m.handler})
	m.banner = ""
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.pageInit(),
		m.spinner.Tick,
		waitBusy(m.opts.Busy),
		waitNavigate(m.opts.Navigate),
		m.refreshTick(),
	)
}

func (m Model) pageInit() tea.Cmd {
	if m.mode == domain.ModeSettings {
		return m.settingsView.Init()
	}
	return m.dashView.Init()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width

	case busyMsg:
		m.busy = bool(msg)
		m.dashView.SetBusy(m.busy)
		m.settingsView.SetBusy(m.busy)
		return m, waitBusy(m.opts.Busy)

	case navigateMsg:
		m.open(domain.Mode(msg))
		m.status = "opened " + string(msg)
		return m, tea.Batch(m.pageInit(), waitNavigate(m.opts.Navigate))

	case refreshTickMsg:
		cmds = append(cmds, m.refreshTick())
		if !m.busy {
			cmds = append(cmds, m.pageRefresh(false))
		}
		return m, tea.Batch(cmds...)

	case dashboardview.LoadedMsg:
		m.noteResult(msg.Out, msg.Err)
	case settingsview.LoadedMsg:
		m.noteResult(msg.Out, msg.Err)
	case settingsview.SavedMsg:
		m.noteResult(msg.Out, msg.Err)
		if msg.Err == nil {
			m.status = "settings saved"
		}
	case dashboardview.InsightMsg:
		if msg.Err != nil {
			m.banner = apperrors.Message(msg.Err)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Text fields take every other key.
		if !(m.mode == domain.ModeSettings && m.settingsView.Editing()) {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				return m, m.palette.Open()
			}
		}
		if msg.String() == "esc" {
			m.banner = ""
		}
	}

	var pageCmd tea.Cmd
	if m.mode == domain.ModeSettings {
		m.settingsView, pageCmd = m.settingsView.Update(msg)
	} else {
		m.dashView, pageCmd = m.dashView.Update(msg)
	}
	cmds = append(cmds, pageCmd)
	return m, tea.Batch(cmds...)
}

// noteResult updates the banner and sync time from a load or save.
func (m *Model) noteResult(out dto.LoadOutput, err error) {
	switch {
	case errors.Is(err, apperrors.ErrSessionEnded):
		// A redirect is under way; the next page reports for itself.
	case err != nil:
		m.banner = apperrors.Message(err)
	case !out.Stale:
		m.banner = ""
		if !out.SyncedAt.IsZero() {
			m.syncedAt = out.SyncedAt
		}
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.mode == domain.ModeSettings:
		content = m.settingsView.View()
	default:
		content = m.dashView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) renderHeader() string {
	title := theme.Title.Render("codestreak") + theme.Muted.Render(" · "+string(m.mode))
	if m.busy {
		title += "  " + m.spinner.View()
	}
	out := title
	if m.banner != "" {
		out += "\n" + theme.Banner.Render(m.banner)
	}
	return out + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if !m.syncedAt.IsZero() {
		left += theme.Muted.Render("  synced " + m.syncedAt.Local().Format("15:04:05"))
	}
	right := theme.Muted.Render("?:help  r:refresh  :::command  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	cmd, err := ParseCommand(input)
	if err != nil {
		m.banner = apperrors.Message(err)
		return m, nil
	}
	switch cmd.Name {
	case "":
		return m, nil
	case "refresh":
		if m.busy {
			return m, nil
		}
		return m, m.pageRefresh(true)
	case "insight":
		if m.mode != domain.ModeDashboard {
			m.status = "insight is only available on the dashboard"
			return m, nil
		}
		return m, m.dashView.OpenInsight(cmd.Arg)
	case "link":
		link, ok := domain.BotLink(m.opts.BotUsername, cmd.Arg)
		if !ok {
			m.status = "bot username is not configured"
			return m, nil
		}
		m.status = link
		return m, nil
	default:
		if m.busy {
			m.status = "busy, try again"
			return m, nil
		}
		m.status = "saving " + cmd.Name
		return m, m.save(*cmd.Save)
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) pageRefresh(force bool) tea.Cmd {
	if m.mode == domain.ModeSettings {
		return m.settingsView.Refresh(force)
	}
	return m.dashView.Refresh(force)
}

// save routes a palette patch through the page so it renders the re-sync.
func (m Model) save(input dto.SettingsInput) tea.Cmd {
	if m.mode == domain.ModeSettings {
		return m.settingsView.SaveInput(input)
	}
	h := m.handler
	return func() tea.Msg {
		out, err := h.Save(context.Background(), input)
		return dashboardview.LoadedMsg{Out: out, Err: err}
	}
}

func (m Model) refreshTick() tea.Cmd {
	if m.opts.Refresh <= 0 {
		return nil
	}
	return tea.Tick(m.opts.Refresh, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func waitBusy(ch <-chan bool) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg { return busyMsg(<-ch) }
}

func waitNavigate(ch <-chan domain.Mode) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg { return navigateMsg(<-ch) }
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type settingsPortBridge struct{ h Handler }

func (b settingsPortBridge) Load(ctx context.Context, force bool) (dto.LoadOutput, error) {
	return b.h.Load(ctx, force)
}
func (b settingsPortBridge) Save(ctx context.Context, input dto.SettingsInput) (dto.LoadOutput, error) {
	return b.h.Save(ctx, input)
}
