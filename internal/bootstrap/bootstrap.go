package bootstrap

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	dashboardinadapter "codestreak/internal/modules/dashboard/adapter/in"
	dashboardoutadapter "codestreak/internal/modules/dashboard/adapter/out"
	"codestreak/internal/modules/dashboard/domain"
	dashboardin "codestreak/internal/modules/dashboard/port/in"
	dashboardout "codestreak/internal/modules/dashboard/port/out"
	dashboardservice "codestreak/internal/modules/dashboard/service"
	dashboardusecase "codestreak/internal/modules/dashboard/usecase"
	"codestreak/internal/platform/clock"
	"codestreak/internal/platform/config"
	"codestreak/internal/platform/id"
	uiapp "codestreak/internal/ui/app"
)

// App holds what sessions share: one gateway, one gate and the busy feed.
// Every page or command builds its own session on top.
type App struct {
	cfg     config.Config
	log     *log.Logger
	clock   clock.Clock
	ids     id.Generator
	gate    *dashboardservice.Gate
	gateway dashboardout.StatusGateway
	busy    chan bool
}

func New(cfg config.Config, logger *log.Logger) (*App, error) {
	gate := dashboardservice.NewGate()
	gateway, err := dashboardoutadapter.NewHTTPGateway(dashboardoutadapter.HTTPOptions{
		BaseURL: cfg.BaseURL,
		Token:   cfg.InitData,
		Timeout: cfg.RequestTimeout,
	}, gate, logger)
	if err != nil {
		return nil, fmt.Errorf("new status gateway: %w", err)
	}

	busy := make(chan bool, 1)
	// The listener runs under the gate lock, so sends are serialized and
	// the channel always holds the latest state.
	gate.SetListener(func(b bool) {
		select {
		case <-busy:
		default:
		}
		busy <- b
	})

	return &App{
		cfg:     cfg,
		log:     logger,
		clock:   clock.SystemClock{},
		ids:     id.UUID{},
		gate:    gate,
		gateway: gateway,
		busy:    busy,
	}, nil
}

func (a *App) Config() config.Config { return a.cfg }

func (a *App) newUsecase(mode domain.Mode, navigator dashboardout.Navigator, haptics io.Writer) dashboardin.Usecase {
	session := dashboardservice.NewSession(a.ids.New(), mode, a.cfg.InitData, a.gate)
	return dashboardusecase.NewInteractor(
		session,
		a.gateway,
		navigator,
		dashboardoutadapter.NewHaptics(haptics, a.cfg.Haptics),
		a.clock,
		a.log,
	)
}

// CLI builds a one-shot session. Redirects are printed to w.
func (a *App) CLI(mode domain.Mode, w io.Writer) dashboardinadapter.CLIHandler {
	return dashboardinadapter.NewCLIHandler(a.newUsecase(mode, dashboardoutadapter.NewWriterNavigator(w), nil))
}

// Poller builds a status-mode session refreshed every interval, or the
// configured refresh interval when interval is zero.
func (a *App) Poller(w io.Writer, interval time.Duration) *dashboardinadapter.Poller {
	if interval <= 0 {
		interval = a.cfg.RefreshInterval
	}
	uc := a.newUsecase(domain.ModeStatus, dashboardoutadapter.NewWriterNavigator(w), nil)
	return dashboardinadapter.NewPoller(uc, interval, a.log)
}

func (a *App) TUI(mode domain.Mode, navigator dashboardout.Navigator) dashboardinadapter.TUIHandler {
	return dashboardinadapter.NewTUIHandler(a.newUsecase(mode, navigator, os.Stderr))
}

func RunTUI(app *App, mode domain.Mode) error {
	navigator := dashboardoutadapter.NewChannelNavigator()
	model := uiapp.NewModel(uiapp.Options{
		Mode: mode,
		Open: func(m domain.Mode) uiapp.Handler {
			return app.TUI(m, navigator)
		},
		Busy:        app.busy,
		Navigate:    navigator.Requests(),
		BotUsername: app.cfg.BotUsername,
		Motion:      app.cfg.Motion,
		Refresh:     app.cfg.RefreshInterval,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
