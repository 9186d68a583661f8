package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"codestreak/internal/bootstrap"
	dashboardinadapter "codestreak/internal/modules/dashboard/adapter/in"
	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	"codestreak/internal/platform/config"
	apperrors "codestreak/internal/platform/errors"
	"codestreak/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, apperrors.Message(err))
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	baseURL    string
	initData   string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "codestreak",
		Short:         "Daily GitHub and LeetCode streak dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.baseURL, "base-url", "", "status service base URL")
	flags.StringVar(&opts.initData, "init-data", "", "signed identity token")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newInsightCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newSettingsCmd(opts))
	root.AddCommand(newLinkCmd(opts))
	return root
}

// loadApp resolves configuration with flags taking precedence. The
// returned func closes the log file.
func loadApp(opts *rootOptions) (*bootstrap.App, func(), error) {
	return buildApp(opts, logging.New)
}

// loadTUIApp keeps logs off the terminal the TUI draws on.
func loadTUIApp(opts *rootOptions) (*bootstrap.App, func(), error) {
	return buildApp(opts, logging.NewTUI)
}

type loggerFactory func(level, path string) (*log.Logger, io.Closer, error)

func buildApp(opts *rootOptions, newLogger loggerFactory) (*bootstrap.App, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if opts.initData != "" {
		cfg.InitData = opts.initData
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, closer, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return app, func() { _ = closer.Close() }, nil
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := domain.ParseMode(mode)
			if err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
			}
			app, done, err := loadTUIApp(opts)
			if err != nil {
				return err
			}
			defer done()
			return bootstrap.RunTUI(app, m)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeDashboard), "dashboard|status|settings")
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var force bool
	var format string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer done()
			w := cmd.OutOrStdout()
			out, err := app.CLI(domain.ModeStatus, w).Status(context.Background(), force)
			if err != nil {
				return err
			}
			return render(w, format, out, printStatus)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "ask the service to recount now")
	cmd.Flags().StringVar(&format, "format", "text", "text|json|yaml")
	return cmd
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show this week's heatmap and score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer done()
			w := cmd.OutOrStdout()
			out, err := app.CLI(domain.ModeDashboard, w).History(context.Background())
			if err != nil {
				return err
			}
			return render(w, format, out, printHistory)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text|json|yaml")
	return cmd
}

func newInsightCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insight <YYYY-MM-DD>",
		Short: "Break one day down against the current goals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, done, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer done()
			w := cmd.OutOrStdout()
			out, err := app.CLI(domain.ModeDashboard, w).Insight(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, out.Title)
			for _, m := range domain.Metrics {
				_, _ = fmt.Fprintf(w, "  %-10s %d / %d  %s\n", m.Label(), out.Counts.Value(m), domain.Counts(out.Goals).Value(m), domain.RemainingLabel(out.Remaining.Value(m)))
			}
			_, _ = fmt.Fprintln(w, "  "+out.Suggestion)
			return nil
		},
	}
}

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var interval time.Duration
	var force bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh today's progress until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, done, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer done()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			poller := app.Poller(w, interval)
			err = poller.Run(ctx, force, func(out dto.LoadOutput, err error) {
				if err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), apperrors.Message(err))
					return
				}
				if out.Status != nil {
					_, _ = fmt.Fprintf(w, "[%s] ", out.SyncedAt.Local().Format("15:04:05"))
					printStatusLine(w, out.Status)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default from config, else 1m)")
	cmd.Flags().BoolVar(&force, "force", false, "ask the service to recount on every refresh")
	return cmd
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Change goals, reminders, repos, avatar or handles"}

	run := func(cmd *cobra.Command, save func(context.Context, dashboardinadapter.CLIHandler) (dto.LoadOutput, error)) error {
		app, done, err := loadApp(opts)
		if err != nil {
			return err
		}
		defer done()
		w := cmd.OutOrStdout()
		h := app.CLI(domain.ModeSettings, w)
		// Settings sessions need the setup state before validating.
		if _, err := h.Status(context.Background(), false); err != nil {
			return err
		}
		out, err := save(context.Background(), h)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, "saved")
		if out.Status != nil {
			printStatusLine(w, out.Status)
		}
		return nil
	}

	var preset string
	goals := &cobra.Command{
		Use:   "goals [<commits> <solved>]",
		Short: "Set daily goals",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, h dashboardinadapter.CLIHandler) (dto.LoadOutput, error) {
				if preset != "" {
					return h.SetPreset(ctx, preset)
				}
				if len(args) != 2 {
					return dto.LoadOutput{}, fmt.Errorf("%w: give <commits> <solved> or --preset", apperrors.ErrValidation)
				}
				commits, solved, err := parseGoals(args[0], args[1])
				if err != nil {
					return dto.LoadOutput{}, err
				}
				return h.SetGoals(ctx, commits, solved)
			})
		},
	}
	goals.Flags().StringVar(&preset, "preset", "", "low|normal|high")

	reminders := &cobra.Command{
		Use:   "reminders [HH:MM ...]",
		Short: "Set up to two reminder times; none clears them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, h dashboardinadapter.CLIHandler) (dto.LoadOutput, error) {
				return h.SetReminders(ctx, args)
			})
		},
	}

	repos := &cobra.Command{
		Use:   "repos <owner/name,...>",
		Short: "Limit commit counting to these repositories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, h dashboardinadapter.CLIHandler) (dto.LoadOutput, error) {
				return h.SetRepos(ctx, strings.Join(args, ","))
			})
		},
	}

	avatar := &cobra.Command{
		Use:   "avatar <glyph>",
		Short: "Pick an avatar: " + strings.Join(domain.Avatars, " "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, h dashboardinadapter.CLIHandler) (dto.LoadOutput, error) {
				return h.SetAvatar(ctx, args[0])
			})
		},
	}

	var github, leetcode string
	handles := &cobra.Command{
		Use:   "handles",
		Short: "Set GitHub and LeetCode usernames",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, h dashboardinadapter.CLIHandler) (dto.LoadOutput, error) {
				return h.SetHandles(ctx, flagValue(cmd, "github", github), flagValue(cmd, "leetcode", leetcode))
			})
		},
	}
	handles.Flags().StringVar(&github, "github", "", "GitHub username")
	handles.Flags().StringVar(&leetcode, "leetcode", "", "LeetCode username")

	settings.AddCommand(goals, reminders, repos, avatar, handles)
	return settings
}

func newLinkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "link <settings|status>",
		Short:     "Print the bot deep link for a command",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"settings", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != "settings" && args[0] != "status" {
				return fmt.Errorf("%w: link target must be settings or status", apperrors.ErrValidation)
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			link, ok := domain.BotLink(cfg.BotUsername, args[0])
			if !ok {
				return fmt.Errorf("%w: bot_username is not configured", apperrors.ErrValidation)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
}
