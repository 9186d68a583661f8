package usecase

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	dashboardin "codestreak/internal/modules/dashboard/port/in"
	dashboardout "codestreak/internal/modules/dashboard/port/out"
	"codestreak/internal/modules/dashboard/service"
	"codestreak/internal/platform/clock"
	apperrors "codestreak/internal/platform/errors"
)

// HistoryDays is the fixed window the dashboard requests.
const HistoryDays = 7

const (
	msgOpenInHost    = "Open inside Telegram to see this week."
	msgAddHandles    = "Add your GitHub and LeetCode handles to get started."
	msgCompleteSetup = "Complete setup to see this week."
	msgHistoryDown   = "History unavailable right now."
)

type Interactor struct {
	session   *service.Session
	gateway   dashboardout.StatusGateway
	navigator dashboardout.Navigator
	haptics   dashboardout.Haptics
	clock     clock.Clock
	log       *log.Logger
}

func NewInteractor(
	session *service.Session,
	gateway dashboardout.StatusGateway,
	navigator dashboardout.Navigator,
	haptics dashboardout.Haptics,
	clk clock.Clock,
	logger *log.Logger,
) dashboardin.Usecase {
	return &Interactor{
		session:   session,
		gateway:   gateway,
		navigator: navigator,
		haptics:   haptics,
		clock:     clk,
		log:       logger.With("session", session.ID, "mode", string(session.Mode)),
	}
}

// Load runs the sync protocol once: status, then history when the mode
// shows it and setup is complete.
func (i *Interactor) Load(ctx context.Context, force bool) (dto.LoadOutput, error) {
	out := dto.LoadOutput{Mode: i.session.Mode}
	if i.session.Ended() {
		return out, apperrors.ErrSessionEnded
	}
	if !i.session.HasIdentity() {
		i.log.Warn("missing init data; open inside the host app")
		out.HeatmapMessage = msgOpenInHost
		return out, fmt.Errorf("load status: %w", apperrors.ErrMissingIdentity)
	}

	gen := i.session.Begin()
	out.Generation = gen
	snap, err := i.gateway.Status(ctx, force)
	if err != nil {
		i.log.Error("failed to load status", "kind", apperrors.Kind(err), "err", err)
		return out, fmt.Errorf("load status: %w", err)
	}

	if snap.NeedsSetup {
		return i.handleSetup(gen, snap, out)
	}

	var fired []domain.Metric
	if !i.session.Commit(gen, func() {
		fired = i.session.Store.ApplyStatus(snap, i.session.Mode.ShowsRings())
		i.session.MarkSynced(i.clock.Now())
	}) {
		i.log.Debug("discarding stale status response", "generation", gen)
		out.Stale = true
		return out, nil
	}
	out.SyncedAt = i.session.SyncedAt()
	out.Status = statusOutput(snap, i.session.Store.Avatar(), fired)
	for _, m := range fired {
		i.log.Info("goal reached", "metric", string(m))
	}

	if !i.session.Mode.ShowsHistory() {
		return out, nil
	}
	i.loadHistory(ctx, gen, &out)
	return out, nil
}

func (i *Interactor) handleSetup(gen uint64, snap domain.StatusSnapshot, out dto.LoadOutput) (dto.LoadOutput, error) {
	if i.session.Mode != domain.ModeSettings {
		if !i.session.Commit(gen, i.session.End) {
			out.Stale = true
			return out, nil
		}
		i.log.Info("setup required; redirecting to settings")
		out.Redirected = true
		if i.navigator != nil {
			i.navigator.Navigate(domain.ModeSettings)
		}
		return out, nil
	}

	if !i.session.Commit(gen, func() {
		i.session.Store.ApplySetup(snap.Setup)
		i.session.MarkSynced(i.clock.Now())
	}) {
		out.Stale = true
		return out, nil
	}
	goals := domain.DefaultGoals()
	if snap.Setup.Goals != nil {
		goals = *snap.Setup.Goals
	}
	out.SyncedAt = i.session.SyncedAt()
	out.Setup = &dto.SetupOutput{
		GitHubUsername:   snap.Setup.GitHubUsername,
		LeetCodeUsername: snap.Setup.LeetCodeUsername,
		Goals:            goals,
		Avatar:           i.session.Store.Avatar(),
		Message:          msgAddHandles,
	}
	return out, nil
}

// loadHistory never fails the load: problems become a heatmap message and
// the previously cached week stays in place. A fenced history response only
// marks HistoryStale; the status part of out was already committed.
func (i *Interactor) loadHistory(ctx context.Context, gen uint64, out *dto.LoadOutput) {
	week, err := i.gateway.History(ctx, HistoryDays)
	if err != nil {
		i.log.Warn("failed to load history", "kind", apperrors.Kind(err), "err", err)
		out.HeatmapMessage = msgHistoryDown
		if hm, ok := i.Heatmap(ctx); ok {
			out.Heatmap = &hm
		}
		return
	}
	if week.NeedsSetup {
		out.HeatmapMessage = msgCompleteSetup
		return
	}
	if !i.session.Commit(gen, func() { i.session.Store.ApplyWeek(week) }) {
		i.log.Debug("discarding stale history response", "generation", gen)
		out.HistoryStale = true
		return
	}
	if hm, ok := i.Heatmap(ctx); ok {
		out.Heatmap = &hm
	}
}

// Heatmap renders the cached week, if any, against the current goals.
func (i *Interactor) Heatmap(_ context.Context) (dto.HeatmapOutput, bool) {
	week, goals, ok := i.session.Store.Week()
	if !ok {
		return dto.HeatmapOutput{}, false
	}
	return heatmapOutput(week, goals), true
}

func (i *Interactor) Insight(_ context.Context, date string) (dto.InsightOutput, error) {
	if date == "" {
		return dto.InsightOutput{}, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if _, err := domain.WeekdaySlot(date, "UTC"); err != nil {
		return dto.InsightOutput{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	insight, tz := i.session.Store.Insight(date)
	if i.haptics != nil {
		i.haptics.ImpactLight()
	}
	return dto.InsightOutput{
		Title:      domain.InsightTitle(date, tz),
		Date:       insight.Date,
		Counts:     insight.Counts,
		Goals:      insight.Goals,
		Remaining:  insight.Remaining,
		Completed:  insight.Completed,
		Suggestion: domain.InsightSuggestion(insight.Completed),
	}, nil
}

func (i *Interactor) Session(_ context.Context) dto.SessionOutput {
	st := i.session.Store.State()
	return dto.SessionOutput{
		ID:         i.session.ID,
		Mode:       i.session.Mode,
		Goals:      st.Goals,
		Avatar:     st.Avatar,
		NeedsSetup: st.NeedsSetup,
		Busy:       i.session.Gate.Busy(),
	}
}

func statusOutput(snap domain.StatusSnapshot, avatar string, fired []domain.Metric) *dto.StatusOutput {
	out := &dto.StatusOutput{
		Date:       snap.Date,
		Timezone:   snap.Timezone,
		Counts:     snap.Counts,
		Goals:      snap.Goals,
		StreakCur:  snap.Streak.Current,
		StreakBest: snap.Streak.Best,
		Reminders:  append([]string(nil), snap.Reminders...),
		Repos:      append([]string(nil), snap.Repos...),
		Avatar:     avatar,
	}
	for _, m := range domain.Metrics {
		current, goal := snap.Counts.Value(m), snap.Goals.Target(m)
		out.Rings = append(out.Rings, dto.RingOutput{
			Metric:   m,
			Current:  max(current, 0),
			Goal:     max(goal, 0),
			Progress: domain.RingProgress(current, goal),
		})
	}
	for _, m := range fired {
		out.Celebrations = append(out.Celebrations, dto.CelebrationOutput{Metric: m, Palette: m.ConfettiPalette()})
	}
	return out
}

func heatmapOutput(week domain.Week, goals domain.Goals) dto.HeatmapOutput {
	tz := week.Zone()
	slots := domain.SlotWeek(week.Days, tz)
	out := dto.HeatmapOutput{Timezone: tz}
	for _, m := range domain.Metrics {
		row := dto.HeatmapRow{Metric: m}
		for idx, slot := range slots {
			count := 0
			if slot.Filled {
				count = slot.Day.Counts.Value(m)
			}
			row.Cells[idx] = dto.CellOutput{
				Date:    slot.Day.Date,
				Count:   count,
				Level:   domain.HeatLevel(count),
				Alpha:   domain.HeatIntensity(count, goals.Target(m)),
				Tooltip: domain.Tooltip(slot.Day.Date, count, m),
				Filled:  slot.Filled,
			}
		}
		out.Rows = append(out.Rows, row)
	}
	out.Completed, out.Days, out.Score = domain.WeekScore(week.Days, goals)
	out.Label = domain.WeekScoreLabel(out.Completed, out.Days)
	return out
}
