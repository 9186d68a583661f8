package in

import (
	"context"
	"fmt"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	dashboardin "codestreak/internal/modules/dashboard/port/in"
	apperrors "codestreak/internal/platform/errors"
)

type CLIHandler struct {
	usecase dashboardin.Usecase
}

func NewCLIHandler(usecase dashboardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context, force bool) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx, force)
}

func (h CLIHandler) History(ctx context.Context) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx, false)
}

// Insight syncs once so the day is looked up in fresh history.
func (h CLIHandler) Insight(ctx context.Context, date string) (dto.InsightOutput, error) {
	out, err := h.usecase.Load(ctx, false)
	if err != nil {
		return dto.InsightOutput{}, err
	}
	if out.Redirected {
		return dto.InsightOutput{}, apperrors.ErrSessionEnded
	}
	return h.usecase.Insight(ctx, date)
}

func (h CLIHandler) SetGoals(ctx context.Context, commits, solved int) (dto.LoadOutput, error) {
	goals := domain.Goals{Commits: commits, Solved: solved}
	return h.usecase.SaveSettings(ctx, dto.SettingsInput{Goals: &goals})
}

func (h CLIHandler) SetPreset(ctx context.Context, preset string) (dto.LoadOutput, error) {
	goals, ok := domain.PresetGoals(preset)
	if !ok {
		return dto.LoadOutput{}, fmt.Errorf("%w: unknown preset %q", apperrors.ErrValidation, preset)
	}
	return h.usecase.SaveSettings(ctx, dto.SettingsInput{Goals: &goals})
}

// SetReminders replaces the reminder list; no times clears it.
func (h CLIHandler) SetReminders(ctx context.Context, times []string) (dto.LoadOutput, error) {
	reminders := append([]string{}, times...)
	return h.usecase.SaveSettings(ctx, dto.SettingsInput{Reminders: &reminders})
}

func (h CLIHandler) SetRepos(ctx context.Context, list string) (dto.LoadOutput, error) {
	repos := domain.ParseRepos(list)
	return h.usecase.SaveSettings(ctx, dto.SettingsInput{Repos: &repos})
}

func (h CLIHandler) SetAvatar(ctx context.Context, glyph string) (dto.LoadOutput, error) {
	return h.usecase.SaveSettings(ctx, dto.SettingsInput{Avatar: &glyph})
}

// SetHandles sends only the handles that were given.
func (h CLIHandler) SetHandles(ctx context.Context, github, leetcode *string) (dto.LoadOutput, error) {
	return h.usecase.SaveSettings(ctx, dto.SettingsInput{GitHubUsername: github, LeetCodeUsername: leetcode})
}
