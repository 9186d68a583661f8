package settings_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
	"codestreak/internal/ui/views/settings"
)

func ptr[T any](v T) *T { return &v }

func loaded() dto.LoadOutput {
	return dto.LoadOutput{Status: &dto.StatusOutput{
		Goals:     domain.Goals{Commits: 2, Solved: 2},
		Reminders: []string{"09:00"},
		Repos:     []string{"alice/api", "alice/web"},
		Avatar:    "🦊",
	}}
}

func TestFormFromLoad(t *testing.T) {
	t.Parallel()
	want := settings.Form{
		Commits:   "2",
		Solved:    "2",
		Reminders: [2]string{"09:00", ""},
		Repos:     "alice/api, alice/web",
		Avatar:    "🦊",
	}
	if diff := cmp.Diff(want, settings.FormFromLoad(loaded())); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}

	setup := settings.FormFromLoad(dto.LoadOutput{Setup: &dto.SetupOutput{GitHubUsername: "octocat", Goals: domain.Goals{Commits: 2, Solved: 2}}})
	if setup.GitHub != "octocat" || setup.Avatar != domain.DefaultAvatar() {
		t.Fatalf("unexpected setup form %+v", setup)
	}
}

func TestBuildInputSendsOnlyChanges(t *testing.T) {
	t.Parallel()
	base := settings.FormFromLoad(loaded())
	current := base
	current.Repos = "alice/api,alice/web, "
	current.Avatar = "🐼"
	current.Reminders = [2]string{"09:00", "21:30"}

	got, err := settings.BuildInput(base, current, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := dto.SettingsInput{
		Avatar:    ptr("🐼"),
		Reminders: ptr([]string{"09:00", "21:30"}),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("input mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInputPresetAndHandles(t *testing.T) {
	t.Parallel()
	base := settings.FormFromLoad(loaded())
	current := base
	if !current.ApplyPreset(domain.PresetHigh) {
		t.Fatalf("high preset must exist")
	}
	current.GitHub = "octocat"

	got, err := settings.BuildInput(base, current, false)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := dto.SettingsInput{
		Goals:          &domain.Goals{Commits: 5, Solved: 4},
		GitHubUsername: ptr("octocat"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("input mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInputDuringSetupSendsBothHandles(t *testing.T) {
	t.Parallel()
	base := settings.Form{GitHub: "octocat", Commits: "2", Solved: "2", Avatar: "🐶"}
	got, err := settings.BuildInput(base, base, true)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got.GitHubUsername == nil || *got.GitHubUsername != "octocat" || got.LeetCodeUsername == nil || *got.LeetCodeUsername != "" {
		t.Fatalf("both handles must be sent during setup, got %+v", got)
	}
}

func TestBuildInputRejectsNonNumericGoals(t *testing.T) {
	t.Parallel()
	base := settings.FormFromLoad(loaded())
	current := base
	current.Solved = "two"
	if _, err := settings.BuildInput(base, current, false); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
