package app_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
	"codestreak/internal/ui/app"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()
	avatar := "🐼"
	empty := []string{}
	repos := []string{"a/b", "c/d"}
	tests := []struct {
		input string
		want  app.Command
	}{
		{"", app.Command{}},
		{"refresh", app.Command{Name: "refresh"}},
		{"insight 2026-10-19", app.Command{Name: "insight", Arg: "2026-10-19"}},
		{"link status", app.Command{Name: "link", Arg: "status"}},
		{"goals 3 1", app.Command{Name: "goals", Save: &dto.SettingsInput{Goals: &domain.Goals{Commits: 3, Solved: 1}}}},
		{"preset normal", app.Command{Name: "preset", Save: &dto.SettingsInput{Goals: &domain.Goals{Commits: 2, Solved: 2}}}},
		{"reminders", app.Command{Name: "reminders", Save: &dto.SettingsInput{Reminders: &empty}}},
		{"repos a/b, c/d a/b", app.Command{Name: "repos", Save: &dto.SettingsInput{Repos: &repos}}},
		{"avatar 🐼", app.Command{Name: "avatar", Save: &dto.SettingsInput{Avatar: &avatar}}},
	}
	for _, tt := range tests {
		got, err := app.ParseCommand(tt.input)
		if err != nil {
			t.Fatalf("%q: %v", tt.input, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseCommandRejectsBadInput(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"goals 3", "goals x 1", "preset extreme", "insight", "handles octocat", "dance"} {
		if _, err := app.ParseCommand(input); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("%q: expected validation error, got %v", input, err)
		}
	}
}
