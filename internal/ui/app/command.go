package app

import (
	"fmt"
	"strconv"
	"strings"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
)

// Command is a parsed palette line. Save is set for commands that change
// settings.
type Command struct {
	Name string
	Arg  string
	Save *dto.SettingsInput
}

// ParseCommand turns a palette line into a command. Values are checked by
// the settings round-trip, not here.
func ParseCommand(input string) (Command, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{}, nil
	}
	name, args := parts[0], parts[1:]
	cmd := Command{Name: name}
	switch name {
	case "refresh":
	case "insight", "link":
		if len(args) != 1 {
			return Command{}, usage(name)
		}
		cmd.Arg = args[0]
	case "goals":
		if len(args) != 2 {
			return Command{}, usage(name)
		}
		commits, err1 := strconv.Atoi(args[0])
		solved, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return Command{}, fmt.Errorf("%w: goals must be whole numbers", apperrors.ErrValidation)
		}
		cmd.Save = &dto.SettingsInput{Goals: &domain.Goals{Commits: commits, Solved: solved}}
	case "preset":
		if len(args) != 1 {
			return Command{}, usage(name)
		}
		goals, ok := domain.PresetGoals(args[0])
		if !ok {
			return Command{}, fmt.Errorf("%w: unknown preset %q", apperrors.ErrValidation, args[0])
		}
		cmd.Save = &dto.SettingsInput{Goals: &goals}
	case "reminders":
		reminders := append([]string{}, args...)
		cmd.Save = &dto.SettingsInput{Reminders: &reminders}
	case "repos":
		repos := domain.ParseRepos(strings.Join(args, ","))
		cmd.Save = &dto.SettingsInput{Repos: &repos}
	case "avatar":
		if len(args) != 1 {
			return Command{}, usage(name)
		}
		cmd.Save = &dto.SettingsInput{Avatar: &args[0]}
	case "handles":
		if len(args) != 2 {
			return Command{}, usage(name)
		}
		cmd.Save = &dto.SettingsInput{GitHubUsername: &args[0], LeetCodeUsername: &args[1]}
	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", apperrors.ErrValidation, name)
	}
	return cmd, nil
}

func usage(name string) error {
	return fmt.Errorf("%w: wrong arguments for %s", apperrors.ErrValidation, name)
}
