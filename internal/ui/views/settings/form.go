package settings

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
)

// Form is the raw text of the settings page.
type Form struct {
	GitHub    string
	LeetCode  string
	Commits   string
	Solved    string
	Reminders [domain.MaxReminders]string
	Repos     string
	Avatar    string
}

// FormFromLoad fills the form from a sync result: the setup prefill while
// handles are missing, the status otherwise.
func FormFromLoad(out dto.LoadOutput) Form {
	var f Form
	switch {
	case out.Setup != nil:
		f.GitHub = out.Setup.GitHubUsername
		f.LeetCode = out.Setup.LeetCodeUsername
		f.setGoals(out.Setup.Goals)
		f.Avatar = out.Setup.Avatar
	case out.Status != nil:
		f.setGoals(out.Status.Goals)
		copy(f.Reminders[:], out.Status.Reminders)
		f.Repos = strings.Join(out.Status.Repos, ", ")
		f.Avatar = out.Status.Avatar
	}
	if f.Avatar == "" {
		f.Avatar = domain.DefaultAvatar()
	}
	return f
}

func (f *Form) setGoals(g domain.Goals) {
	f.Commits = strconv.Itoa(g.Commits)
	f.Solved = strconv.Itoa(g.Solved)
}

// ApplyPreset overwrites the goal fields with a named preset.
func (f *Form) ApplyPreset(name string) bool {
	g, ok := domain.PresetGoals(name)
	if ok {
		f.setGoals(g)
	}
	return ok
}

// BuildInput diffs current against base and returns only what changed.
// While setup is pending both handles are always sent so that missing ones
// are reported.
func BuildInput(base, current Form, needsSetup bool) (dto.SettingsInput, error) {
	var in dto.SettingsInput

	if needsSetup || (current.GitHub != base.GitHub && strings.TrimSpace(current.GitHub) != "") {
		v := current.GitHub
		in.GitHubUsername = &v
	}
	if needsSetup || (current.LeetCode != base.LeetCode && strings.TrimSpace(current.LeetCode) != "") {
		v := current.LeetCode
		in.LeetCodeUsername = &v
	}

	if current.Commits != base.Commits || current.Solved != base.Solved {
		commits, err := goal("commit", current.Commits)
		if err != nil {
			return dto.SettingsInput{}, err
		}
		solved, err := goal("solved", current.Solved)
		if err != nil {
			return dto.SettingsInput{}, err
		}
		in.Goals = &domain.Goals{Commits: commits, Solved: solved}
	}

	if reminders := compact(current.Reminders[:]); !slices.Equal(reminders, compact(base.Reminders[:])) {
		in.Reminders = &reminders
	}
	if repos := domain.ParseRepos(current.Repos); !slices.Equal(repos, domain.ParseRepos(base.Repos)) {
		in.Repos = &repos
	}
	if current.Avatar != base.Avatar {
		v := current.Avatar
		in.Avatar = &v
	}
	return in, nil
}

func goal(label, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %s goal must be a whole number", apperrors.ErrValidation, label)
	}
	return n, nil
}

func compact(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
