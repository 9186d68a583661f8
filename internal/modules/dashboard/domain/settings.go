package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "codestreak/internal/platform/errors"
)

const MaxReminders = 2

// SettingsPatch carries only the fields a user changed. Nil means
// "leave as is"; a non-nil empty slice clears the list.
type SettingsPatch struct {
	Goals            *Goals
	Reminders        *[]string
	Repos            *[]string
	Avatar           *string
	GitHubUsername   *string
	LeetCodeUsername *string
}

func (p SettingsPatch) IsEmpty() bool {
	return p.Goals == nil && p.Reminders == nil && p.Repos == nil &&
		p.Avatar == nil && p.GitHubUsername == nil && p.LeetCodeUsername == nil
}

func (p SettingsPatch) HasHandles() bool {
	return p.GitHubUsername != nil || p.LeetCodeUsername != nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperrors.ErrValidation}, args...)...)
}

// NormalizeReminder accepts H:MM or HH:MM and returns HH:MM.
func NormalizeReminder(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return "", invalid("reminder %q: expected HH:MM", value)
	}
	hour, herr := strconv.Atoi(parts[0])
	minute, merr := strconv.Atoi(parts[1])
	if herr != nil || merr != nil {
		return "", invalid("reminder %q: expected HH:MM", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", invalid("reminder %q: time out of range", value)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ParseRepos splits a comma separated list of repositories.
func ParseRepos(text string) []string {
	return NormalizeRepos(strings.Split(text, ","))
}

// NormalizeRepos trims entries and drops blanks and duplicates, keeping the
// first occurrence.
func NormalizeRepos(repos []string) []string {
	out := make([]string, 0, len(repos))
	seen := map[string]bool{}
	for _, r := range repos {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// Normalize validates the patch and returns the cleaned copy to send.
// While setup is pending a patch that sets one handle must set both;
// patches without handles are accepted as they are.
func (p SettingsPatch) Normalize(needsSetup bool) (SettingsPatch, error) {
	if p.IsEmpty() {
		return SettingsPatch{}, invalid("nothing to save")
	}
	out := SettingsPatch{}
	if p.Goals != nil {
		if p.Goals.Commits < 0 || p.Goals.Solved < 0 {
			return SettingsPatch{}, invalid("goals must be zero or more")
		}
		g := *p.Goals
		out.Goals = &g
	}
	if p.Reminders != nil {
		reminders := make([]string, 0, len(*p.Reminders))
		for _, r := range *p.Reminders {
			if strings.TrimSpace(r) == "" {
				continue
			}
			n, err := NormalizeReminder(r)
			if err != nil {
				return SettingsPatch{}, err
			}
			reminders = append(reminders, n)
		}
		if len(reminders) > MaxReminders {
			return SettingsPatch{}, invalid("at most %d reminders allowed", MaxReminders)
		}
		out.Reminders = &reminders
	}
	if p.Repos != nil {
		repos := NormalizeRepos(*p.Repos)
		out.Repos = &repos
	}
	if p.Avatar != nil {
		if !IsAvatar(*p.Avatar) {
			return SettingsPatch{}, invalid("unknown avatar %q", *p.Avatar)
		}
		a := *p.Avatar
		out.Avatar = &a
	}
	pairRequired := needsSetup && (p.GitHubUsername != nil || p.LeetCodeUsername != nil)
	var err error
	if out.GitHubUsername, err = handle("GitHub", p.GitHubUsername, pairRequired); err != nil {
		return SettingsPatch{}, err
	}
	if out.LeetCodeUsername, err = handle("LeetCode", p.LeetCodeUsername, pairRequired); err != nil {
		return SettingsPatch{}, err
	}
	return out, nil
}

func handle(label string, value *string, required bool) (*string, error) {
	if value == nil {
		if required {
			return nil, invalid("%s username is required", label)
		}
		return nil, nil
	}
	v := strings.TrimPrefix(strings.TrimSpace(*value), "@")
	if v == "" {
		return nil, invalid("%s username is required", label)
	}
	return &v, nil
}
