package out

import "codestreak/internal/modules/dashboard/domain"

type wireGoals struct {
	Commits int `json:"github_commits"`
	Solved  int `json:"leetcode_solved"`
}

type wireStreak struct {
	Current int `json:"current_streak"`
	Best    int `json:"best_streak"`
}

// wireStatus covers both shapes of /api/status; the setup variant only
// fills the handle fields and an optional goals prefill.
type wireStatus struct {
	NeedsSetup       bool       `json:"needs_setup"`
	Date             string     `json:"date"`
	Timezone         string     `json:"timezone"`
	Commits          int        `json:"github_commits"`
	Solved           int        `json:"leetcode_solved"`
	Goals            *wireGoals `json:"goals"`
	Streak           wireStreak `json:"streak"`
	Reminders        []string   `json:"reminders"`
	Repos            []string   `json:"repos"`
	Avatar           string     `json:"avatar"`
	GitHubUsername   string     `json:"github_username"`
	LeetCodeUsername string     `json:"leetcode_username"`
}

func (w wireStatus) toDomain() domain.StatusSnapshot {
	if w.NeedsSetup {
		prefill := domain.SetupPrefill{
			GitHubUsername:   w.GitHubUsername,
			LeetCodeUsername: w.LeetCodeUsername,
			Avatar:           w.Avatar,
		}
		if w.Goals != nil {
			g := domain.Goals{Commits: w.Goals.Commits, Solved: w.Goals.Solved}
			prefill.Goals = &g
		}
		return domain.StatusSnapshot{NeedsSetup: true, Avatar: w.Avatar, Setup: prefill}
	}
	snap := domain.StatusSnapshot{
		Date:      w.Date,
		Timezone:  w.Timezone,
		Counts:    domain.Counts{Commits: w.Commits, Solved: w.Solved},
		Streak:    domain.Streak{Current: w.Streak.Current, Best: w.Streak.Best},
		Reminders: w.Reminders,
		Repos:     w.Repos,
		Avatar:    w.Avatar,
	}
	if w.Goals != nil {
		snap.Goals = domain.Goals{Commits: w.Goals.Commits, Solved: w.Goals.Solved}
	}
	return snap
}

type wireDay struct {
	Date     string `json:"date"`
	GitHub   int    `json:"github"`
	LeetCode int    `json:"leetcode"`
}

type wireHistory struct {
	Timezone   string    `json:"tz"`
	Days       []wireDay `json:"days"`
	NeedsSetup bool      `json:"needs_setup"`
}

func (w wireHistory) toDomain() domain.Week {
	week := domain.Week{Timezone: w.Timezone, NeedsSetup: w.NeedsSetup}
	for _, d := range w.Days {
		week.Days = append(week.Days, domain.HistoryDay{
			Date:   d.Date,
			Counts: domain.Counts{Commits: d.GitHub, Solved: d.LeetCode},
		})
	}
	return week
}

// wirePatch is the settings body; omitted fields are left unchanged by the
// service, so every field is a pointer.
type wirePatch struct {
	Goals            *wireGoals `json:"goals,omitempty"`
	Reminders        *[]string  `json:"reminders,omitempty"`
	Repos            *[]string  `json:"repos,omitempty"`
	Avatar           *string    `json:"avatar,omitempty"`
	GitHubUsername   *string    `json:"github_username,omitempty"`
	LeetCodeUsername *string    `json:"leetcode_username,omitempty"`
}

func patchFromDomain(p domain.SettingsPatch) wirePatch {
	out := wirePatch{
		Reminders:        p.Reminders,
		Repos:            p.Repos,
		Avatar:           p.Avatar,
		GitHubUsername:   p.GitHubUsername,
		LeetCodeUsername: p.LeetCodeUsername,
	}
	if p.Goals != nil {
		out.Goals = &wireGoals{Commits: p.Goals.Commits, Solved: p.Goals.Solved}
	}
	return out
}

type wireAck struct {
	OK bool `json:"ok"`
}
