package domain

// DefaultTimezone is used when the service does not report one.
const DefaultTimezone = "Europe/Kyiv"

type Streak struct {
	Current int
	Best    int
}

// SetupPrefill is what the service returns while handles are missing.
type SetupPrefill struct {
	GitHubUsername   string
	LeetCodeUsername string
	Goals            *Goals
	Avatar           string
}

// StatusSnapshot is the service's point-in-time report for today.
type StatusSnapshot struct {
	Date       string
	Timezone   string
	Counts     Counts
	Goals      Goals
	Streak     Streak
	Reminders  []string
	Repos      []string
	Avatar     string
	NeedsSetup bool
	Setup      SetupPrefill
}

type HistoryDay struct {
	Date   string
	Counts Counts
}

// Week is the history response: up to seven days in server order.
type Week struct {
	Timezone   string
	Days       []HistoryDay
	NeedsSetup bool
}

func (w Week) Zone() string {
	if w.Timezone == "" {
		return DefaultTimezone
	}
	return w.Timezone
}
