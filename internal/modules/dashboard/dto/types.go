package dto

import (
	"time"

	"codestreak/internal/modules/dashboard/domain"
)

type RingOutput struct {
	Metric   domain.Metric `json:"metric" yaml:"metric"`
	Current  int           `json:"current" yaml:"current"`
	Goal     int           `json:"goal" yaml:"goal"`
	Progress float64       `json:"progress" yaml:"progress"`
}

// CelebrationOutput is a one-shot burst to animate next to a ring.
type CelebrationOutput struct {
	Metric  domain.Metric `json:"metric" yaml:"metric"`
	Palette []string      `json:"palette" yaml:"palette"`
}

type StatusOutput struct {
	Date         string              `json:"date" yaml:"date"`
	Timezone     string              `json:"timezone" yaml:"timezone"`
	Counts       domain.Counts       `json:"counts" yaml:"counts"`
	Goals        domain.Goals        `json:"goals" yaml:"goals"`
	Rings        []RingOutput        `json:"rings" yaml:"rings"`
	StreakCur    int                 `json:"current_streak" yaml:"current_streak"`
	StreakBest   int                 `json:"best_streak" yaml:"best_streak"`
	Reminders    []string            `json:"reminders" yaml:"reminders"`
	Repos        []string            `json:"repos" yaml:"repos"`
	Avatar       string              `json:"avatar" yaml:"avatar"`
	Celebrations []CelebrationOutput `json:"celebrations,omitempty" yaml:"celebrations,omitempty"`
}

type SetupOutput struct {
	GitHubUsername   string       `json:"github_username" yaml:"github_username"`
	LeetCodeUsername string       `json:"leetcode_username" yaml:"leetcode_username"`
	Goals            domain.Goals `json:"goals" yaml:"goals"`
	Avatar           string       `json:"avatar" yaml:"avatar"`
	Message          string       `json:"message" yaml:"message"`
}

type CellOutput struct {
	Date    string  `json:"date,omitempty" yaml:"date,omitempty"`
	Count   int     `json:"count" yaml:"count"`
	Level   int     `json:"level" yaml:"level"`
	Alpha   float64 `json:"alpha" yaml:"alpha"`
	Tooltip string  `json:"tooltip" yaml:"tooltip"`
	Filled  bool    `json:"filled" yaml:"filled"`
}

type HeatmapRow struct {
	Metric domain.Metric `json:"metric" yaml:"metric"`
	Cells  [7]CellOutput `json:"cells" yaml:"cells"`
}

type HeatmapOutput struct {
	Timezone  string       `json:"timezone" yaml:"timezone"`
	Rows      []HeatmapRow `json:"rows" yaml:"rows"`
	Completed int          `json:"completed" yaml:"completed"`
	Days      int          `json:"days" yaml:"days"`
	Score     float64      `json:"score" yaml:"score"`
	Label     string       `json:"label" yaml:"label"`
}

// LoadOutput is the result of one pass of the sync protocol. Status and
// Heatmap are nil when that part was not rendered; HeatmapMessage replaces
// the heatmap when history could not be shown.
//
// Stale means the status response was superseded and nothing was applied.
// HistoryStale means only the history response was superseded: Status was
// committed and its Celebrations fired, so they must still be shown.
// Generation orders results of the same session; a renderer that already
// shows a newer one keeps its status and only plays the celebrations.
type LoadOutput struct {
	Generation     uint64         `json:"-" yaml:"-"`
	Mode           domain.Mode    `json:"mode" yaml:"mode"`
	Redirected     bool           `json:"redirected,omitempty" yaml:"redirected,omitempty"`
	Stale          bool           `json:"stale,omitempty" yaml:"stale,omitempty"`
	HistoryStale   bool           `json:"history_stale,omitempty" yaml:"history_stale,omitempty"`
	Status         *StatusOutput  `json:"status,omitempty" yaml:"status,omitempty"`
	Setup          *SetupOutput   `json:"setup,omitempty" yaml:"setup,omitempty"`
	Heatmap        *HeatmapOutput `json:"heatmap,omitempty" yaml:"heatmap,omitempty"`
	HeatmapMessage string         `json:"heatmap_message,omitempty" yaml:"heatmap_message,omitempty"`
	SyncedAt       time.Time      `json:"synced_at" yaml:"synced_at"`
}

type InsightOutput struct {
	Title      string        `json:"title" yaml:"title"`
	Date       string        `json:"date" yaml:"date"`
	Counts     domain.Counts `json:"counts" yaml:"counts"`
	Goals      domain.Goals  `json:"goals" yaml:"goals"`
	Remaining  domain.Counts `json:"remaining" yaml:"remaining"`
	Completed  bool          `json:"completed" yaml:"completed"`
	Suggestion string        `json:"suggestion" yaml:"suggestion"`
}

// SettingsInput mirrors domain.SettingsPatch: nil fields are not sent.
type SettingsInput struct {
	Goals            *domain.Goals
	Reminders        *[]string
	Repos            *[]string
	Avatar           *string
	GitHubUsername   *string
	LeetCodeUsername *string
}

type SessionOutput struct {
	ID         string
	Mode       domain.Mode
	Goals      domain.Goals
	Avatar     string
	NeedsSetup bool
	Busy       bool
}
