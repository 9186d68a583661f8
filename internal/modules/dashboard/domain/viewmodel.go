package domain

import (
	"fmt"
	"math"
	"time"
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

// RingProgress is the filled fraction of a goal ring, always in [0,1].
func RingProgress(current, goal int) float64 {
	if goal <= 0 || current <= 0 {
		return 0
	}
	return math.Min(float64(current)/float64(goal), 1)
}

// RingDash returns the stroke length and offset of a ring of the given
// radius filled to ratio.
func RingDash(radius, ratio float64) (length, offset float64) {
	ratio = math.Max(0, math.Min(ratio, 1))
	length = 2 * math.Pi * math.Max(radius, 0)
	return length, length * (1 - ratio)
}

// HeatLevel buckets a day's count into five intensity levels.
func HeatLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count >= 4:
		return 4
	default:
		return count
	}
}

// HeatIntensity is the cell opacity for a count against a goal.
func HeatIntensity(count, goal int) float64 {
	if count <= 0 {
		return 0
	}
	ratio := 1.0
	if goal > 0 {
		ratio = math.Min(float64(count)/float64(goal), 1)
	}
	return 0.25 + ratio*0.6
}

func location(tz string) *time.Location {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func dayInZone(date, tz string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", date, err)
	}
	noon := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	return noon.In(location(tz)), nil
}

// WeekdaySlot maps a calendar day to its Monday-first slot (0..6) as seen
// from noon UTC in tz. Unknown zones fall back to UTC.
func WeekdaySlot(date, tz string) (int, error) {
	t, err := dayInZone(date, tz)
	if err != nil {
		return 0, err
	}
	return (int(t.Weekday()) + 6) % 7, nil
}

// Slot is one weekday cell of the heatmap; Filled is false when the service
// reported nothing for that weekday.
type Slot struct {
	Day    HistoryDay
	Filled bool
}

// SlotWeek places the week's days into Monday-first slots. Later days win
// when two land on the same weekday; undated entries are skipped.
func SlotWeek(days []HistoryDay, tz string) [7]Slot {
	var slots [7]Slot
	for _, day := range days {
		idx, err := WeekdaySlot(day.Date, tz)
		if err != nil {
			continue
		}
		slots[idx] = Slot{Day: day, Filled: true}
	}
	return slots
}

// WeekScore counts the days meeting the current goals. The denominator is
// never below seven. Past days are judged against today's goals, so
// changing goals reclassifies history.
func WeekScore(days []HistoryDay, goals Goals) (completed, considered int, ratio float64) {
	for _, day := range days {
		if goals.Met(day.Counts) {
			completed++
		}
	}
	considered = max(len(days), 7)
	return completed, considered, float64(completed) / float64(considered)
}

func WeekScoreLabel(completed, considered int) string {
	return fmt.Sprintf("%d/%d days completed", completed, considered)
}

// DayInsight is the per-day breakdown shown when a heatmap cell is opened.
type DayInsight struct {
	Date      string
	Counts    Counts
	Goals     Goals
	Remaining Counts
	Completed bool
	Recorded  bool
}

// Insight looks the day up in byDate (zero counts when absent) and measures
// it against goals.
func Insight(date string, byDate map[string]HistoryDay, goals Goals) DayInsight {
	day, ok := byDate[date]
	counts := day.Counts
	return DayInsight{
		Date:   date,
		Counts: counts,
		Goals:  goals,
		Remaining: Counts{
			Commits: max(goals.Commits-counts.Commits, 0),
			Solved:  max(goals.Solved-counts.Solved, 0),
		},
		Completed: goals.Met(counts),
		Recorded:  ok,
	}
}

// InsightTitle renders "Mon, 2026-10-19" with the weekday seen from tz.
func InsightTitle(date, tz string) string {
	if date == "" {
		return "Day"
	}
	t, err := dayInZone(date, tz)
	if err != nil {
		return date
	}
	return t.Format("Mon") + ", " + date
}

// InsightSuggestion is the nudge shown under a day breakdown.
func InsightSuggestion(completed bool) string {
	if completed {
		return "Nice — goals completed ✅"
	}
	return "Quick win: do 1 easy LC + small commit"
}

// RemainingLabel is "goal met" or "N left" for one metric of a day.
func RemainingLabel(left int) string {
	if left > 0 {
		return fmt.Sprintf("%d left", left)
	}
	return "goal met"
}

// Tooltip describes one heatmap cell; empty slots use an em placeholder.
func Tooltip(date string, count int, m Metric) string {
	if date == "" {
		date = "—"
	}
	return fmt.Sprintf("%s: %d %s", date, count, m.Unit(count))
}
