package service_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/service"
)

func snapshot(commits, solved int, goals domain.Goals) domain.StatusSnapshot {
	return domain.StatusSnapshot{
		Date:     "2026-10-19",
		Timezone: "Europe/Kyiv",
		Counts:   domain.Counts{Commits: commits, Solved: solved},
		Goals:    goals,
	}
}

func TestStoreStartsEmptyWithDefaultAvatar(t *testing.T) {
	t.Parallel()
	store := service.NewStore()
	want := service.State{
		Avatar:     "🐶",
		Celebrated: map[domain.Metric]bool{domain.MetricCommits: false, domain.MetricSolved: false},
	}
	if diff := cmp.Diff(want, store.State()); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
	if _, _, ok := store.Week(); ok {
		t.Fatalf("new store must not have history")
	}
}

func TestStoreApplyStatusReplacesGoalsAndCelebratesOnce(t *testing.T) {
	t.Parallel()
	store := service.NewStore()
	goals := domain.Goals{Commits: 2, Solved: 2}

	if fired := store.ApplyStatus(snapshot(1, 2, goals), true); len(fired) != 1 || fired[0] != domain.MetricSolved {
		t.Fatalf("expected only solved to fire, got %v", fired)
	}
	if fired := store.ApplyStatus(snapshot(2, 3, goals), true); len(fired) != 1 || fired[0] != domain.MetricCommits {
		t.Fatalf("expected only commits to fire, got %v", fired)
	}
	if fired := store.ApplyStatus(snapshot(3, 4, goals), true); len(fired) != 0 {
		t.Fatalf("nothing may fire twice, got %v", fired)
	}

	next := snapshot(0, 0, domain.Goals{Commits: 5, Solved: 4})
	next.Avatar = "🦊"
	store.ApplyStatus(next, true)
	if store.Goals() != (domain.Goals{Commits: 5, Solved: 4}) || store.Avatar() != "🦊" {
		t.Fatalf("expected goals and avatar replaced, got %+v %s", store.Goals(), store.Avatar())
	}
	if !store.Celebrated(domain.MetricCommits) || !store.Celebrated(domain.MetricSolved) {
		t.Fatalf("celebrations must survive later snapshots")
	}
}

func TestStoreApplyStatusWithoutCelebrationKeepsFlags(t *testing.T) {
	t.Parallel()
	store := service.NewStore()
	if fired := store.ApplyStatus(snapshot(9, 9, domain.DefaultGoals()), false); fired != nil {
		t.Fatalf("expected no celebrations, got %v", fired)
	}
	if store.Celebrated(domain.MetricCommits) {
		t.Fatalf("celebration flag set without evaluation")
	}
}

func TestStoreSetupAndWeek(t *testing.T) {
	t.Parallel()
	store := service.NewStore()
	store.ApplySetup(domain.SetupPrefill{Goals: &domain.Goals{Commits: 1, Solved: 1}, Avatar: "🐼"})
	if !store.NeedsSetup() || store.Goals() != (domain.Goals{Commits: 1, Solved: 1}) || store.Avatar() != "🐼" {
		t.Fatalf("unexpected state after setup prefill: %+v", store.State())
	}
	store.ApplyStatus(snapshot(0, 0, domain.DefaultGoals()), false)
	if store.NeedsSetup() {
		t.Fatalf("a complete snapshot clears needs-setup")
	}

	store.ApplyWeek(domain.Week{Timezone: "UTC", Days: []domain.HistoryDay{
		{Date: "2026-10-19", Counts: domain.Counts{Commits: 2, Solved: 1}},
	}})
	insight, tz := store.Insight("2026-10-19")
	if tz != "UTC" || insight.Remaining != (domain.Counts{Solved: 1}) || !insight.Recorded {
		t.Fatalf("unexpected insight %+v in %s", insight, tz)
	}
	week, goals, ok := store.Week()
	if !ok || len(week.Days) != 1 || goals != domain.DefaultGoals() {
		t.Fatalf("unexpected week %+v goals %+v", week, goals)
	}
}
