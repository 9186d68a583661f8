package service

import (
	"sync"

	"codestreak/internal/modules/dashboard/domain"
)

// Store caches the last known-good server state of a session. Writers
// replace whole values; nothing is patched in place.
type Store struct {
	mu           sync.RWMutex
	goals        domain.Goals
	avatar       string
	celebrations domain.Celebrations
	needsSetup   bool
	status       *domain.StatusSnapshot
	week         *domain.Week
	byDate       map[string]domain.HistoryDay
}

func NewStore() *Store {
	return &Store{
		avatar:       domain.DefaultAvatar(),
		celebrations: domain.NewCelebrations(),
		byDate:       map[string]domain.HistoryDay{},
	}
}

// ApplyStatus stores a complete snapshot and, when celebrate is set, runs
// the celebration machine against it. It returns the metrics that fired.
func (s *Store) ApplyStatus(snap domain.StatusSnapshot, celebrate bool) []domain.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = snap.Goals
	if snap.Avatar != "" {
		s.avatar = snap.Avatar
	}
	s.needsSetup = false
	cp := snap
	cp.Reminders = append([]string(nil), snap.Reminders...)
	cp.Repos = append([]string(nil), snap.Repos...)
	s.status = &cp

	if !celebrate {
		return nil
	}
	var fired []domain.Metric
	for _, m := range domain.Metrics {
		if s.celebrations.Evaluate(m, snap.Counts.Value(m), snap.Goals.Target(m)) {
			fired = append(fired, m)
		}
	}
	return fired
}

// ApplySetup records that handles are missing and keeps whatever prefill
// the service sent.
func (s *Store) ApplySetup(prefill domain.SetupPrefill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.needsSetup = true
	if prefill.Goals != nil {
		s.goals = *prefill.Goals
	}
	if prefill.Avatar != "" {
		s.avatar = prefill.Avatar
	}
}

func (s *Store) ApplyWeek(week domain.Week) {
	byDate := make(map[string]domain.HistoryDay, len(week.Days))
	for _, day := range week.Days {
		byDate[day.Date] = day
	}
	cp := week
	cp.Days = append([]domain.HistoryDay(nil), week.Days...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.week = &cp
	s.byDate = byDate
}

func (s *Store) Goals() domain.Goals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals
}

func (s *Store) Avatar() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.avatar
}

func (s *Store) NeedsSetup() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.needsSetup
}

func (s *Store) Celebrated(m domain.Metric) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.celebrations.Fired(m)
}

// Week returns the cached history and its goals as one consistent read.
func (s *Store) Week() (domain.Week, domain.Goals, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.week == nil {
		return domain.Week{}, s.goals, false
	}
	return *s.week, s.goals, true
}

func (s *Store) Insight(date string) (domain.DayInsight, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tz := domain.DefaultTimezone
	if s.week != nil {
		tz = s.week.Zone()
	}
	return domain.Insight(date, s.byDate, s.goals), tz
}

// State is a comparable copy of the user-visible store contents.
type State struct {
	Goals      domain.Goals
	Avatar     string
	NeedsSetup bool
	Celebrated map[domain.Metric]bool
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	celebrated := map[domain.Metric]bool{}
	for _, m := range domain.Metrics {
		celebrated[m] = s.celebrations.Fired(m)
	}
	return State{Goals: s.goals, Avatar: s.avatar, NeedsSetup: s.needsSetup, Celebrated: celebrated}
}
