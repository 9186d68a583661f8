package service

import (
	"sync"
	"sync/atomic"
	"time"

	"codestreak/internal/modules/dashboard/domain"
)

// Session is the context object of one page load: its mode, identity,
// busy gate and cached state. It ends on hard navigation.
type Session struct {
	ID    string
	Mode  domain.Mode
	Token string
	Store *Store
	Gate  *Gate

	generation atomic.Uint64
	ended      atomic.Bool
	commitMu   sync.Mutex

	mu       sync.Mutex
	syncedAt time.Time
}

func NewSession(id string, mode domain.Mode, token string, gate *Gate) *Session {
	if gate == nil {
		gate = NewGate()
	}
	return &Session{ID: id, Mode: mode, Token: token, Store: NewStore(), Gate: gate}
}

func (s *Session) HasIdentity() bool {
	return s.Token != ""
}

// Begin opens a new sync generation; responses tagged with an older one
// are stale.
func (s *Session) Begin() uint64 {
	return s.generation.Add(1)
}

func (s *Session) Current(gen uint64) bool {
	return s.generation.Load() == gen
}

// Commit runs apply only if gen is still the newest generation. The check
// and the write happen under one lock so two responses never interleave.
func (s *Session) Commit(gen uint64, apply func()) bool {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	if !s.Current(gen) || s.Ended() {
		return false
	}
	apply()
	return true
}

func (s *Session) End() {
	s.ended.Store(true)
}

func (s *Session) Ended() bool {
	return s.ended.Load()
}

func (s *Session) MarkSynced(at time.Time) {
	s.mu.Lock()
	s.syncedAt = at
	s.mu.Unlock()
}

func (s *Session) SyncedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncedAt
}
