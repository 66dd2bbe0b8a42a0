package services

import (
	"sync"

	"github.com/vytor/lexiflash/internal/session"
)

// SessionStore keeps at most one active study session per profile.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*session.Ledger
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*session.Ledger)}
}

// Put replaces the profile's session.
func (s *SessionStore) Put(profileID int64, l *session.Ledger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[profileID] = l
}

// With runs fn on the profile's session while holding the store lock and
// reports whether a session existed.
func (s *SessionStore) With(profileID int64, fn func(*session.Ledger)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sessions[profileID]
	if !ok {
		return false
	}
	fn(l)
	return true
}

// Remove drops the profile's session and returns it.
func (s *SessionStore) Remove(profileID int64) (*session.Ledger, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sessions[profileID]
	delete(s.sessions, profileID)
	return l, ok
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
