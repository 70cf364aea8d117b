package bot

import (
	"sync"

	"github.com/finbuddy/finbot/internal/models"
)

// SessionStore holds per-user conversation context. Sessions are
// in-memory only; there is nothing to persist across restarts.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*models.Session
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*models.Session),
	}
}

// Get returns the user's session, creating an idle one if absent
func (s *SessionStore) Get(userID int64) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		session = &models.Session{UserID: userID}
		s.sessions[userID] = session
	}
	return session
}

// Update applies fn to the user's session under the lock
func (s *SessionStore) Update(userID int64, fn func(*models.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		session = &models.Session{UserID: userID}
		s.sessions[userID] = session
	}
	fn(session)
}

// Snapshot returns a copy of the user's session state for reading
// outside the lock. The Overview pointer is shared; it is written once
// at step 1 and read-only afterwards.
func (s *SessionStore) Snapshot(userID int64) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return *session
	}
	return models.Session{UserID: userID}
}

// Clear discards the user's session
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
