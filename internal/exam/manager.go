package exam

import (
	"fmt"
	"sync"
)

// Manager tracks at most one live session per (user, course) pair. Starting
// a new attempt abandons and replaces the previous one — a restart is a
// brand-new session, never a reset of the old state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func sessionKey(userID, courseID int64) string {
	return fmt.Sprintf("%d:%d", userID, courseID)
}

// Put registers a session, abandoning any previous one for the same
// user/course pair.
func (m *Manager) Put(s *Session) {
	key := sessionKey(s.userID, s.courseID)

	m.mu.Lock()
	prev := m.sessions[key]
	m.sessions[key] = s
	m.mu.Unlock()

	if prev != nil {
		prev.Abandon()
	}
}

// Get returns the session for a user/course pair, if any.
func (m *Manager) Get(userID, courseID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionKey(userID, courseID)]
	return s, ok
}

// Remove abandons and drops the session for a user/course pair. Used when
// the user leaves the exam without finishing.
func (m *Manager) Remove(userID, courseID int64) {
	key := sessionKey(userID, courseID)

	m.mu.Lock()
	s := m.sessions[key]
	delete(m.sessions, key)
	m.mu.Unlock()

	if s != nil {
		s.Abandon()
	}
}
