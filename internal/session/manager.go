package session

import "sync"

type key struct {
	chatID int64
	userID int64
}

// Manager hands out sessions keyed by (chat, user), creating them on first
// interaction. Sessions are never evicted; an abandoned wizard leaves an
// idle session behind.
type Manager struct {
	mu       sync.RWMutex
	sessions map[key]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[key]*Session)}
}

// Get returns the session for the pair, creating a fresh main-menu session
// if none exists yet.
func (m *Manager) Get(chatID, userID int64) *Session {
	k := key{chatID: chatID, userID: userID}

	m.mu.RLock()
	s, ok := m.sessions[k]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[k]; ok {
		return s
	}
	s = &Session{ChatID: chatID, UserID: userID, State: StateMainMenu}
	m.sessions[k] = s
	return s
}

// Len reports how many sessions exist.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
