package memory

import (
	"context"
	"sync"

	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions live until logout or process exit.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]app.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]app.Session),
	}
}

func (s *SessionStore) Get(_ context.Context, id string) (app.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return app.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Save(_ context.Context, session app.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
