package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"tce-quiz-dashboard/internal/domain"
)

// Service contains the dashboard use cases. Every action loads what it needs
// from the stores, mutates, and persists before returning; the stores are the
// only shared state between sessions.
type Service struct {
	users     UserStore
	questions QuestionStore
	responses ResponseStore
	images    ImageStore
	sessions  SessionRepository
	feed      *Feed
	now       func() time.Time
	newID     func() string

	// guards every store access within this process; a plain mutex because
	// loading a corrupt document rewrites it
	mu sync.Mutex
}

func NewService(stores Stores, sessions SessionRepository, feed *Feed) *Service {
	return NewServiceWithClock(stores, sessions, feed, time.Now)
}

// NewServiceWithClock is used by tests for deterministic timestamps.
func NewServiceWithClock(stores Stores, sessions SessionRepository, feed *Feed, now func() time.Time) *Service {
	if feed == nil {
		feed = NewFeed()
	}
	return &Service{
		users:     stores.Users,
		questions: stores.Questions,
		responses: stores.Responses,
		images:    stores.Images,
		sessions:  sessions,
		feed:      feed,
		now:       now,
		newID:     uuid.NewString,
	}
}

// Register creates a student account.
func (s *Service) Register(ctx context.Context, username, password string, batch domain.Batch) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	if domain.IsReservedUsername(username) {
		return domain.User{}, domain.ErrReservedName
	}
	if !batch.Valid() {
		return domain.User{}, fmt.Errorf("%w: unknown batch %q", domain.ErrValidation, batch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return domain.User{}, domain.ErrDuplicateUser
		}
	}

	user := domain.User{Username: username, Password: password, Batch: batch}
	if err := s.users.Add(ctx, user); err != nil {
		return domain.User{}, err
	}
	log.Printf("registered %s in %s", username, batch)
	return user, nil
}

// Login checks the built-in admin first, then registered students, and opens
// a session for the matching identity.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	identity, err := s.authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	session := Session{ID: s.newID(), User: &identity, CreatedAt: s.now()}
	if err := s.sessions.Save(ctx, session); err != nil {
		return Session{}, err
	}
	log.Printf("login %s (admin=%t)", identity.Username, identity.Admin)
	return session, nil
}

func (s *Service) authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	if username == domain.AdminUsername && password == domain.AdminPassword {
		return domain.Identity{Username: domain.AdminUsername, Admin: true}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return domain.Identity{}, err
	}
	for _, u := range users {
		if u.Username == username && u.Password == password {
			return domain.Identity{Username: u.Username, Batch: u.Batch}, nil
		}
	}
	return domain.Identity{}, domain.ErrAuth
}

// Logout drops the session, returning the client to the login view.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentSession resolves a session id to its session.
func (s *Service) CurrentSession(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, domain.ErrUnauthenticated
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.User == nil {
		return Session{}, domain.ErrUnauthenticated
	}
	return session, nil
}

// snapshot loads the three collections, downgrading resets to warnings.
// Callers hold s.mu.
func (s *Service) snapshot(ctx context.Context) ([]domain.User, []domain.Question, []domain.Response, error) {
	users, err := s.users.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return nil, nil, nil, err
	}
	questions, err := s.questions.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return nil, nil, nil, err
	}
	responses, err := s.responses.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return nil, nil, nil, err
	}
	return users, questions, responses, nil
}
