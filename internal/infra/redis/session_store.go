package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

// SessionStore keeps sessions in Redis so several server processes can share
// logins. Each session is a JSON value under tce:session:{id}; a non-zero ttl
// expires idle sessions and is refreshed on every read.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, id string) (app.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return app.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return app.Session{}, fmt.Errorf("load session: %w", err)
	}

	var session app.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return app.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if s.ttl > 0 {
		// best-effort sliding expiry
		_ = s.client.Expire(ctx, s.key(id), s.ttl).Err()
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session app.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "tce:session:" + id
}
