package app

import (
	"context"
	"io"
	"time"

	"tce-quiz-dashboard/internal/domain"
)

// UserStore persists registered students (JSON file, Postgres, ...).
type UserStore interface {
	List(ctx context.Context) ([]domain.User, error)
	Add(ctx context.Context, user domain.User) error
}

// QuestionStore persists authored questions in creation order.
type QuestionStore interface {
	List(ctx context.Context) ([]domain.Question, error)
	Add(ctx context.Context, q domain.Question) error
	Replace(ctx context.Context, index int, q domain.Question) error
}

// ResponseStore persists the append-only answer log.
type ResponseStore interface {
	List(ctx context.Context) ([]domain.Response, error)
	Add(ctx context.Context, r domain.Response) error
}

// ImageStore saves uploaded question images and returns the path to record.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// SessionRepository abstracts how sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}

// Session is one client's interactive run. It holds at most one current user;
// a logged-out client simply has no session.
type Session struct {
	ID        string           `json:"id"`
	User      *domain.Identity `json:"user"`
	CreatedAt time.Time        `json:"createdAt"`
}

// IsAdmin reports whether the current user is the built-in admin.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Admin
}

// Stores bundles the persistence the service depends on.
type Stores struct {
	Users     UserStore
	Questions QuestionStore
	Responses ResponseStore
	Images    ImageStore
}
