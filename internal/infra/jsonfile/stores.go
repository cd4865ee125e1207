package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"tce-quiz-dashboard/internal/domain"
)

// File names inside the data directory.
const (
	UsersFile     = "users.json"
	QuestionsFile = "questions.json"
	ResponsesFile = "responses.json"
)

// loadForWrite tolerates a corrupt document: it has already been reset, so the
// caller appends to the default and the warning is dropped.
func loadForWrite[T any](path string, def T) (T, error) {
	doc, err := Load(path, def)
	if err != nil && !errors.Is(err, domain.ErrStorageCorrupt) {
		return doc, err
	}
	return doc, nil
}

// UserStore keeps registered students in users.json.
type UserStore struct {
	path string
}

func NewUserStore(dir string) *UserStore {
	return &UserStore{path: filepath.Join(dir, UsersFile)}
}

func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	return Load(s.path, []domain.User{})
}

func (s *UserStore) Add(_ context.Context, user domain.User) error {
	users, err := loadForWrite(s.path, []domain.User{})
	if err != nil {
		return err
	}
	return Save(s.path, append(users, user))
}

// QuestionStore keeps authored questions in questions.json.
type QuestionStore struct {
	path string
}

func NewQuestionStore(dir string) *QuestionStore {
	return &QuestionStore{path: filepath.Join(dir, QuestionsFile)}
}

func (s *QuestionStore) List(_ context.Context) ([]domain.Question, error) {
	return Load(s.path, []domain.Question{})
}

func (s *QuestionStore) Add(_ context.Context, q domain.Question) error {
	questions, err := loadForWrite(s.path, []domain.Question{})
	if err != nil {
		return err
	}
	return Save(s.path, append(questions, q))
}

// Replace overwrites the question at index (0-based).
func (s *QuestionStore) Replace(_ context.Context, index int, q domain.Question) error {
	questions, err := loadForWrite(s.path, []domain.Question{})
	if err != nil {
		return err
	}
	if index < 0 || index >= len(questions) {
		return fmt.Errorf("%w: index %d", domain.ErrQuestionNotFound, index)
	}
	questions[index] = q
	return Save(s.path, questions)
}

// ResponseStore keeps the append-only answer log in responses.json.
type ResponseStore struct {
	path string
}

func NewResponseStore(dir string) *ResponseStore {
	return &ResponseStore{path: filepath.Join(dir, ResponsesFile)}
}

func (s *ResponseStore) List(_ context.Context) ([]domain.Response, error) {
	return Load(s.path, []domain.Response{})
}

func (s *ResponseStore) Add(_ context.Context, r domain.Response) error {
	responses, err := loadForWrite(s.path, []domain.Response{})
	if err != nil {
		return err
	}
	return Save(s.path, append(responses, r))
}
