package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"tce-quiz-dashboard/internal/domain"
)

// QuestionInput is the admin's "Question Save" form.
type QuestionInput struct {
	Text    string
	Type    domain.QuestionType
	Options []string
	Answer  string
	Batch   domain.Batch

	// ImageName and Image are set when an image was uploaded.
	ImageName string
	Image     io.Reader
}

func (in QuestionInput) validate() error {
	if strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("%w: question text is required", domain.ErrValidation)
	}
	if in.Batch != "" && !in.Batch.Valid() {
		return fmt.Errorf("%w: unknown batch %q", domain.ErrValidation, in.Batch)
	}
	if in.Answer == "" {
		return fmt.Errorf("%w: answer is required", domain.ErrValidation)
	}

	switch in.Type {
	case domain.TypeText:
		return nil
	case domain.TypeMCQ:
		if len(in.Options) != domain.MCQOptionCount {
			return fmt.Errorf("%w: MCQ needs exactly %d options, got %d", domain.ErrValidation, domain.MCQOptionCount, len(in.Options))
		}
		for i, opt := range in.Options {
			if opt == "" {
				return fmt.Errorf("%w: option %d is empty", domain.ErrValidation, i+1)
			}
		}
		for _, opt := range in.Options {
			if opt == in.Answer {
				return nil
			}
		}
		return fmt.Errorf("%w: answer must be one of the options", domain.ErrValidation)
	default:
		return fmt.Errorf("%w: unknown question type %q", domain.ErrValidation, in.Type)
	}
}

// CreateQuestion saves a new, unlaunched question.
func (s *Service) CreateQuestion(ctx context.Context, in QuestionInput) (domain.Question, error) {
	if err := in.validate(); err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.questions.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return domain.Question{}, err
	}
	for _, q := range questions {
		if q.Question == in.Text {
			return domain.Question{}, fmt.Errorf("%w: %q", domain.ErrDuplicateQuestion, in.Text)
		}
	}

	q := domain.Question{
		Question: in.Text,
		Type:     in.Type,
		Options:  []string{},
		Answer:   in.Answer,
		Batch:    in.Batch,
	}
	if in.Type == domain.TypeMCQ {
		q.Options = append(q.Options, in.Options...)
	}
	if in.Image != nil {
		path, err := s.images.Save(ctx, in.ImageName, in.Image)
		if err != nil {
			return domain.Question{}, err
		}
		q.Image = &path
	}

	if err := s.questions.Add(ctx, q); err != nil {
		return domain.Question{}, err
	}
	log.Printf("question saved: %q (%s)", q.Question, q.Type)
	s.publish(ctx)
	return q, nil
}

// ListQuestions returns every question in authoring order.
func (s *Service) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.questions.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return nil, err
	}
	return questions, nil
}

// LaunchQuestion makes the question at index (0-based) visible to students.
// A question launches once; later calls return ErrAlreadyLaunched and keep
// the original timestamp.
func (s *Service) LaunchQuestion(ctx context.Context, index int) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := s.questions.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return domain.Question{}, err
	}
	if index < 0 || index >= len(questions) {
		return domain.Question{}, fmt.Errorf("%w: Q%d", domain.ErrQuestionNotFound, index+1)
	}

	q := questions[index]
	if q.Launched != nil {
		return q, fmt.Errorf("%w: Q%d", domain.ErrAlreadyLaunched, index+1)
	}
	launched := true
	ts := domain.NewTimestamp(s.now())
	q.Launched = &launched
	q.LaunchTimestamp = &ts

	if err := s.questions.Replace(ctx, index, q); err != nil {
		return domain.Question{}, err
	}
	log.Printf("question Q%d launched", index+1)
	s.publish(ctx)
	return q, nil
}
