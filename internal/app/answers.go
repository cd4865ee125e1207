package app

import (
	"context"
	"fmt"
	"log"

	"tce-quiz-dashboard/internal/domain"
)

// StudentQuestion is a launched question as a student sees it: no answer key.
type StudentQuestion struct {
	Question string              `json:"question"`
	Image    *string             `json:"image"`
	Type     domain.QuestionType `json:"type"`
	Options  []string            `json:"options"`
}

// visibleTo reports whether a student of batch may see q. Questions without a
// target batch are for everyone.
func visibleTo(q domain.Question, batch domain.Batch) bool {
	return q.Batch == "" || q.Batch == batch
}

func batchOf(users []domain.User, username string) domain.Batch {
	for _, u := range users {
		if u.Username == username {
			return u.Batch
		}
	}
	return ""
}

func answeredBy(responses []domain.Response, username string) map[string]struct{} {
	answered := make(map[string]struct{})
	for _, r := range responses {
		if r.User == username {
			answered[r.Question] = struct{}{}
		}
	}
	return answered
}

// PendingQuestions lists launched questions for the user's batch that the
// user has not answered yet.
func (s *Service) PendingQuestions(ctx context.Context, username string) ([]StudentQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, questions, responses, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	batch := batchOf(users, username)
	answered := answeredBy(responses, username)
	pending := make([]StudentQuestion, 0, len(questions))
	for _, q := range questions {
		if !q.IsLaunched() || !visibleTo(q, batch) {
			continue
		}
		if _, ok := answered[q.Question]; ok {
			continue
		}
		pending = append(pending, StudentQuestion{
			Question: q.Question,
			Image:    q.Image,
			Type:     q.Type,
			Options:  q.Options,
		})
	}
	return pending, nil
}

// SubmitAnswer appends the user's response. The question must be launched and
// not yet answered by the user at write time, which also rejects double submits.
func (s *Service) SubmitAnswer(ctx context.Context, username, question, value string) (domain.Response, error) {
	if value == "" {
		return domain.Response{}, fmt.Errorf("%w: answer is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, questions, responses, err := s.snapshot(ctx)
	if err != nil {
		return domain.Response{}, err
	}

	var target *domain.Question
	for i := range questions {
		if questions[i].Question == question {
			target = &questions[i]
			break
		}
	}
	if target == nil {
		return domain.Response{}, fmt.Errorf("%w: %q", domain.ErrQuestionNotFound, question)
	}
	if !target.IsLaunched() {
		return domain.Response{}, fmt.Errorf("%w: %q", domain.ErrNotLaunched, question)
	}
	if !visibleTo(*target, batchOf(users, username)) {
		return domain.Response{}, fmt.Errorf("%w: %q is for %s", domain.ErrForbidden, question, target.Batch)
	}
	if target.Type == domain.TypeMCQ && !target.IsOption(value) {
		return domain.Response{}, fmt.Errorf("%w: %q is not one of the options", domain.ErrValidation, value)
	}
	if _, ok := answeredBy(responses, username)[question]; ok {
		return domain.Response{}, fmt.Errorf("%w: %q", domain.ErrAlreadyAnswered, question)
	}

	resp := domain.Response{
		User:              username,
		Question:          question,
		Response:          value,
		ResponseTimestamp: domain.NewTimestamp(s.now()),
	}
	if err := s.responses.Add(ctx, resp); err != nil {
		return domain.Response{}, err
	}
	log.Printf("answer from %s to %q", username, question)
	s.publish(ctx)
	return resp, nil
}

// History returns the user's own responses in submission order.
func (s *Service) History(ctx context.Context, username string) ([]domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	responses, err := s.responses.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return nil, err
	}
	mine := make([]domain.Response, 0)
	for _, r := range responses {
		if r.User == username {
			mine = append(mine, r)
		}
	}
	return mine, nil
}
