package app

import (
	"context"
	"log"

	"tce-quiz-dashboard/internal/domain"
)

// NoResponder is shown as FirstAnsweredBy when nobody answered.
const NoResponder = "-"

// Summarize joins users, questions and responses into one row per question.
// Questions without a target batch count every registered student as eligible.
func Summarize(users []domain.User, questions []domain.Question, responses []domain.Response) []domain.QuestionSummary {
	rows := make([]domain.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		row := domain.QuestionSummary{Question: q.Question, FirstAnsweredBy: NoResponder}
		respondents := make(map[string]struct{})
		var first *domain.Response

		for i := range responses {
			r := &responses[i]
			if r.Question != q.Question {
				continue
			}
			row.TotalAnswers++
			if r.Response == q.Answer {
				row.Correct++
			}
			respondents[r.User] = struct{}{}
			// ties keep log order
			if first == nil || r.ResponseTimestamp.Before(first.ResponseTimestamp.Time) {
				first = r
			}
		}
		row.Incorrect = row.TotalAnswers - row.Correct
		if first != nil {
			row.FirstAnsweredBy = first.User
		}

		for _, u := range users {
			if q.Batch != "" && u.Batch != q.Batch {
				continue
			}
			if _, ok := respondents[u.Username]; !ok {
				row.NotAnswered++
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary recomputes the admin response report.
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked(ctx)
}

func (s *Service) summaryLocked(ctx context.Context) (domain.Summary, error) {
	users, questions, responses, err := s.snapshot(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{
		Rows:      Summarize(users, questions, responses),
		UpdatedAt: s.now(),
	}, nil
}

// SubscribeSummary streams a fresh report after every change. The caller
// must invoke the returned cancel function.
func (s *Service) SubscribeSummary(ctx context.Context) (<-chan domain.Summary, func(), error) {
	// publish runs under s.mu, so no change can land between the initial
	// report and the registration
	s.mu.Lock()
	defer s.mu.Unlock()

	initial, err := s.summaryLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.feed.Subscribe(initial)
	return ch, cancel, nil
}

// publish pushes a new report to live subscribers, if any. Callers hold s.mu.
func (s *Service) publish(ctx context.Context) {
	if s.feed.Len() == 0 {
		return
	}
	summary, err := s.summaryLocked(ctx)
	if err != nil {
		log.Printf("summary feed: %v", err)
		return
	}
	s.feed.Publish(summary)
}

// BatchRoster lists the students registered in one batch.
type BatchRoster struct {
	Batch    domain.Batch `json:"batch"`
	Students []string     `json:"students"`
}

// Roster groups registered students by batch in registration order.
func (s *Service) Roster(ctx context.Context) ([]BatchRoster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.List(ctx)
	if err := tolerate(ctx, err); err != nil {
		return nil, err
	}
	roster := make([]BatchRoster, 0, len(domain.Batches))
	for _, b := range domain.Batches {
		entry := BatchRoster{Batch: b, Students: []string{}}
		for _, u := range users {
			if u.Batch == b {
				entry.Students = append(entry.Students, u.Username)
			}
		}
		roster = append(roster, entry)
	}
	return roster, nil
}
