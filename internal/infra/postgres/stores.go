package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"tce-quiz-dashboard/internal/domain"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// UserStore keeps students in the users table, ordered by insertion.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT username, password, batch FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		var batch string
		if err := rows.Scan(&u.Username, &u.Password, &batch); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Batch = domain.Batch(batch)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserStore) Add(ctx context.Context, u domain.User) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO users (username, password, batch) VALUES ($1, $2, $3)`,
		u.Username, u.Password, string(u.Batch))
	if isUniqueViolation(err) {
		return domain.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// QuestionStore keeps questions in the questions table. Positions (as used by
// Replace) follow insertion order.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT question, image, type, options, answer, batch, launched, launch_timestamp
		FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		q          domain.Question
		qType      string
		batch      string
		rawOptions []byte
		launchedAt *time.Time
	)
	if err := row.Scan(&q.Question, &q.Image, &qType, &rawOptions, &q.Answer, &batch, &q.Launched, &launchedAt); err != nil {
		return domain.Question{}, fmt.Errorf("scan question: %w", err)
	}
	if err := json.Unmarshal(rawOptions, &q.Options); err != nil {
		return domain.Question{}, fmt.Errorf("unmarshal options: %w", err)
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	q.Type = domain.QuestionType(qType)
	q.Batch = domain.Batch(batch)
	if launchedAt != nil {
		ts := domain.NewTimestamp(*launchedAt)
		q.LaunchTimestamp = &ts
	}
	return q, nil
}

func questionArgs(q domain.Question) ([]interface{}, error) {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	rawOptions, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	var launchedAt *time.Time
	if q.LaunchTimestamp != nil {
		t := q.LaunchTimestamp.Time
		launchedAt = &t
	}
	return []interface{}{q.Question, q.Image, string(q.Type), string(rawOptions), q.Answer, string(q.Batch), q.Launched, launchedAt}, nil
}

func (s *QuestionStore) Add(ctx context.Context, q domain.Question) error {
	args, err := questionArgs(q)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO questions (question, image, type, options, answer, batch, launched, launch_timestamp)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8)`, args...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateQuestion, q.Question)
	}
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

// Replace overwrites the question at index (0-based, insertion order).
func (s *QuestionStore) Replace(ctx context.Context, index int, q domain.Question) error {
	if index < 0 {
		return fmt.Errorf("%w: index %d", domain.ErrQuestionNotFound, index)
	}
	args, err := questionArgs(q)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE questions SET question = $1, image = $2, type = $3, options = $4::jsonb,
			answer = $5, batch = $6, launched = $7, launch_timestamp = $8
		WHERE id = (SELECT id FROM questions ORDER BY id OFFSET $9 LIMIT 1)`, append(args, index)...)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: index %d", domain.ErrQuestionNotFound, index)
	}
	return nil
}

// ResponseStore keeps the answer log in the responses table.
type ResponseStore struct {
	pool *pgxpool.Pool
}

func NewResponseStore(pool *pgxpool.Pool) *ResponseStore {
	return &ResponseStore{pool: pool}
}

func (s *ResponseStore) List(ctx context.Context) ([]domain.Response, error) {
	rows, err := s.pool.Query(ctx, `SELECT username, question, response, response_timestamp FROM responses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	responses := make([]domain.Response, 0)
	for rows.Next() {
		var r domain.Response
		var at time.Time
		if err := rows.Scan(&r.User, &r.Question, &r.Response, &at); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r.ResponseTimestamp = domain.NewTimestamp(at)
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

func (s *ResponseStore) Add(ctx context.Context, r domain.Response) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO responses (username, question, response, response_timestamp) VALUES ($1, $2, $3, $4)`,
		r.User, r.Question, r.Response, r.ResponseTimestamp.Time)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}
