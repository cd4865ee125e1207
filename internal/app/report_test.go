package app

import (
	"testing"
	"time"

	"tce-quiz-dashboard/internal/domain"
)

func TestSummarizeFirstAnsweredByEarliest(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	questions := []domain.Question{
		{Question: "q1", Type: domain.TypeMCQ, Options: []string{"a", "b", "c", "d"}, Answer: "b"},
		{Question: "q2", Type: domain.TypeText, Options: []string{}, Answer: "x"},
	}
	users := []domain.User{
		{Username: "alice", Batch: domain.BatchOne},
		{Username: "bob", Batch: domain.BatchOne},
		{Username: "carol", Batch: domain.BatchTwo},
	}
	responses := []domain.Response{
		{User: "bob", Question: "q1", Response: "a", ResponseTimestamp: domain.NewTimestamp(base.Add(2 * time.Minute))},
		{User: "carol", Question: "q1", Response: "b", ResponseTimestamp: domain.NewTimestamp(base.Add(time.Minute))},
		{User: "alice", Question: "q1", Response: "b", ResponseTimestamp: domain.NewTimestamp(base.Add(time.Minute))},
	}

	rows := Summarize(users, questions, responses)
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}

	q1 := rows[0]
	if q1.TotalAnswers != 3 || q1.Correct != 2 || q1.Incorrect != 1 || q1.NotAnswered != 0 {
		t.Fatalf("unexpected q1 counts %+v", q1)
	}
	if q1.FirstAnsweredBy != "carol" {
		t.Fatalf("expected carol (earliest, first in log on tie), got %s", q1.FirstAnsweredBy)
	}

	q2 := rows[1]
	if q2.TotalAnswers != 0 || q2.NotAnswered != 3 || q2.FirstAnsweredBy != NoResponder {
		t.Fatalf("unexpected q2 row %+v", q2)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if rows := Summarize(nil, nil, nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}
