package cli

import (
	"context"
	"testing"
	"time"

	"tce-quiz-dashboard/internal/domain"
)

func TestImportDocumentsCopiesEveryRecord(t *testing.T) {
	ctx := context.Background()
	src := jsonStores(t.TempDir())
	dst := jsonStores(t.TempDir())

	_ = src.Users.Add(ctx, domain.User{Username: "alice", Password: "pw", Batch: domain.BatchOne})
	_ = src.Users.Add(ctx, domain.User{Username: "bob", Password: "pw", Batch: domain.BatchTwo})
	_ = src.Questions.Add(ctx, domain.Question{Question: "2+2?", Type: domain.TypeText, Options: []string{}, Answer: "4"})
	_ = src.Responses.Add(ctx, domain.Response{User: "alice", Question: "2+2?", Response: "4", ResponseTimestamp: domain.NewTimestamp(time.Now())})

	counts, err := importDocuments(ctx, src, dst)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if counts != [3]int{2, 1, 1} {
		t.Fatalf("unexpected counts %v", counts)
	}

	users, err := dst.Users.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected two users, got %+v", users)
	}
}
