package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReservedUsername(t *testing.T) {
	for _, name := range []string{"admin", "ADMIN", "Admin"} {
		if !IsReservedUsername(name) {
			t.Fatalf("expected %q reserved", name)
		}
	}
	if IsReservedUsername("administrator") {
		t.Fatalf("only the exact name is reserved")
	}
}

func TestQuestionJSONOmitsLaunchUntilSet(t *testing.T) {
	q := Question{Question: "2+2?", Type: TypeText, Options: []string{}, Answer: "4"}
	raw, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"question":"2+2?","image":null,"type":"Text","options":[],"answer":"4"}`
	if string(raw) != want {
		t.Fatalf("got %s, want %s", raw, want)
	}

	launched := true
	ts := NewTimestamp(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	q.Launched, q.LaunchTimestamp = &launched, &ts
	raw, err = json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Question
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.IsLaunched() || !back.LaunchTimestamp.Equal(ts.Time) {
		t.Fatalf("unexpected launch fields %+v", back)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected parse error")
	}
}
