package domain

import (
	"strings"
	"time"
)

const (
	// AdminUsername and AdminPassword form the built-in admin identity. It is never stored.
	AdminUsername = "admin"
	AdminPassword = "AdminTCE"
)

// Batch is a student cohort.
type Batch string

const (
	BatchOne Batch = "Boot Camp Batch 1"
	BatchTwo Batch = "Boot Camp Batch 2"
)

// Batches lists the cohorts in display order.
var Batches = []Batch{BatchOne, BatchTwo}

// Valid reports whether b is one of the known cohorts.
func (b Batch) Valid() bool {
	for _, known := range Batches {
		if b == known {
			return true
		}
	}
	return false
}

// QuestionType selects how a question is answered.
type QuestionType string

const (
	TypeMCQ  QuestionType = "MCQ"
	TypeText QuestionType = "Text"
)

// MCQOptionCount is the number of options every MCQ question carries.
const MCQOptionCount = 4

// User is a registered student.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Batch    Batch  `json:"batch"`
}

// IsReservedUsername reports whether name collides with the admin identity.
func IsReservedUsername(name string) bool {
	return strings.EqualFold(name, AdminUsername)
}

// Identity is the logged-in principal held by a session.
type Identity struct {
	Username string `json:"username"`
	Batch    Batch  `json:"batch,omitempty"`
	Admin    bool   `json:"admin"`
}

// Question is authored by the admin. The question text is its key.
type Question struct {
	Question        string       `json:"question"`
	Image           *string      `json:"image"`
	Type            QuestionType `json:"type"`
	Options         []string     `json:"options"`
	Answer          string       `json:"answer"`
	Batch           Batch        `json:"batch,omitempty"`
	Launched        *bool        `json:"launched,omitempty"`
	LaunchTimestamp *Timestamp   `json:"launch_timestamp,omitempty"`
}

// IsLaunched reports whether the question is visible to students.
func (q Question) IsLaunched() bool {
	return q.Launched != nil && *q.Launched
}

// IsOption reports whether value is one of the MCQ options.
func (q Question) IsOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// AnswerIndex returns the position of the first option equal to the answer, or -1.
func (q Question) AnswerIndex() int {
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}

// Response is one student's answer to one question.
type Response struct {
	User              string    `json:"user"`
	Question          string    `json:"question"`
	Response          string    `json:"response"`
	ResponseTimestamp Timestamp `json:"response_timestamp"`
}

// QuestionSummary is one row of the admin response report.
type QuestionSummary struct {
	Question        string `json:"question"`
	TotalAnswers    int    `json:"total_answers"`
	Correct         int    `json:"correct"`
	Incorrect       int    `json:"incorrect"`
	NotAnswered     int    `json:"not_answered"`
	FirstAnsweredBy string `json:"first_answered_by"`
}

// Summary is the admin report pushed over the live feed.
type Summary struct {
	Rows      []QuestionSummary `json:"rows"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
