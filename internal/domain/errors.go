package domain

import "errors"

var (
	// ErrValidation is returned when a required field is empty or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrReservedName is returned when a student tries to register as the admin.
	ErrReservedName = errors.New("username 'admin' is reserved")
	// ErrDuplicateUser is returned when the username is already taken.
	ErrDuplicateUser = errors.New("username already taken")
	// ErrAuth is returned for bad credentials.
	ErrAuth = errors.New("invalid credentials")
	// ErrStorageCorrupt marks a document that was unreadable and has been reset to its default.
	ErrStorageCorrupt = errors.New("storage document corrupt")
	// ErrQuestionNotFound indicates the question index or text does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrDuplicateQuestion indicates a question with the same text already exists.
	ErrDuplicateQuestion = errors.New("question already exists")
	// ErrAlreadyLaunched is returned when launching a question twice.
	ErrAlreadyLaunched = errors.New("question already launched")
	// ErrNotLaunched is returned when answering a question that is not live.
	ErrNotLaunched = errors.New("question not launched")
	// ErrAlreadyAnswered is returned when a student answers the same question twice.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrUnauthenticated is returned when no user is logged in on the session.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden is returned when a student calls an admin operation or vice versa.
	ErrForbidden = errors.New("forbidden")
	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")
)
