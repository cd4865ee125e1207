package app

import (
	"context"
	"errors"
	"log"
	"sync"

	"tce-quiz-dashboard/internal/domain"
)

// Warnings collects non-fatal problems hit while serving one action, such as a
// storage document that had to be reset.
type Warnings struct {
	mu   sync.Mutex
	msgs []string
}

type warningsKey struct{}

// WithWarnings attaches a fresh collector to ctx.
func WithWarnings(ctx context.Context) (context.Context, *Warnings) {
	w := &Warnings{}
	return context.WithValue(ctx, warningsKey{}, w), w
}

// List returns the collected messages.
func (w *Warnings) List() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.msgs...)
}

func (w *Warnings) add(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msg)
}

// tolerate downgrades a storage reset to a warning and passes other errors through.
func tolerate(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, domain.ErrStorageCorrupt) {
		return err
	}
	log.Printf("warning: %v", err)
	if w, ok := ctx.Value(warningsKey{}).(*Warnings); ok {
		w.add(err.Error())
	}
	return nil
}
