package app

import (
	"sync"

	"tce-quiz-dashboard/internal/domain"
)

// Feed fans admin summary snapshots out to live subscribers.
type Feed struct {
	mu          sync.Mutex
	subscribers map[chan domain.Summary]struct{}
}

func NewFeed() *Feed {
	return &Feed{subscribers: make(map[chan domain.Summary]struct{})}
}

// Subscribe returns a channel primed with initial. The caller must invoke the
// returned cancel function to avoid leaks.
func (f *Feed) Subscribe(initial domain.Summary) (<-chan domain.Summary, func()) {
	ch := make(chan domain.Summary, 8)
	ch <- initial

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Len reports the number of live subscribers.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// Publish delivers summary to every subscriber without blocking.
func (f *Feed) Publish(summary domain.Summary) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- summary:
		default:
			// slow subscriber: drop its oldest snapshot so the newest gets through
			select {
			case <-ch:
			default:
			}
			ch <- summary
		}
	}
}
