package suggest

import (
	"context"
	"sync"
	"time"

	"github.com/sahanamn290/github-analysis/internal/ghclient"
	"github.com/sahanamn290/github-analysis/internal/model"
)

// Debouncer delays a call until no new call has arrived for the configured
// duration. Rapid successive calls reset the timer.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a new debouncer with the specified duration.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Debounce runs fn once the duration has elapsed without another call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel cancels any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Suggester issues debounced searches and delivers only the results of the
// latest query. Results for a query superseded while its request was in
// flight are dropped.
type Suggester struct {
	searcher  ghclient.UserSearcher
	debouncer *Debouncer
	tracker   Tracker
	deliver   func([]model.Suggestion)
}

// NewSuggester creates a Suggester that calls deliver with each accepted
// result set. deliver runs on a timer goroutine.
func NewSuggester(searcher ghclient.UserSearcher, delay time.Duration, deliver func([]model.Suggestion)) *Suggester {
	return &Suggester{
		searcher:  searcher,
		debouncer: NewDebouncer(delay),
		deliver:   deliver,
	}
}

// Update records a new query. Short queries clear the suggestions
// immediately; others are searched after the debounce delay.
func (s *Suggester) Update(ctx context.Context, query string) {
	tag := s.tracker.Next()

	if !Eligible(query) {
		s.debouncer.Cancel()
		s.deliver(nil)
		return
	}

	s.debouncer.Debounce(func() {
		if !s.tracker.Current(tag) {
			return
		}
		results := Search(ctx, s.searcher, query)
		if !s.tracker.Current(tag) {
			return
		}
		s.deliver(results)
	})
}

// Close cancels pending searches and discards in-flight results.
func (s *Suggester) Close() {
	s.tracker.Invalidate()
	s.debouncer.Cancel()
}
