package filter

import (
	"sync"
	"time"
)

// DefaultDebounce is how long input must be quiet before a search term
// settles.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces a stream of inputs into the last value observed
// during a quiet period. Each Input cancels the pending callback and
// schedules a new one, so the callback fires at most once per quiet
// period with the latest term.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func(string)
}

// NewDebouncer creates a debouncer firing fn after delay of quiet.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Input records a new value and restarts the quiet-period timer.
func (d *Debouncer) Input(term string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fn(term)
	})
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// SearchSession couples a debouncer with the settled search term. OnInput
// feeds raw keystrokes; the registered change callback observes only
// settled terms, last one wins.
type SearchSession struct {
	mu       sync.Mutex
	term     string
	onChange func(string)

	debouncer *Debouncer
}

// NewSearchSession creates a session with the given quiet period.
func NewSearchSession(delay time.Duration) *SearchSession {
	s := &SearchSession{}
	s.debouncer = NewDebouncer(delay, s.settle)
	return s
}

// OnInput feeds one raw input value into the session.
func (s *SearchSession) OnInput(term string) {
	s.debouncer.Input(term)
}

// OnDebouncedChange registers the callback invoked with each settled term.
func (s *SearchSession) OnDebouncedChange(fn func(term string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Term returns the last settled term.
func (s *SearchSession) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// Close cancels any pending settle.
func (s *SearchSession) Close() {
	s.debouncer.Stop()
}

func (s *SearchSession) settle(term string) {
	s.mu.Lock()
	s.term = term
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(term)
	}
}
