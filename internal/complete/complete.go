package complete

import (
	"strings"
	"sync"
	"time"
)

// DefaultDelay is the idle time after the last edit before a lookup runs
const DefaultDelay = 300 * time.Millisecond

// Match reports whether candidate completes key.
// The first term of key must prefix candidate and every further term must
// appear somewhere in it. Matching ignores case; an empty key never matches.
func Match(key, candidate string) bool {
	terms := strings.Fields(strings.ToLower(key))
	if len(terms) == 0 {
		return false
	}

	candidate = strings.ToLower(candidate)
	if !strings.HasPrefix(candidate, terms[0]) {
		return false
	}
	for _, term := range terms[1:] {
		if !strings.Contains(candidate, term) {
			return false
		}
	}
	return true
}

// Filter returns the candidates matching key, in their original order
func Filter(key string, candidates []string) []string {
	out := []string{}
	for _, c := range candidates {
		if Match(key, c) {
			out = append(out, c)
		}
	}
	return out
}

// SplitQuery splits text into the lookup prefix and the remaining filter
// terms, both lowercased
func SplitQuery(text string) (string, []string) {
	terms := strings.Fields(strings.ToLower(text))
	if len(terms) == 0 {
		return "", nil
	}
	return terms[0], terms[1:]
}

// Ticket identifies one scheduled lookup
type Ticket uint64

// Debouncer tracks the most recent scheduled lookup.
// Scheduling supersedes whatever was pending; a ticket fires at most once.
// Lookups already running are not affected.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	latest  Ticket
	pending bool
}

// NewDebouncer returns a Debouncer with the given delay, or DefaultDelay
// when delay is not positive
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Delay returns the idle time to wait before firing a ticket
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule cancels any pending ticket and returns a new one
func (d *Debouncer) Schedule() Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest++
	d.pending = true
	return d.latest
}

// Cancel drops the pending ticket, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = false
}

// Pending reports whether a scheduled lookup is still waiting to fire
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Fire consumes t and reports whether its lookup should run
func (d *Debouncer) Fire(t Ticket) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.pending || t != d.latest {
		return false
	}
	d.pending = false
	return true
}
