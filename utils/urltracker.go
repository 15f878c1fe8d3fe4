package utils

import "sync"

// URLTracker remembers which ad landing URLs a run has already collected,
// so the same advertiser showing up for several keyword/location pairs is
// only recorded once
type URLTracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewURLTracker creates an empty tracker
func NewURLTracker() *URLTracker {
	return &URLTracker{seen: make(map[string]struct{})}
}

// Add returns true if the URL is new, false if it was seen before
func (t *URLTracker) Add(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.seen[url]; exists {
		return false
	}
	t.seen[url] = struct{}{}
	return true
}

// Seen reports whether the URL has been recorded without recording it
func (t *URLTracker) Seen(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, exists := t.seen[url]
	return exists
}

// Count returns the number of tracked URLs
func (t *URLTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
