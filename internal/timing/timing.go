// Package timing records how long the named steps of a run take.
package timing

import (
	"sort"
	"sync"
	"time"
)

// Entry is one measured step.
type Entry struct {
	Name     string
	Duration time.Duration
}

// Recorder collects step durations. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewRecorder returns an empty Recorder using the wall clock.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

// Start begins measuring name. Calling the returned function records the
// elapsed time and returns it.
func (r *Recorder) Start(name string) func() time.Duration {
	started := r.now()
	return func() time.Duration {
		d := r.now().Sub(started)
		r.Add(name, d)
		return d
	}
}

// Add records a duration directly.
func (r *Recorder) Add(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Name: name, Duration: d})
}

// Entries returns the recorded steps ordered by name.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	out := append([]Entry(nil), r.entries...)
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Slowest returns the longest recorded step. ok is false when nothing was
// recorded.
func (r *Recorder) Slowest() (e Entry, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.entries {
		if !ok || cur.Duration > e.Duration {
			e, ok = cur, true
		}
	}
	return e, ok
}
