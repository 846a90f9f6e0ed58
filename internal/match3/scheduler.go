package match3

import (
	"sort"
	"time"
)

// Scheduler runs callbacks after a delay. Delays exist only to pace
// animation; they never change outcomes.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Immediate runs every callback synchronously, ignoring the delay.
type Immediate struct{}

// After calls fn right away.
func (Immediate) After(_ time.Duration, fn func()) {
	fn()
}

type scheduled struct {
	due time.Duration
	seq uint64
	fn  func()
}

// TickScheduler is a cooperative scheduler driven by Advance.
// It is meant to be owned by a single game loop and is not safe for
// concurrent use.
type TickScheduler struct {
	now     time.Duration
	seq     uint64
	pending []scheduled
}

// NewTickScheduler creates an empty scheduler at time zero.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// After queues fn to run once the clock passes d from now.
func (s *TickScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	s.pending = append(s.pending, scheduled{due: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by dt and runs every callback that has
// come due, in due order. Callbacks queued while running with a zero delay
// run in the same call.
func (s *TickScheduler) Advance(dt time.Duration) {
	s.now += dt
	for {
		idx := -1
		for i, p := range s.pending {
			if p.due > s.now {
				continue
			}
			if idx < 0 || p.due < s.pending[idx].due ||
				(p.due == s.pending[idx].due && p.seq < s.pending[idx].seq) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		next := s.pending[idx]
		s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
		next.fn()
	}
}

// Flush runs every pending callback regardless of its due time.
func (s *TickScheduler) Flush() {
	for len(s.pending) > 0 {
		sort.Slice(s.pending, func(i, j int) bool {
			if s.pending[i].due != s.pending[j].due {
				return s.pending[i].due < s.pending[j].due
			}
			return s.pending[i].seq < s.pending[j].seq
		})
		if s.pending[0].due > s.now {
			s.now = s.pending[0].due
		}
		s.Advance(0)
	}
}

// Pending returns the number of queued callbacks.
func (s *TickScheduler) Pending() int {
	return len(s.pending)
}

// Reset drops every queued callback.
func (s *TickScheduler) Reset() {
	s.pending = nil
	s.now = 0
}
