package testing

import (
	"sort"
	"sync"
	"time"

	"github.com/go-drift/videooverlay/pkg/platform"
)

// FakeScheduler provides controllable time for deterministic timer tests.
// Timers fire only from Advance, and posted callbacks run only from Flush or
// Advance, always on the calling goroutine. AfterFunc, Post and Pending are
// safe for concurrent use.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
	posted []func()
}

type fakeTimer struct {
	s      *FakeScheduler
	when   time.Time
	seq    int
	f      func()
	active bool // guarded by s.mu
}

// Stop implements platform.Timer.
func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	was := t.active
	t.active = false
	return was
}

// NewFakeScheduler returns a FakeScheduler starting at a fixed epoch.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (s *FakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) platform.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTimer{s: s, when: s.now.Add(d), seq: s.seq, f: f, active: true}
	s.timers = append(s.timers, t)
	return t
}

// Post queues f for the next Flush.
func (s *FakeScheduler) Post(f func()) {
	s.mu.Lock()
	s.posted = append(s.posted, f)
	s.mu.Unlock()
}

// Posted returns how many posted callbacks are waiting for Flush.
func (s *FakeScheduler) Posted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posted)
}

// Flush runs posted callbacks, including ones posted while flushing. It
// returns how many ran.
func (s *FakeScheduler) Flush() int {
	n := 0
	for {
		s.mu.Lock()
		posted := s.posted
		s.posted = nil
		s.mu.Unlock()
		if len(posted) == 0 {
			return n
		}
		for _, f := range posted {
			f()
			n++
		}
	}
}

// Advance moves the clock forward by d, firing due timers in deadline order
// with the clock set to each deadline, then flushes posted callbacks.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.f()
		s.Flush()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
	s.Flush()
}

// nextDue pops the earliest active timer due at or before target.
func (s *FakeScheduler) nextDue(target time.Time) *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.timers[:0]
	for _, t := range s.timers {
		if t.active {
			active = append(active, t)
		}
	}
	s.timers = active
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].when.Equal(s.timers[j].when) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].when.Before(s.timers[j].when)
	})
	if len(s.timers) == 0 || s.timers[0].when.After(target) {
		return nil
	}
	t := s.timers[0]
	s.timers = s.timers[1:]
	t.active = false
	if t.when.After(s.now) {
		s.now = t.when
	}
	return t
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if t.active {
			n++
		}
	}
	return n
}
