package dispatch

import (
	"sort"
	"time"
)

// Manual is a Queue with a hand-driven clock, for deterministic tests.
// Dispatched functions run when Flush or Advance is called; timers fire in
// deadline order as the clock is advanced. Manual is not safe for
// concurrent use.
type Manual struct {
	now     time.Duration
	pending []func()
	timers  []*manualTimer
	seq     int
}

type manualTimer struct {
	at    time.Duration
	seq   int
	fn    func()
	timer *Timer
}

// NewManual creates a Manual queue at clock zero.
func NewManual() *Manual {
	return &Manual{}
}

// Dispatch implements Queue.
func (m *Manual) Dispatch(fn func()) {
	m.pending = append(m.pending, fn)
}

// After implements Queue.
func (m *Manual) After(d time.Duration, fn func()) *Timer {
	t := &Timer{}
	m.seq++
	m.timers = append(m.timers, &manualTimer{
		at:    m.now + d,
		seq:   m.seq,
		fn:    fn,
		timer: t,
	})
	return t
}

// Flush runs queued callbacks (including ones they enqueue) without moving
// the clock.
func (m *Manual) Flush() {
	for len(m.pending) > 0 {
		jobs := m.pending
		m.pending = nil
		for _, fn := range jobs {
			fn()
		}
	}
}

// Advance moves the clock forward and fires due timers in deadline order,
// flushing dispatched callbacks along the way.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		m.Flush()

		next := m.dueBefore(target)
		if next == nil {
			break
		}
		m.now = next.at
		if !next.timer.Stopped() {
			next.fn()
		}
	}
	m.now = target
	m.Flush()
}

func (m *Manual) dueBefore(target time.Duration) *manualTimer {
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at != m.timers[j].at {
			return m.timers[i].at < m.timers[j].at
		}
		return m.timers[i].seq < m.timers[j].seq
	})
	for i, t := range m.timers {
		if t.at <= target {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return t
		}
	}
	return nil
}

// Now returns the manual clock reading.
func (m *Manual) Now() time.Duration {
	return m.now
}
