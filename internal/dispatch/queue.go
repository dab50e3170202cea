package dispatch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Queue serialises callbacks onto a single logical thread.
type Queue interface {
	// Dispatch enqueues fn to run on the queue's thread. Safe to call from
	// any goroutine, including from a callback already running on the queue.
	Dispatch(fn func())

	// After schedules fn to run on the queue's thread once d has elapsed.
	// The returned Timer can cancel the callback before it runs.
	After(d time.Duration, fn func()) *Timer
}

// Timer is a handle to a one-shot scheduled callback.
type Timer struct {
	stopped atomic.Bool
	cancel  func()
}

// SystemAfter arms a runtime timer that marshals fn through deliver once d
// has elapsed. The Timer is fully built before the clock starts, so the
// firing goroutine never observes a half-initialised handle. Queue
// implementations backed by the system clock share it.
func SystemAfter(d time.Duration, deliver func(func()), fn func()) *Timer {
	t := &Timer{}
	sys := time.AfterFunc(d, func() {
		deliver(func() {
			if !t.Stopped() {
				fn()
			}
		})
	})
	t.cancel = func() { sys.Stop() }
	return t
}

// Stop cancels the callback if it has not run yet.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.stopped.Store(true)
	if t.cancel != nil {
		t.cancel()
	}
}

// Stopped reports whether Stop was called.
func (t *Timer) Stopped() bool {
	return t != nil && t.stopped.Load()
}

// Loop is a Queue drained by a single goroutine: an unbounded job list plus
// a wakeup channel. Dispatch never blocks, so callbacks running on the loop
// may freely enqueue more work.
type Loop struct {
	mu     sync.Mutex
	jobs   []func()
	wake   chan struct{}
	closed bool
}

// NewLoop creates a Loop. Call Run (usually on a dedicated goroutine) to
// start draining it.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Dispatch implements Queue.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.jobs = append(l.jobs, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// After implements Queue. The callback is marshalled onto the loop when the
// duration elapses.
func (l *Loop) After(d time.Duration, fn func()) *Timer {
	return SystemAfter(d, l.Dispatch, fn)
}

// Run drains the loop until Close is called. It returns once the queue has
// been closed and emptied.
func (l *Loop) Run() {
	for {
		l.mu.Lock()
		jobs := l.jobs
		l.jobs = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range jobs {
			fn()
		}

		if closed {
			l.mu.Lock()
			drained := len(l.jobs) == 0
			l.mu.Unlock()
			if drained {
				return
			}
			continue
		}

		<-l.wake
	}
}

// Close stops the loop after pending jobs finish. Further Dispatch calls
// are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
