package dispatch

import (
	"sync"
	"testing"
	"time"
)

func TestLoopSerialisesJobs(t *testing.T) {
	l := NewLoop()
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 100; i++ {
		i := i
		l.Dispatch(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	l.Dispatch(func() { l.Close() })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not drain")
	}

	if len(order) != 100 {
		t.Fatalf("ran %d jobs, want 100", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, jobs ran out of order", i, v)
		}
	}
}

func TestLoopDispatchFromCallback(t *testing.T) {
	l := NewLoop()
	go l.Run()
	defer l.Close()

	ran := make(chan struct{})
	l.Dispatch(func() {
		// Enqueueing from inside a callback must not deadlock.
		l.Dispatch(func() { close(ran) })
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("nested dispatch never ran")
	}
}

func TestLoopAfterFiresOnQueue(t *testing.T) {
	l := NewLoop()
	go l.Run()
	defer l.Close()

	fired := make(chan struct{})
	l.After(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
}

func TestTimerStopPreventsCallback(t *testing.T) {
	l := NewLoop()
	go l.Run()
	defer l.Close()

	fired := make(chan struct{}, 1)
	timer := l.After(30*time.Millisecond, func() { fired <- struct{}{} })
	timer.Stop()

	select {
	case <-fired:
		t.Error("stopped timer still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

// Zero-delay timers fire on the runtime clock's goroutines before
// SystemAfter returns; the Timer handle must already be complete.
func TestSystemAfterImmediateTimers(t *testing.T) {
	l := NewLoop()
	go l.Run()
	defer l.Close()

	const count = 200
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		SystemAfter(0, l.Dispatch, wg.Done)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("not all immediate timers fired")
	}
}

func TestManualAdvanceFiresInDeadlineOrder(t *testing.T) {
	m := NewManual()

	var order []string
	m.After(100*time.Millisecond, func() { order = append(order, "b") })
	m.After(10*time.Millisecond, func() { order = append(order, "a") })
	m.After(200*time.Millisecond, func() { order = append(order, "c") })

	m.Advance(150 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Errorf("after 150ms: order = %v, want [a b]", order)
	}

	m.Advance(100 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("after 250ms: order = %v, want [a b c]", order)
	}
}

func TestManualStoppedTimerSkipped(t *testing.T) {
	m := NewManual()

	fired := false
	timer := m.After(10*time.Millisecond, func() { fired = true })
	timer.Stop()
	m.Advance(time.Second)

	if fired {
		t.Error("stopped timer fired")
	}
}

func TestManualTimerCallbackCanSchedule(t *testing.T) {
	m := NewManual()

	var hits []time.Duration
	m.After(10*time.Millisecond, func() {
		hits = append(hits, m.Now())
		m.After(10*time.Millisecond, func() { hits = append(hits, m.Now()) })
	})

	m.Advance(50 * time.Millisecond)
	if len(hits) != 2 {
		t.Fatalf("hits = %v, want two firings", hits)
	}
	if hits[0] != 10*time.Millisecond || hits[1] != 20*time.Millisecond {
		t.Errorf("hits = %v, want [10ms 20ms]", hits)
	}
}
