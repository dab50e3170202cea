package tabs

import (
	"time"

	"github.com/ultracontrol/ultractl/internal/dispatch"
)

const (
	classAnimateOut = "animate-out"
	classAnimateIn  = "animate-in"

	// outDuration is how long the out-class stays on the departing view.
	outDuration = 250 * time.Millisecond
	// inDelay is the pause before the arriving view fades to full
	// opacity.
	inDelay = 50 * time.Millisecond
)

// Animator cross-fades between tab views. It is purely decorative and
// never blocks a state transition; its timers capture the view handles
// and check Valid before touching a view that may have been destroyed.
type Animator struct {
	queue dispatch.Queue
}

// NewAnimator creates an Animator scheduling on queue.
func NewAnimator(queue dispatch.Queue) *Animator {
	return &Animator{queue: queue}
}

// CrossFade fades outgoing out and incoming in. Either view may be nil.
func (a *Animator) CrossFade(outgoing, incoming View) {
	if outgoing != nil && outgoing.Valid() {
		outgoing.AddClass(classAnimateOut)
		a.queue.After(outDuration, func() {
			if outgoing.Valid() {
				outgoing.RemoveClass(classAnimateOut)
			}
		})
	}
	if incoming != nil && incoming.Valid() {
		incoming.AddClass(classAnimateIn)
		incoming.SetOpacity(0)
		a.queue.After(inDelay, func() {
			if incoming.Valid() {
				incoming.RemoveClass(classAnimateIn)
				incoming.SetOpacity(1)
			}
		})
	}
}
