package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/dispatch"
)

// invokeMsg carries a callback onto the Bubble Tea update loop. App.Update
// executes it, so the callback runs with exclusive access to the model.
type invokeMsg struct {
	fn func()
}

// ProgramQueue adapts a Bubble Tea program to dispatch.Queue: dispatched
// callbacks become invokeMsg messages, which the update loop serialises.
type ProgramQueue struct {
	send func(tea.Msg)
}

// NewProgramQueue wraps a message sender, normally Program.Send.
func NewProgramQueue(send func(tea.Msg)) *ProgramQueue {
	return &ProgramQueue{send: send}
}

// Dispatch implements dispatch.Queue.
func (q *ProgramQueue) Dispatch(fn func()) {
	q.send(invokeMsg{fn: fn})
}

// After implements dispatch.Queue.
func (q *ProgramQueue) After(d time.Duration, fn func()) *dispatch.Timer {
	return dispatch.SystemAfter(d, q.Dispatch, fn)
}
