package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ultracontrol/ultractl/internal/tabs"
)

// tabView adapts a Bubble Tea model to the tabs.View handle the loader
// and animator manipulate. Classes and opacity map onto render styles;
// a view swapped out of the bar is invalidated so stale animation timers
// become no-ops.
type tabView struct {
	model   tea.Model
	classes map[string]bool
	opacity float64
	valid   bool
}

func newTabView(model tea.Model) *tabView {
	return &tabView{
		model:   model,
		classes: make(map[string]bool),
		opacity: 1,
		valid:   true,
	}
}

func (v *tabView) AddClass(name string) { v.classes[name] = true }
func (v *tabView) RemoveClass(name string) { delete(v.classes, name) }

func (v *tabView) SetOpacity(opacity float64) { v.opacity = opacity }

func (v *tabView) Valid() bool { return v != nil && v.valid }

// invalidate marks the view destroyed. Pending timers that captured it
// check Valid before mutating.
func (v *tabView) invalidate() {
	if v != nil {
		v.valid = false
	}
}

// update routes a message to the wrapped model.
func (v *tabView) update(msg tea.Msg) tea.Cmd {
	if v == nil || v.model == nil {
		return nil
	}
	var cmd tea.Cmd
	v.model, cmd = v.model.Update(msg)
	return cmd
}

// render draws the wrapped model, dimming it while a fade class or
// reduced opacity is in effect.
func (v *tabView) render() string {
	if v == nil || v.model == nil {
		return ""
	}
	out := v.model.View()
	if v.opacity < 1 || v.classes["animate-out"] || v.classes["animate-in"] {
		return FadedStyle.Render(out)
	}
	return out
}

var _ tabs.View = (*tabView)(nil)
