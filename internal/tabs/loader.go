package tabs

import (
	"time"

	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/dispatch"
)

const (
	// loadDelayDefault gives the loading indicator time to paint before
	// content construction starts.
	loadDelayDefault = 100 * time.Millisecond
	// loadDelayPower is shorter; the power tab is cheap to build.
	loadDelayPower = 10 * time.Millisecond
	// guardRelease bounds how long the navigation re-entrancy guard
	// stays set.
	guardRelease = 100 * time.Millisecond
)

// Factory constructs the real content view for a tab. It runs on the UI
// queue after the load delay.
type Factory func(id ID) (View, error)

// CompletionFunc observes the end of a load attempt. err is nil for
// Loaded, non-nil for Failed.
type CompletionFunc func(id ID, err error)

// Loader drives tab state transitions on navigation. It owns the
// single-flight rule (a Loading tab never re-enters construction), the
// load delays, and the startup suppression mode.
type Loader struct {
	registry *Registry
	bar      Bar
	queue    dispatch.Queue
	factory  Factory
	// loadingView builds the spinner view installed while content is
	// under construction.
	loadingView func(id ID) View
	animator    *Animator
	logger      *zap.Logger

	initial        ID
	initialPending bool
	navGuard       bool
	visible        ID

	onComplete CompletionFunc
}

// NewLoader wires a loader to its registry and bar. animator may be nil
// to disable transition animation; logger may be nil.
func NewLoader(registry *Registry, bar Bar, queue dispatch.Queue, factory Factory,
	loadingView func(id ID) View, animator *Animator, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		registry:    registry,
		bar:         bar,
		queue:       queue,
		factory:     factory,
		loadingView: loadingView,
		animator:    animator,
		logger:      logger,
	}
}

// SetCompletion registers the per-tab load completion observer.
func (l *Loader) SetCompletion(fn CompletionFunc) {
	l.onComplete = fn
}

// SetInitial puts the loader in suppressed mode: until the initial tab's
// load completes, navigation events for other ids switch visually but do
// not trigger loading.
func (l *Loader) SetInitial(id ID) {
	l.initial = id
	l.initialPending = true
}

// Initial returns the startup selection, or "" when none was given.
func (l *Loader) Initial() ID {
	return l.initial
}

// Suppressed reports whether auto-loading is currently restricted to the
// initial tab.
func (l *Loader) Suppressed() bool {
	return l.initial != "" && l.initialPending
}

// Start issues the synthetic startup switch: to the initial selection if
// set, otherwise to the first registered tab.
func (l *Loader) Start() {
	id := l.initial
	if id == "" {
		recs := l.registry.Records()
		if len(recs) == 0 {
			return
		}
		id = recs[0].ID
	}
	if err := l.SwitchTo(id); err != nil {
		l.logger.Warn("startup switch failed", zap.String("tab", string(id)), zap.Error(err))
	}
}

// Navigate handles a tab-bar navigation event by bar position. A guard
// suppresses recursive entry while a deferred load is being scheduled;
// the guard clears itself after a short timer.
func (l *Loader) Navigate(position int) {
	if l.navGuard {
		return
	}
	l.navGuard = true
	l.queue.After(guardRelease, func() { l.navGuard = false })

	id, ok := l.registry.FindByPosition(position)
	if !ok {
		l.bar.SetCurrent(position)
		return
	}
	if l.Suppressed() && id != l.initial {
		// Visual switch only; the load transition is suppressed.
		l.bar.SetCurrent(position)
		l.visible = id
		return
	}
	if err := l.SwitchTo(id); err != nil {
		l.logger.Warn("switch failed", zap.String("tab", string(id)), zap.Error(err))
	}
}

// SwitchTo makes id the visible tab regardless of load state, and starts
// construction when the tab is still a placeholder. Loading tabs only
// re-animate the selection; construction is never re-entered.
func (l *Loader) SwitchTo(id ID) error {
	rec, ok := l.registry.FindByID(id)
	if !ok {
		return &UnknownTabError{ID: id}
	}

	outgoing := l.outgoingView(id)
	l.bar.SetCurrent(rec.Position)
	l.visible = id

	if rec.State == Loaded && outgoing != nil && l.animator != nil {
		l.animator.CrossFade(outgoing, rec.View)
	}

	if rec.State != Placeholder {
		return nil
	}

	l.registry.SetState(id, Loading, nil, "")
	if l.loadingView != nil {
		indicator := l.loadingView(id)
		pos := l.bar.Replace(rec.Position, indicator)
		l.registry.SetPosition(id, pos)
		l.registry.SetState(id, Loading, indicator, "")
	}
	l.logger.Debug("tab load scheduled", zap.String("tab", string(id)))

	l.queue.After(l.loadDelay(id), func() { l.construct(id) })
	return nil
}

// outgoingView returns the currently visible tab's view when it is Loaded
// and differs from the target, for cross-fade purposes.
func (l *Loader) outgoingView(target ID) View {
	if l.visible == "" || l.visible == target {
		return nil
	}
	rec, ok := l.registry.FindByID(l.visible)
	if !ok || rec.State != Loaded {
		return nil
	}
	return rec.View
}

func (l *Loader) loadDelay(id ID) time.Duration {
	if id == Power {
		return loadDelayPower
	}
	return loadDelayDefault
}

// construct runs the content factory for id. The registry may have been
// rebuilt while the delay timer was pending, so the state is re-checked
// before any mutation.
func (l *Loader) construct(id ID) {
	rec, ok := l.registry.FindByID(id)
	if !ok || rec.State != Loading {
		return
	}

	view, err := l.factory(id)
	if err == nil && view == nil {
		err = &ConstructionError{ID: id, Err: &UnknownTabError{ID: id}}
	}
	if err != nil {
		cerr := &ConstructionError{ID: id, Err: err}
		l.logger.Error("tab construction failed", zap.String("tab", string(id)), zap.Error(err))
		// Leave the loading indicator in place.
		l.registry.SetState(id, Failed, nil, cerr.Error())
		l.finish(id, cerr)
		return
	}

	pos := l.bar.Replace(rec.Position, view)
	l.registry.SetPosition(id, pos)
	l.registry.SetState(id, Loaded, view, "")
	if l.visible == id {
		l.bar.SetCurrent(pos)
	}
	l.logger.Debug("tab loaded", zap.String("tab", string(id)))
	l.finish(id, nil)
}

func (l *Loader) finish(id ID, err error) {
	if id == l.initial {
		l.initialPending = false
	}
	if l.onComplete != nil {
		l.onComplete(id, err)
	}
}
