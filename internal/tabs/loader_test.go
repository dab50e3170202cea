package tabs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ultracontrol/ultractl/internal/dispatch"
)

type fakeView struct {
	name    string
	classes map[string]bool
	opacity float64
	valid   bool
}

func newFakeView(name string) *fakeView {
	return &fakeView{name: name, classes: map[string]bool{}, opacity: 1, valid: true}
}

func (v *fakeView) AddClass(name string) { v.classes[name] = true }
func (v *fakeView) RemoveClass(name string) { delete(v.classes, name) }
func (v *fakeView) SetOpacity(opacity float64) { v.opacity = opacity }
func (v *fakeView) Valid() bool { return v.valid }

type fakeBar struct {
	slots   map[int]View
	current int
}

func newFakeBar() *fakeBar {
	return &fakeBar{slots: map[int]View{}}
}

func (b *fakeBar) Replace(position int, v View) int {
	b.slots[position] = v
	return position
}

func (b *fakeBar) SetCurrent(position int) { b.current = position }
func (b *fakeBar) Current() int            { return b.current }

type harness struct {
	registry *Registry
	bar      *fakeBar
	queue    *dispatch.Manual
	loader   *Loader

	built []ID
}

func buildHarness(t *testing.T, factoryErr map[ID]error) *harness {
	t.Helper()
	h := &harness{
		registry: NewRegistry(true),
		bar:      newFakeBar(),
		queue:    dispatch.NewManual(),
	}
	for i, id := range All {
		if err := h.registry.Insert(id, i, newFakeView("placeholder-"+string(id))); err != nil {
			t.Fatalf("Insert(%q): %v", id, err)
		}
	}
	factory := func(id ID) (View, error) {
		h.built = append(h.built, id)
		if err := factoryErr[id]; err != nil {
			return nil, err
		}
		return newFakeView("content-" + string(id)), nil
	}
	loading := func(id ID) View { return newFakeView("loading-" + string(id)) }
	h.loader = NewLoader(h.registry, h.bar, h.queue, factory, loading,
		NewAnimator(h.queue), nil)
	return h
}

func stateOf(t *testing.T, r *Registry, id ID) State {
	t.Helper()
	rec, ok := r.FindByID(id)
	if !ok {
		t.Fatalf("tab %q not in registry", id)
	}
	return rec.State
}

func TestLazyInitWithInitialSelection(t *testing.T) {
	h := buildHarness(t, nil)
	var completions []ID
	h.loader.SetCompletion(func(id ID, err error) {
		if err != nil {
			t.Errorf("completion for %q carried error: %v", id, err)
		}
		completions = append(completions, id)
	})

	h.loader.SetInitial(Wifi)
	h.loader.Start()

	if got := stateOf(t, h.registry, Wifi); got != Loading {
		t.Fatalf("wifi state after Start = %s, want loading", got)
	}
	if !h.loader.Suppressed() {
		t.Error("loader not suppressed while the initial load is pending")
	}

	h.queue.Advance(loadDelayDefault)

	if got := stateOf(t, h.registry, Wifi); got != Loaded {
		t.Fatalf("wifi state after delay = %s, want loaded", got)
	}
	for _, id := range []ID{Volume, Bluetooth, Display, Power} {
		if got := stateOf(t, h.registry, id); got != Placeholder {
			t.Errorf("tab %q state = %s, want placeholder", id, got)
		}
	}
	if len(completions) != 1 || completions[0] != Wifi {
		t.Errorf("completions = %v, want [wifi]", completions)
	}
	if h.loader.Suppressed() {
		t.Error("loader still suppressed after the initial load completed")
	}
}

func TestSuppressionBlocksOtherTabs(t *testing.T) {
	h := buildHarness(t, nil)
	h.loader.SetInitial(Wifi)

	volumeRec, _ := h.registry.FindByID(Volume)
	h.loader.Navigate(volumeRec.Position)

	if got := stateOf(t, h.registry, Volume); got != Placeholder {
		t.Fatalf("volume state under suppression = %s, want placeholder", got)
	}
	if h.bar.Current() != volumeRec.Position {
		t.Error("visual switch was suppressed; only loading should be")
	}

	// Clear the navigation guard, load the initial tab, then volume may
	// load.
	h.queue.Advance(guardRelease)
	wifiRec, _ := h.registry.FindByID(Wifi)
	h.loader.Navigate(wifiRec.Position)
	h.queue.Advance(loadDelayDefault)
	if got := stateOf(t, h.registry, Wifi); got != Loaded {
		t.Fatalf("wifi state = %s, want loaded", got)
	}

	h.loader.Navigate(volumeRec.Position)
	h.queue.Advance(loadDelayDefault)
	if got := stateOf(t, h.registry, Volume); got != Loaded {
		t.Errorf("volume state after suppression lifted = %s, want loaded", got)
	}
}

func TestSingleFlightConstruction(t *testing.T) {
	h := buildHarness(t, nil)

	if err := h.loader.SwitchTo(Display); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	// Repeated switches while Loading must not re-enter construction.
	for i := 0; i < 3; i++ {
		if err := h.loader.SwitchTo(Display); err != nil {
			t.Fatalf("SwitchTo: %v", err)
		}
	}
	h.queue.Advance(loadDelayDefault)

	if len(h.built) != 1 {
		t.Fatalf("factory invoked %d times, want 1 (built %v)", len(h.built), h.built)
	}
	if got := stateOf(t, h.registry, Display); got != Loaded {
		t.Errorf("display state = %s, want loaded", got)
	}
}

func TestNavigationGuardSuppressesReentry(t *testing.T) {
	h := buildHarness(t, nil)
	volumeRec, _ := h.registry.FindByID(Volume)
	wifiRec, _ := h.registry.FindByID(Wifi)

	h.loader.Navigate(volumeRec.Position)
	h.loader.Navigate(wifiRec.Position) // swallowed by the guard

	if got := stateOf(t, h.registry, Wifi); got != Placeholder {
		t.Errorf("wifi state = %s, want placeholder (guarded)", got)
	}

	h.queue.Advance(guardRelease)
	h.loader.Navigate(wifiRec.Position)
	if got := stateOf(t, h.registry, Wifi); got != Loading {
		t.Errorf("wifi state after guard release = %s, want loading", got)
	}
}

func TestConstructionFailure(t *testing.T) {
	boom := errors.New("boom")
	h := buildHarness(t, map[ID]error{Bluetooth: boom})

	var gotErr error
	h.loader.SetCompletion(func(id ID, err error) { gotErr = err })

	if err := h.loader.SwitchTo(Bluetooth); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	rec, _ := h.registry.FindByID(Bluetooth)
	indicator := rec.View

	h.queue.Advance(loadDelayDefault)

	if rec.State != Failed {
		t.Fatalf("bluetooth state = %s, want failed", rec.State)
	}
	if rec.Err == "" {
		t.Error("failed record has empty error string")
	}
	if rec.View != indicator {
		t.Error("loading indicator was replaced on failure")
	}
	var cerr *ConstructionError
	if !errors.As(gotErr, &cerr) || !errors.Is(gotErr, boom) {
		t.Errorf("completion error = %v, want *ConstructionError wrapping boom", gotErr)
	}
}

func TestSwitchToUnknownTab(t *testing.T) {
	h := buildHarness(t, nil)
	err := h.loader.SwitchTo(ID("mystery"))
	var unknown *UnknownTabError
	if !errors.As(err, &unknown) {
		t.Fatalf("SwitchTo error = %v, want *UnknownTabError", err)
	}
}

func TestPowerTabLoadsAfterShortDelay(t *testing.T) {
	h := buildHarness(t, nil)

	if err := h.loader.SwitchTo(Power); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	h.queue.Advance(loadDelayPower)
	if got := stateOf(t, h.registry, Power); got != Loaded {
		t.Errorf("power state after %v = %s, want loaded", loadDelayPower, got)
	}

	if err := h.loader.SwitchTo(Volume); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	h.queue.Advance(loadDelayPower)
	if got := stateOf(t, h.registry, Volume); got != Loading {
		t.Errorf("volume state after %v = %s, want still loading", loadDelayPower, got)
	}
	h.queue.Advance(loadDelayDefault - loadDelayPower)
	if got := stateOf(t, h.registry, Volume); got != Loaded {
		t.Errorf("volume state after full delay = %s, want loaded", got)
	}
}

func TestStaleConstructionAfterRebuild(t *testing.T) {
	h := buildHarness(t, nil)

	if err := h.loader.SwitchTo(Wifi); err != nil {
		t.Fatalf("SwitchTo: %v", err)
	}
	// Settings change rebuilds the registry while the delay timer is
	// pending.
	h.registry.Clear()
	h.queue.Advance(loadDelayDefault)

	if len(h.built) != 0 {
		t.Errorf("factory ran %d times against a rebuilt registry, want 0", len(h.built))
	}
}

func TestCrossFade(t *testing.T) {
	queue := dispatch.NewManual()
	a := NewAnimator(queue)
	outgoing := newFakeView("out")
	incoming := newFakeView("in")

	a.CrossFade(outgoing, incoming)

	if !outgoing.classes[classAnimateOut] {
		t.Error("outgoing view missing the out class")
	}
	if !incoming.classes[classAnimateIn] || incoming.opacity != 0 {
		t.Errorf("incoming view: classes %v opacity %v, want in class and opacity 0",
			incoming.classes, incoming.opacity)
	}

	queue.Advance(inDelay)
	if incoming.classes[classAnimateIn] || incoming.opacity != 1 {
		t.Errorf("incoming view after %v: classes %v opacity %v, want no class and opacity 1",
			inDelay, incoming.classes, incoming.opacity)
	}

	queue.Advance(outDuration - inDelay)
	if outgoing.classes[classAnimateOut] {
		t.Error("outgoing view kept the out class past the timer")
	}
}

func TestCrossFadeDestroyedViewIsNoop(t *testing.T) {
	queue := dispatch.NewManual()
	a := NewAnimator(queue)
	v := newFakeView("doomed")

	a.CrossFade(v, nil)
	v.valid = false
	queue.Advance(outDuration)

	if !v.classes[classAnimateOut] {
		t.Error("timer mutated a destroyed view")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry(true)
	if err := r.Insert(Wifi, 0, newFakeView("p")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := r.Insert(Wifi, 1, newFakeView("p2")); err == nil {
		t.Error("duplicate Insert succeeded, want error")
	}
}

func TestRegistryFindByPosition(t *testing.T) {
	r := NewRegistry(true)
	for i, id := range All {
		if err := r.Insert(id, i, newFakeView(string(id))); err != nil {
			t.Fatalf("Insert(%q): %v", id, err)
		}
	}
	id, ok := r.FindByPosition(2)
	if !ok || id != Bluetooth {
		t.Errorf("FindByPosition(2) = %q, %v; want bluetooth, true", id, ok)
	}
	if _, ok := r.FindByPosition(99); ok {
		t.Error("FindByPosition(99) reported a hit")
	}
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", r.Len())
	}
}

func TestParseSelector(t *testing.T) {
	id, err := ParseSelector("wifi")
	if err != nil || id != Wifi {
		t.Errorf("ParseSelector(wifi) = %q, %v", id, err)
	}
	if _, err := ParseSelector("teleport"); err == nil {
		t.Error("ParseSelector(teleport) succeeded, want error")
	}
}

func TestPlanTabs(t *testing.T) {
	enabled := func(id ID) bool { return id != Bluetooth && id != Power }

	got := PlanTabs(All, enabled, Power)
	want := []ID{Volume, Wifi, Display, Power}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("PlanTabs = %v, want %v", got, want)
	}

	// Initial omitted from the order still gets appended.
	got = PlanTabs([]ID{Volume}, enabled, Wifi)
	want = []ID{Volume, Wifi}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("PlanTabs = %v, want %v", got, want)
	}
}
