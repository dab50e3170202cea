package tabs

import "fmt"

// ID identifies a tab. The set is closed; the loader rejects ids outside
// it.
type ID string

const (
	Volume    ID = "volume"
	Wifi      ID = "wifi"
	Bluetooth ID = "bluetooth"
	Display   ID = "display"
	Power     ID = "power"
)

// All lists the known tab ids in default order.
var All = []ID{Volume, Wifi, Bluetooth, Display, Power}

// Known reports whether id belongs to the closed tab set.
func Known(id ID) bool {
	for _, k := range All {
		if k == id {
			return true
		}
	}
	return false
}

// State is the load state of a tab.
type State int

const (
	Placeholder State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Placeholder:
		return "placeholder"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// View is the opaque handle to a tab's content widget. Implementations
// report Valid() == false once the widget has been destroyed, so timer
// callbacks that captured the handle degrade to no-ops.
type View interface {
	AddClass(name string)
	RemoveClass(name string)
	SetOpacity(opacity float64)
	Valid() bool
}

// Bar is the backing tab bar. Replace removes the view at position and
// inserts v at the same ordinal, returning the index the bar actually
// assigned (the bar may renumber).
type Bar interface {
	Replace(position int, v View) int
	SetCurrent(position int)
	Current() int
}

// Record is the registry entry for one enabled tab.
type Record struct {
	ID       ID
	Position int
	State    State
	View     View
	// Err is set only when State is Failed.
	Err string

	placeholder View
}

// Registry holds one Record per enabled tab in configured order. All
// access happens on the UI queue, so there is no locking. With debug
// checks on, every mutator verifies the record invariants and panics on
// violation.
type Registry struct {
	records []*Record
	byID    map[ID]*Record
	debug   bool
}

// NewRegistry creates an empty registry. debug enables invariant checks
// on every mutation.
func NewRegistry(debug bool) *Registry {
	return &Registry{byID: make(map[ID]*Record), debug: debug}
}

// Insert adds a record in Placeholder state. Duplicate ids are rejected.
func (r *Registry) Insert(id ID, position int, placeholder View) error {
	if _, ok := r.byID[id]; ok {
		return fmt.Errorf("tab %q already registered", id)
	}
	rec := &Record{
		ID:          id,
		Position:    position,
		State:       Placeholder,
		View:        placeholder,
		placeholder: placeholder,
	}
	r.records = append(r.records, rec)
	r.byID[id] = rec
	r.check(rec)
	return nil
}

// SetState mutates a record's state, view and error string. view is
// ignored (kept) when nil unless the new state is Placeholder, which
// restores the placeholder handle.
func (r *Registry) SetState(id ID, state State, view View, errMsg string) {
	rec, ok := r.byID[id]
	if !ok {
		return
	}
	rec.State = state
	switch {
	case state == Placeholder:
		rec.View = rec.placeholder
	case view != nil:
		rec.View = view
	}
	if state == Failed {
		rec.Err = errMsg
	} else {
		rec.Err = ""
	}
	r.check(rec)
}

// SetPosition records the ordinal the backing bar assigned after a view
// swap.
func (r *Registry) SetPosition(id ID, position int) {
	if rec, ok := r.byID[id]; ok {
		rec.Position = position
	}
}

// FindByID returns the record for id.
func (r *Registry) FindByID(id ID) (*Record, bool) {
	rec, ok := r.byID[id]
	return rec, ok
}

// FindByPosition returns the id of the tab at the given bar position.
func (r *Registry) FindByPosition(position int) (ID, bool) {
	for _, rec := range r.records {
		if rec.Position == position {
			return rec.ID, true
		}
	}
	return "", false
}

// Records returns the records in configured order. The slice is shared;
// callers must not mutate it.
func (r *Registry) Records() []*Record {
	return r.records
}

// Clear drops every record. Used when a settings change rebuilds the tab
// bar.
func (r *Registry) Clear() {
	r.records = nil
	r.byID = make(map[ID]*Record)
}

// Len returns the number of registered tabs.
func (r *Registry) Len() int {
	return len(r.records)
}

func (r *Registry) check(rec *Record) {
	if !r.debug {
		return
	}
	if rec.State == Loaded && rec.View == nil {
		panic(fmt.Sprintf("tabs: %q loaded with nil view", rec.ID))
	}
	if rec.State == Placeholder && rec.View != rec.placeholder {
		panic(fmt.Sprintf("tabs: %q placeholder state with foreign view", rec.ID))
	}
	if rec.State != Failed && rec.Err != "" {
		panic(fmt.Sprintf("tabs: %q carries error %q in state %s", rec.ID, rec.Err, rec.State))
	}
}
