package tabs

import "fmt"

// UnknownTabError reports a switch request for an id outside the known
// tab set or not present in the registry.
type UnknownTabError struct {
	ID ID
}

func (e *UnknownTabError) Error() string {
	return fmt.Sprintf("unknown tab %q", e.ID)
}

// ConstructionError wraps a failure from a tab's content factory. The
// loader records it on the tab and leaves the loading indicator in place.
type ConstructionError struct {
	ID  ID
	Err error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing tab %q: %v", e.ID, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
