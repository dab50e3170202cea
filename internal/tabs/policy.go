package tabs

import "fmt"

// ParseSelector maps a startup selector ("wifi", "power", ...) to a tab
// id.
func ParseSelector(s string) (ID, error) {
	id := ID(s)
	if !Known(id) {
		return "", fmt.Errorf("unknown tab selector %q", s)
	}
	return id, nil
}

// PlanTabs returns the ids to register, in order: the configured order
// filtered by the enabled predicate, with the initial selection
// force-enabled even when configuration disables it. Unknown ids in the
// order are dropped; the initial id is appended when the order omits it.
func PlanTabs(order []ID, enabled func(ID) bool, initial ID) []ID {
	var plan []ID
	seen := make(map[ID]bool)
	for _, id := range order {
		if !Known(id) || seen[id] {
			continue
		}
		if !enabled(id) && id != initial {
			continue
		}
		plan = append(plan, id)
		seen[id] = true
	}
	if initial != "" && !seen[initial] && Known(initial) {
		plan = append(plan, initial)
	}
	return plan
}
