package settings

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/ultracontrol/ultractl/internal/tabs"
)

// RestartExitCode is the process exit code signalling that a settings
// change requires the panel to be restarted by its launcher.
const RestartExitCode = 42

// Settings keys consumed by the panel. Tab enablement uses the
// "tab.<id>" form.
const (
	KeyFloating = "floating"
	KeyTabOrder = "tab_order"
	KeyMinimal  = "minimal"

	keyTabPrefix     = "tab."
	keyCommandPrefix = "command."
)

// defaultCommands maps power actions to the commands run when
// settings.conf does not override them.
var defaultCommands = map[string]string{
	"lock":     "loginctl lock-session",
	"shutdown": "systemctl poweroff",
	"reboot":   "systemctl reboot",
	"suspend":  "systemctl suspend",
}

// Settings is the parsed settings.conf: flat string pairs with typed
// accessors on top. Safe for concurrent use.
type Settings struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Load reads settings.conf from the default location. A missing file
// yields empty settings (defaults apply).
func Load() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a settings file from an explicit path. Each nonblank,
// non-comment line is "key value"; the value is everything after the
// first space. Malformed lines are skipped.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{path: path, values: make(map[string]string)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, " ")
		if !found || key == "" {
			continue
		}
		s.values[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return s, nil
}

// Save writes the settings back atomically, keys sorted for stable
// diffs.
func (s *Settings) Save() error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %s\n", k, s.values[k])
	}
	path := s.path
	s.mu.Unlock()

	return writeAtomic(path, []byte(b.String()), 0o600)
}

// Get returns the raw value for key, or def when unset.
func (s *Settings) Get(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Set stores a raw value. Save persists it.
func (s *Settings) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// GetBool interprets "1" as true and "0" as false; anything else falls
// back to def.
func (s *Settings) GetBool(key string, def bool) bool {
	switch s.Get(key, "") {
	case "1":
		return true
	case "0":
		return false
	}
	return def
}

// SetBool stores a boolean as "1"/"0".
func (s *Settings) SetBool(key string, v bool) {
	if v {
		s.Set(key, "1")
	} else {
		s.Set(key, "0")
	}
}

// Floating reports the floating window hint.
func (s *Settings) Floating() bool {
	return s.GetBool(KeyFloating, false)
}

// SetFloating stores the floating window hint.
func (s *Settings) SetFloating(v bool) {
	s.SetBool(KeyFloating, v)
}

// TabOrder returns the configured tab order. Unknown ids are dropped;
// known tabs missing from the configured list are appended in default
// order so a stale file never hides a tab entirely.
func (s *Settings) TabOrder() []tabs.ID {
	raw := s.Get(KeyTabOrder, "")
	var order []tabs.ID
	seen := make(map[tabs.ID]bool)
	if raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id := tabs.ID(strings.TrimSpace(part))
			if tabs.Known(id) && !seen[id] {
				order = append(order, id)
				seen[id] = true
			}
		}
	}
	for _, id := range tabs.All {
		if !seen[id] {
			order = append(order, id)
		}
	}
	return order
}

// SetTabOrder stores the tab order as a comma-separated list.
func (s *Settings) SetTabOrder(order []tabs.ID) {
	parts := make([]string, len(order))
	for i, id := range order {
		parts[i] = string(id)
	}
	s.Set(KeyTabOrder, strings.Join(parts, ","))
}

// TabEnabled reports whether a tab is enabled. Tabs default to enabled.
func (s *Settings) TabEnabled(id tabs.ID) bool {
	return s.GetBool(keyTabPrefix+string(id), true)
}

// SetTabEnabled stores a tab's enablement.
func (s *Settings) SetTabEnabled(id tabs.ID, enabled bool) {
	s.SetBool(keyTabPrefix+string(id), enabled)
}

// Command resolves the command line for a power action (lock, shutdown,
// reboot, suspend), falling back to the built-in default.
func (s *Settings) Command(action string) string {
	return s.Get(keyCommandPrefix+action, defaultCommands[action])
}

// SetCommand overrides a power action command.
func (s *Settings) SetCommand(action, command string) {
	s.Set(keyCommandPrefix+action, command)
}
