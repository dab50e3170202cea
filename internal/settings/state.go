package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// State is the application state written back on exit, as opposed to the
// user-editable settings.conf.
type State struct {
	Version int          `yaml:"version"`
	LastTab string       `yaml:"last_tab,omitempty"`
	Window  *WindowState `yaml:"window,omitempty"`
}

// WindowState remembers the last window geometry.
type WindowState struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// NewState creates a State with default values.
func NewState() *State {
	return &State{Version: 1}
}

// LoadState reads state.yaml from the default location. A missing file
// yields a fresh default State.
func LoadState() (*State, error) {
	path, err := StatePath()
	if err != nil {
		return nil, err
	}
	return LoadStateFrom(path)
}

// LoadStateFrom reads a state file from an explicit path.
func LoadStateFrom(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	st := NewState()
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return st, nil
}

// Save writes the state atomically to the default location.
func (st *State) Save() error {
	path, err := StatePath()
	if err != nil {
		return err
	}
	return st.SaveTo(path)
}

// SaveTo writes the state atomically to an explicit path.
func (st *State) SaveTo(path string) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return writeAtomic(path, data, 0o600)
}
