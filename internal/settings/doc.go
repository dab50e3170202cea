// Package settings persists the control panel's configuration.
//
// Two files live under the user configuration directory
// ($XDG_CONFIG_HOME/ultractl or $HOME/.config/ultractl):
//
//   - settings.conf: plain key/value pairs, one per line, holding the
//     user-editable configuration: enabled tabs, tab order, floating
//     window hint, and the power action commands.
//   - state.yaml: application state the panel writes back on exit, such
//     as the last visible tab.
//
// Both files are written atomically (temp file + rename) so a crash
// mid-save never leaves a truncated file behind.
//
// Passwords and other credentials are never written here.
package settings
