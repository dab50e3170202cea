// Package power runs session power actions and manages power profiles.
//
// Actions (lock, shutdown, reboot, suspend) execute the command lines
// configured in settings.conf, falling back to systemd defaults. Profile
// management shells out to powerprofilesctl where available.
package power

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/settings"
	"github.com/ultracontrol/ultractl/internal/shell"
)

// Action names accepted by Run.
const (
	ActionLock     = "lock"
	ActionShutdown = "shutdown"
	ActionReboot   = "reboot"
	ActionSuspend  = "suspend"
)

// Profile is one power-profiles-daemon profile.
type Profile struct {
	Name   string
	Active bool
}

// Controller executes power actions and profile switches.
type Controller struct {
	runner   shell.Runner
	settings *settings.Settings
	logger   *zap.Logger
}

// NewController creates a Controller. logger may be nil.
func NewController(runner shell.Runner, cfg *settings.Settings, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{runner: runner, settings: cfg, logger: logger}
}

// Run executes the configured command for the named action. The command
// line comes from settings.conf or the built-in default; it is operator
// configuration, so a shell is acceptable.
func (c *Controller) Run(action string) error {
	cmd := c.settings.Command(action)
	if cmd == "" {
		return fmt.Errorf("no command configured for action %q", action)
	}
	c.logger.Info("power action", zap.String("action", action), zap.String("command", cmd))
	res := c.runner.RunShell(cmd)
	if !res.Ok() {
		return fmt.Errorf("%s command failed (exit code %d)", action, res.ExitCode)
	}
	return nil
}

// Lock locks the session.
func (c *Controller) Lock() error { return c.Run(ActionLock) }

// Shutdown powers the machine off.
func (c *Controller) Shutdown() error { return c.Run(ActionShutdown) }

// Reboot restarts the machine.
func (c *Controller) Reboot() error { return c.Run(ActionReboot) }

// Suspend suspends the machine.
func (c *Controller) Suspend() error { return c.Run(ActionSuspend) }

// HasProfiles reports whether power-profiles-daemon is reachable.
func (c *Controller) HasProfiles() bool {
	return c.runner.Run("powerprofilesctl", "get").Ok()
}

// Profiles lists the available power profiles. Profile head lines end in
// a colon and sit at the left margin (the active one is starred);
// indented driver properties are skipped.
func (c *Controller) Profiles() ([]Profile, error) {
	res := c.runner.Run("powerprofilesctl", "list")
	if !res.Ok() {
		return nil, fmt.Errorf("powerprofilesctl list failed (exit code %d)", res.ExitCode)
	}

	var profiles []Profile
	for _, line := range res.Lines {
		if strings.HasPrefix(line, "    ") {
			continue
		}
		active := false
		t := line
		if strings.HasPrefix(t, "*") {
			active = true
			t = t[1:]
		}
		t = strings.TrimSpace(t)
		if !strings.HasSuffix(t, ":") {
			continue
		}
		name := strings.TrimSuffix(t, ":")
		if name == "" {
			continue
		}
		profiles = append(profiles, Profile{Name: name, Active: active})
	}
	return profiles, nil
}

// ActiveProfile returns the current profile name.
func (c *Controller) ActiveProfile() (string, error) {
	res := c.runner.Run("powerprofilesctl", "get")
	if !res.Ok() {
		return "", fmt.Errorf("powerprofilesctl get failed (exit code %d)", res.ExitCode)
	}
	return res.Output(), nil
}

// SetProfile switches the active profile.
func (c *Controller) SetProfile(name string) error {
	res := c.runner.Run("powerprofilesctl", "set", name)
	if !res.Ok() {
		return fmt.Errorf("powerprofilesctl set failed (exit code %d)", res.ExitCode)
	}
	c.logger.Info("power profile changed", zap.String("profile", name))
	return nil
}
